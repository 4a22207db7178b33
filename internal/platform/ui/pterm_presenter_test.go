// internal/platform/ui/pterm_presenter_test.go
package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	m.Run()
}

func TestPTermPresenter_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPTermPresenter(&buf)
	ctx := context.Background()

	require.NoError(t, p.Notify(ctx, ports.NewEvent(ports.EventTypeScanStarted, "", "example.com", ports.ScanStartedEvent{
		Kind:    domain.TargetKindDomain,
		Sources: []string{"crtsh", "wayback"},
	})))
	assert.Equal(t, StatusPending, p.Status("crtsh"))

	require.NoError(t, p.Notify(ctx, ports.NewEvent(ports.EventTypeSourceStarted, "crtsh", "example.com", nil)))
	assert.Equal(t, StatusRunning, p.Status("crtsh"))

	require.NoError(t, p.Notify(ctx, ports.NewEvent(ports.EventTypeSourceCompleted, "crtsh", "example.com", ports.SourceFinishedEvent{
		Report: domain.SourceReport{Name: "crtsh", Status: domain.SourceStatusOK, Findings: 3, DurationMS: 1500, Warnings: []string{"query failed"}},
	})))
	require.NoError(t, p.Notify(ctx, ports.NewEvent(ports.EventTypeSourceFailed, "wayback", "example.com", ports.SourceFinishedEvent{
		Report: domain.SourceReport{Name: "wayback", Status: domain.SourceStatusFailed, Error: "internal fault: boom"},
	})))
	require.NoError(t, p.Notify(ctx, ports.NewEvent(ports.EventTypeScanCompleted, "", "example.com", ports.ScanCompletedEvent{
		Counts:   map[domain.Category]int{domain.CategorySubdomains: 3},
		Failed:   []string{"wayback"},
		Duration: 2 * time.Second,
	})))

	assert.Equal(t, StatusWarning, p.Status("crtsh"), "warnings degrade the status")
	assert.Equal(t, StatusError, p.Status("wayback"))

	out := buf.String()
	for _, want := range []string{
		"PassiveMap", "example.com", "crtsh, wayback",
		"3 findings", "1.5s", "query failed",
		"internal fault: boom",
		"Aggregation Summary", "subdomains:", "Total:", "Failed:",
	} {
		assert.True(t, strings.Contains(out, want), "output should contain %q:\n%s", want, out)
	}
}

func TestPTermPresenter_UnknownEvent(t *testing.T) {
	p := NewPTermPresenter(&bytes.Buffer{})
	assert.Error(t, p.Notify(context.Background(), ports.Event{Type: "bogus"}))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}

func TestStatusSymbols(t *testing.T) {
	assert.Equal(t, "✓", StatusSuccess.Symbol())
	assert.Equal(t, "✗", StatusError.Symbol())
	assert.Equal(t, "warning", StatusWarning.String())
	assert.NotNil(t, StatusRunning.Style())
}
