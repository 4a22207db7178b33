// internal/platform/ui/pterm_presenter.go
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
)

// PTermPresenter implementa ports.Notifier renderizando el progreso de una
// agregación con pterm. Las fuentes terminan en cualquier orden, así que
// cada evento se pinta como una línea independiente.
type PTermPresenter struct {
	mu sync.Mutex
	w  io.Writer

	statuses  map[string]Status
	startTime time.Time
}

// NewPTermPresenter escribe en w (normalmente os.Stderr, para no mezclar
// el progreso con el documento JSON de stdout).
func NewPTermPresenter(w io.Writer) *PTermPresenter {
	return &PTermPresenter{
		w:        w,
		statuses: make(map[string]Status),
	}
}

// Notify despacha cada tipo de evento a su renderizador.
func (p *PTermPresenter) Notify(_ context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event.Type {
	case ports.EventTypeScanStarted:
		data, _ := event.Data.(ports.ScanStartedEvent)
		p.start(event, data)
	case ports.EventTypeSourceStarted:
		p.statuses[event.Source] = StatusRunning
	case ports.EventTypeSourceCompleted, ports.EventTypeSourceFailed:
		data, _ := event.Data.(ports.SourceFinishedEvent)
		p.finishSource(event.Source, data.Report)
	case ports.EventTypeScanCompleted:
		data, _ := event.Data.(ports.ScanCompletedEvent)
		p.finish(data)
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
	return nil
}

// Status devuelve el último estado conocido de una fuente.
func (p *PTermPresenter) Status(source string) Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.statuses[source]; ok {
		return s
	}
	return StatusPending
}

func (p *PTermPresenter) start(event ports.Event, data ports.ScanStartedEvent) {
	p.startTime = event.Timestamp
	for _, name := range data.Sources {
		p.statuses[name] = StatusPending
	}

	fmt.Fprintln(p.w, pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprint("PassiveMap - Source Aggregation"))

	info := fmt.Sprintf("%s Target: %s\n", IconTarget, pterm.Cyan(event.Target))
	info += fmt.Sprintf("   Kind: %s\n", pterm.Yellow(string(data.Kind)))
	info += fmt.Sprintf("%s Sources: %s", IconSources, strings.Join(data.Sources, ", "))

	fmt.Fprintln(p.w, pterm.DefaultBox.
		WithTitle("Target Information").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(info))
	fmt.Fprintln(p.w, StyleSecondary.Sprint(SeparatorLight))
}

func (p *PTermPresenter) finishSource(name string, report domain.SourceReport) {
	status := StatusSuccess
	switch {
	case report.Status == domain.SourceStatusFailed:
		status = StatusError
	case len(report.Warnings) > 0:
		status = StatusWarning
	}
	p.statuses[name] = status

	line := fmt.Sprintf("  %s %-10s %s",
		status.Style().Sprint(status.Symbol()),
		name,
		StyleSecondary.Sprint(formatDuration(time.Duration(report.DurationMS)*time.Millisecond)),
	)
	if status == StatusError {
		line += "  " + StyleError.Sprint(report.Error)
	} else {
		line += "  " + StyleSuccess.Sprint(fmt.Sprintf("%d findings", report.Findings))
	}
	fmt.Fprintln(p.w, line)

	for _, w := range report.Warnings {
		fmt.Fprintln(p.w, "      "+StyleWarning.Sprint(IconWarningPrefix+w))
	}
}

func (p *PTermPresenter) finish(data ports.ScanCompletedEvent) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, pterm.LightBlue(SeparatorHeavy))

	var b strings.Builder
	fmt.Fprintf(&b, "%s Duration: %s\n", IconTime, pterm.Green(formatDuration(data.Duration)))
	total := 0
	for _, cat := range domain.AllCategories() {
		total += data.Counts[cat]
		fmt.Fprintf(&b, "   %-11s %d\n", string(cat)+":", data.Counts[cat])
	}
	fmt.Fprintf(&b, "%s Total: %s", IconFindings, pterm.Cyan(fmt.Sprint(total)))
	if len(data.Failed) > 0 {
		fmt.Fprintf(&b, "\n%s Failed: %s", StatusError.Symbol(), StyleError.Sprint(strings.Join(data.Failed, ", ")))
	}

	fmt.Fprintln(p.w, pterm.DefaultBox.
		WithTitle("Aggregation Summary").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen)).
		Sprint(b.String()))
	fmt.Fprintln(p.w)
}
