// internal/core/usecases/aggregator_test.go
package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
	perrors "passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
	"passivemap/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

func newTestAggregator(t *testing.T, mocks ...*mockSource) *Aggregator {
	t.Helper()
	agg, err := NewAggregator(AggregatorOptions{
		Sources:     asSources(mocks...),
		Logger:      logx.NewNop(),
		Clock:       func() time.Time { return fixedNow },
		IDGenerator: func() string { return "scan-1" },
	})
	testutil.AssertNoError(t, err, "aggregator")
	return agg
}

func TestNewAggregator_NoSources(t *testing.T) {
	_, err := NewAggregator(AggregatorOptions{Logger: logx.NewNop()})
	testutil.AssertErrorIs(t, err, domain.ErrNoSources, "no sources")
	testutil.AssertTrue(t, perrors.IsInternalFault(err), "classified as internal fault")
}

func TestAggregate_InvalidInputRunsNothing(t *testing.T) {
	src := newMockSource("crtsh")
	agg := newTestAggregator(t, src)

	for _, raw := range []string{"", "   ", "not a domain", "http://example.com"} {
		result, err := agg.Aggregate(context.Background(), raw)
		testutil.AssertNil(t, result, raw)
		testutil.AssertTrue(t, perrors.IsInvalidInput(err), raw)
	}
	testutil.AssertEqual(t, src.callCount.Load(), int32(0), "no source runs for an invalid target")
}

func TestAggregate_AllSourcesFail(t *testing.T) {
	defer goleak.VerifyNone(t)

	panicking := newMockSource("dorker")
	panicking.scanFunc = func(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
		panic("boom")
	}
	agg := newTestAggregator(t,
		mockSourceErr("crtsh", perrors.Mark(perrors.ErrUpstreamUnavailable, errors.New("503"))),
		mockSourceErr("shodan", perrors.Mark(perrors.ErrUpstreamMalformed, errors.New("bad json"))),
		mockSourceErr("wayback", context.DeadlineExceeded),
		panicking,
	)

	result, err := agg.Aggregate(context.Background(), "Example.com")

	testutil.AssertNoError(t, err, "document is returned even if every source fails")
	testutil.AssertEqual(t, result.Target, "example.com", "normalised target")
	testutil.AssertEqual(t, result.TotalFindings(), 0, "all lists empty")
	testutil.AssertEqual(t, result.FailedSources(), []string{"crtsh", "shodan", "wayback", "dorker"}, "all failures reported")
}

func TestAggregate_MergesAcrossSources(t *testing.T) {
	defer goleak.VerifyNone(t)

	agg := newTestAggregator(t,
		mockSourceWith("crtsh", func(p *domain.PartialResult) {
			p.Subdomains = append(p.Subdomains,
				domain.Subdomain{Name: "example.com", Source: "crtsh"},
				domain.Subdomain{Name: "foo.example.com", Source: "crtsh"},
			)
		}),
		mockSourceWith("shodan", func(p *domain.PartialResult) {
			p.Subdomains = append(p.Subdomains, domain.Subdomain{Name: "foo.example.com", IP: domain.StringPtr("1.2.3.4"), Source: "shodan"})
			p.IPs = append(p.IPs, "1.2.3.4")
			p.Services = append(p.Services, domain.Service{IP: "1.2.3.4", Port: 443, Service: "nginx", Source: "shodan"})
			p.AddWarning("enrichment capped")
		}),
		mockSourceWith("dorker", func(p *domain.PartialResult) {
			p.Dorks = append(p.Dorks, domain.Dork{Query: "site:example.com ext:log", Source: "dorker"})
		}),
	)

	result, err := agg.Aggregate(context.Background(), "example.com")

	testutil.AssertNoError(t, err, "aggregate")
	testutil.AssertEqual(t, result.ID, "scan-1", "id generator used")
	testutil.AssertEqual(t, result.Timestamp, fixedNow.UTC(), "clock used, normalised to UTC")
	testutil.AssertEqual(t, result.Timestamp.Location(), time.UTC, "UTC location")
	testutil.AssertEqual(t, subdomainNames(result), []string{"example.com", "foo.example.com"}, "merged subdomains")
	testutil.AssertEqual(t, *result.Subdomains[1].IP, "1.2.3.4", "cross-source enrichment")
	testutil.AssertLen(t, result.Services, 1, "services")
	testutil.AssertLen(t, result.Dorks, 1, "dorks")
	testutil.AssertEqual(t, result.Sources[1].Warnings, []string{"enrichment capped"}, "warnings surfaced in report")
	testutil.AssertEqual(t, agg.Sources(), []string{"crtsh", "shodan", "dorker"}, "invocation order")

	for _, s := range result.Subdomains {
		testutil.AssertNotEqual(t, s.Source, "", "provenance kept")
	}
}

func TestAggregate_NotifiesProgress(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("terminal closed")}
	agg, err := NewAggregator(AggregatorOptions{
		Sources: asSources(
			mockSourceWith("crtsh", func(p *domain.PartialResult) {}),
			mockSourceErr("wayback", perrors.Mark(perrors.ErrInternalFault, errors.New("bug"))),
		),
		Logger:   logx.NewNop(),
		Notifier: notifier,
	})
	testutil.AssertNoError(t, err, "aggregator")

	result, err := agg.Aggregate(context.Background(), "example.com")
	testutil.AssertNoError(t, err, "a failing notifier never fails the aggregation")
	testutil.AssertNotNil(t, result, "document")

	testutil.AssertEqual(t, notifier.types(), map[ports.EventType]int{
		ports.EventTypeScanStarted:     1,
		ports.EventTypeSourceStarted:   2,
		ports.EventTypeSourceCompleted: 1,
		ports.EventTypeSourceFailed:    1,
		ports.EventTypeScanCompleted:   1,
	}, "one event per lifecycle step")

	first, last := notifier.events[0], notifier.events[len(notifier.events)-1]
	testutil.AssertEqual(t, first.Type, ports.EventTypeScanStarted, "scan started first")
	testutil.AssertEqual(t, last.Type, ports.EventTypeScanCompleted, "scan completed last")
	completed, ok := last.Data.(ports.ScanCompletedEvent)
	testutil.AssertTrue(t, ok, "typed payload")
	testutil.AssertEqual(t, completed.Failed, []string{"wayback"}, "failed sources")
}
