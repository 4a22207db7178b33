// internal/core/usecases/aggregator.go
package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/logx"
)

// Aggregator coordina una agregación: valida el target, invoca todas las
// fuentes y fusiona sus resultados en un único documento.
type Aggregator struct {
	invoker  *Invoker
	notifier ports.Notifier
	merger   *Merger
	logger   logx.Logger
	now      func() time.Time
	newID    func() string
}

// AggregatorOptions configura el agregador.
type AggregatorOptions struct {
	Sources []ports.Source
	Logger  logx.Logger

	// Clock fija la marca de tiempo del documento (por defecto time.Now)
	Clock func() time.Time

	// IDGenerator produce el id del documento (por defecto uuid v4)
	IDGenerator func() string

	// Notifier recibe los eventos de progreso (por defecto ninguno)
	Notifier ports.Notifier
}

// NewAggregator falla con domain.ErrNoSources si no hay fuentes.
func NewAggregator(opts AggregatorOptions) (*Aggregator, error) {
	if len(opts.Sources) == 0 {
		return nil, domain.ErrNoSources
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = uuid.NewString
	}
	if opts.Notifier == nil {
		opts.Notifier = ports.NopNotifier{}
	}

	return &Aggregator{
		invoker:  NewInvoker(opts.Sources, opts.Logger).WithNotifier(opts.Notifier),
		notifier: opts.Notifier,
		merger:   NewMerger(),
		logger:   opts.Logger.With("component", "aggregator"),
		now:      opts.Clock,
		newID:    opts.IDGenerator,
	}, nil
}

// Sources devuelve los nombres de las fuentes en orden de invocación.
func (a *Aggregator) Sources() []string {
	return a.invoker.Sources()
}

// Aggregate devuelve siempre un documento para un target válido, aunque
// fallen todas las fuentes. Solo un target inválido produce error.
func (a *Aggregator) Aggregate(ctx context.Context, raw string) (*domain.AggregateResult, error) {
	target, err := domain.NewTarget(raw)
	if err != nil {
		a.logger.Debug("rejected target", "raw", raw, "error", err.Error())
		return nil, err
	}

	start := time.Now()
	a.logger.Info("starting aggregation",
		"target", target.Root,
		"kind", target.Kind,
		"sources", len(a.invoker.sources),
	)

	a.notify(ctx, ports.NewEvent(ports.EventTypeScanStarted, "", target.Root, ports.ScanStartedEvent{
		Kind:    target.Kind,
		Sources: a.invoker.Sources(),
	}))

	outcomes := a.invoker.Invoke(ctx, target)

	result := a.merger.Merge(target.Root, outcomes)
	result.ID = a.newID()
	result.Timestamp = a.now().UTC()

	a.notify(ctx, ports.NewEvent(ports.EventTypeScanCompleted, "", target.Root, ports.ScanCompletedEvent{
		ScanID:   result.ID,
		Counts:   result.Counts(),
		Failed:   result.FailedSources(),
		Duration: time.Since(start),
	}))

	a.logger.Info("aggregation completed",
		"target", target.Root,
		"subdomains", len(result.Subdomains),
		"ips", len(result.IPs),
		"services", len(result.Services),
		"urls", len(result.URLs),
		"dorks", len(result.Dorks),
		"failed_sources", len(result.FailedSources()),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

func (a *Aggregator) notify(ctx context.Context, event ports.Event) {
	if err := a.notifier.Notify(ctx, event); err != nil {
		a.logger.Debug("notifier failed", "event", string(event.Type), "error", err.Error())
	}
}
