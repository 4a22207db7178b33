// internal/core/usecases/invoker.go
package usecases

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
)

// Outcome es el desenlace de una fuente en una invocación.
// Si Err no es nil, Result es nil: una fuente aporta todo o nada.
type Outcome struct {
	Source   string
	Result   *domain.PartialResult
	Err      error
	Duration time.Duration
}

// Failed reports whether the source contributed nothing because of an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Invoker ejecuta todas las fuentes en paralelo contra un mismo target.
type Invoker struct {
	sources  []ports.Source
	notifier ports.Notifier
	logger   logx.Logger
}

// NewInvoker crea un invoker sobre un conjunto fijo de fuentes.
func NewInvoker(sources []ports.Source, logger logx.Logger) *Invoker {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &Invoker{
		sources:  append([]ports.Source(nil), sources...),
		notifier: ports.NopNotifier{},
		logger:   logger.With("component", "invoker"),
	}
}

// WithNotifier publica en n el inicio y el fin de cada fuente.
func (inv *Invoker) WithNotifier(n ports.Notifier) *Invoker {
	if n != nil {
		inv.notifier = n
	}
	return inv
}

// Sources devuelve los nombres en orden de invocación.
func (inv *Invoker) Sources() []string {
	names := make([]string, 0, len(inv.sources))
	for _, s := range inv.sources {
		names = append(names, s.Name())
	}
	return names
}

// Invoke lanza una goroutine por fuente y espera a todas. El slice devuelto
// tiene una entrada por fuente en orden de invocación, sea cual sea el orden
// en que terminen. No impone timeout global: cada fuente acota sus llamadas.
func (inv *Invoker) Invoke(ctx context.Context, target domain.Target) []Outcome {
	outcomes := make([]Outcome, len(inv.sources))

	// Las goroutines nunca devuelven error, así que ninguna cancela a las demás.
	var g errgroup.Group
	for i, source := range inv.sources {
		g.Go(func() error {
			inv.notify(ctx, ports.NewEvent(ports.EventTypeSourceStarted, source.Name(), target.Root, nil))
			outcomes[i] = inv.run(ctx, source, target)
			inv.notifyFinished(ctx, target, outcomes[i])
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// run ejecuta una fuente aislando errores y panics.
func (inv *Invoker) run(ctx context.Context, source ports.Source, target domain.Target) (out Outcome) {
	name := source.Name()
	out.Source = name
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			inv.logger.Warn("source panicked", "source", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			out.Result = nil
			out.Err = errors.Mark(errors.ErrInternalFault, fmt.Errorf("source %s panicked: %v", name, r))
		}
		out.Duration = time.Since(start)
	}()

	inv.logger.Debug("executing source", "source", name)

	result, err := source.Scan(ctx, target)
	if err != nil {
		inv.logger.Warn("source failed", "source", name, "kind", errors.KindOf(err).String(), "error", err.Error())
		out.Err = err
		return out
	}
	if result == nil {
		result = domain.NewPartialResult(name)
	}
	if result.Source == "" {
		result.Source = name
	}

	inv.logger.Debug("source completed", "source", name, "findings", result.Count(), "warnings", len(result.Warnings))
	out.Result = result
	return out
}

func (inv *Invoker) notifyFinished(ctx context.Context, target domain.Target, o Outcome) {
	eventType := ports.EventTypeSourceCompleted
	if o.Failed() {
		eventType = ports.EventTypeSourceFailed
	}
	inv.notify(ctx, ports.NewEvent(eventType, o.Source, target.Root, ports.SourceFinishedEvent{Report: sourceReport(o)}))
}

// notify nunca propaga: un notifier roto no debe afectar a la agregación.
func (inv *Invoker) notify(ctx context.Context, event ports.Event) {
	if err := inv.notifier.Notify(ctx, event); err != nil {
		inv.logger.Debug("notifier failed", "event", string(event.Type), "error", err.Error())
	}
}
