// internal/core/ports/notifier.go
package ports

import (
	"context"
	"time"

	"passivemap/internal/core/domain"
)

// Notifier es el port para eventos de progreso de una agregación.
// Desacopla el núcleo de la presentación (terminal, logs).
// Las implementaciones deben ser seguras para uso concurrente: el invoker
// notifica desde una goroutine por fuente.
type Notifier interface {
	// Notify publica un evento; un error nunca interrumpe la agregación
	Notify(ctx context.Context, event Event) error
}

// Event representa un evento del ciclo de vida de una agregación.
type Event struct {
	Type      EventType
	Timestamp time.Time

	// Source fuente que generó el evento (vacío en eventos de scan)
	Source string

	// Target objetivo normalizado
	Target string

	// Data datos específicos del evento (ScanStartedEvent, SourceFinishedEvent...)
	Data interface{}
}

// EventType define los tipos de eventos.
type EventType string

const (
	EventTypeScanStarted   EventType = "scan.started"
	EventTypeScanCompleted EventType = "scan.completed"

	EventTypeSourceStarted   EventType = "source.started"
	EventTypeSourceCompleted EventType = "source.completed"
	EventTypeSourceFailed    EventType = "source.failed"
)

// NewEvent crea un evento con marca de tiempo actual.
func NewEvent(eventType EventType, source, target string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		Target:    target,
		Data:      data,
	}
}

// ScanStartedEvent acompaña a EventTypeScanStarted.
type ScanStartedEvent struct {
	Kind    domain.TargetKind
	Sources []string
}

// SourceFinishedEvent acompaña a EventTypeSourceCompleted y EventTypeSourceFailed.
type SourceFinishedEvent struct {
	Report domain.SourceReport
}

// ScanCompletedEvent acompaña a EventTypeScanCompleted.
type ScanCompletedEvent struct {
	ScanID   string
	Counts   map[domain.Category]int
	Failed   []string
	Duration time.Duration
}

// NopNotifier descarta todos los eventos.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) error { return nil }
