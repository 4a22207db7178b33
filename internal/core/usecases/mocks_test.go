// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"sync/atomic"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
)

// mockSource es un mock de ports.Source para tests del invoker y el agregador
type mockSource struct {
	name      string
	scanFunc  func(ctx context.Context, target domain.Target) (*domain.PartialResult, error)
	callCount atomic.Int32
}

func newMockSource(name string) *mockSource {
	return &mockSource{name: name}
}

func (m *mockSource) Name() string            { return m.name }
func (m *mockSource) Type() domain.SourceType { return domain.SourceTypeAPI }

func (m *mockSource) Scan(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
	m.callCount.Add(1)
	if m.scanFunc != nil {
		return m.scanFunc(ctx, target)
	}
	return domain.NewPartialResult(m.name), nil
}

// mockSourceWith devuelve siempre el mismo resultado parcial.
func mockSourceWith(name string, build func(p *domain.PartialResult)) *mockSource {
	mock := newMockSource(name)
	mock.scanFunc = func(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
		p := domain.NewPartialResult(name)
		build(p)
		return p, nil
	}
	return mock
}

// mockSourceErr falla siempre con err, aunque devuelva datos.
func mockSourceErr(name string, err error) *mockSource {
	mock := newMockSource(name)
	mock.scanFunc = func(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
		p := domain.NewPartialResult(name)
		p.Subdomains = append(p.Subdomains, domain.Subdomain{Name: "leaked." + target.Root})
		return p, err
	}
	return mock
}

func asSources(mocks ...*mockSource) []ports.Source {
	out := make([]ports.Source, 0, len(mocks))
	for _, m := range mocks {
		out = append(out, m)
	}
	return out
}

// recordingNotifier guarda los eventos recibidos; es seguro para uso concurrente.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, event ports.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingNotifier) types() map[ports.EventType]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[ports.EventType]int{}
	for _, e := range r.events {
		out[e.Type]++
	}
	return out
}
