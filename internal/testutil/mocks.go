// internal/testutil/mocks.go
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Nota: Los mocks específicos de domain/ports están en sus respectivos paquetes
// Este archivo contiene solo utilidades genéricas sin dependencias circulares

// Responder decide status y cuerpo para una petición. Un cuerpo string o
// []byte se escribe tal cual; cualquier otro valor se serializa a JSON.
type Responder func(r *http.Request) (int, any)

// RecordingServer es un httptest.Server que guarda las peticiones recibidas.
type RecordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewJSONServer arranca un servidor de pruebas que se cierra con t.Cleanup.
func NewJSONServer(t testing.TB, respond Responder) *RecordingServer {
	t.Helper()
	rs := &RecordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, r.Clone(r.Context()))
		rs.mu.Unlock()

		status, body := respond(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch b := body.(type) {
		case nil:
		case string:
			_, _ = w.Write([]byte(b))
		case []byte:
			_, _ = w.Write(b)
		default:
			_ = json.NewEncoder(w).Encode(b)
		}
	}))
	t.Cleanup(rs.Close)
	return rs
}

// Requests devuelve una copia de las peticiones recibidas hasta ahora.
func (rs *RecordingServer) Requests() []*http.Request {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]*http.Request(nil), rs.requests...)
}

// Queries devuelve el valor del parámetro param de cada petición.
func (rs *RecordingServer) Queries(param string) []string {
	reqs := rs.Requests()
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.URL.Query().Get(param))
	}
	return out
}
