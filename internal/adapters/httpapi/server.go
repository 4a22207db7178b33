// internal/adapters/httpapi/server.go
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/cache"
	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
)

// maxBodyBytes limita el cuerpo de POST /api/target.
const maxBodyBytes = 64 << 10

// Aggregator es la única dependencia del adapter sobre el núcleo.
type Aggregator interface {
	Aggregate(ctx context.Context, target string) (*domain.AggregateResult, error)
}

// Options configura el servidor HTTP.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	Logger          logx.Logger

	// CacheTTL > 0 reutiliza el resultado de un target durante ese tiempo
	CacheTTL  time.Duration
	CacheSize int
}

// Server expone la agregación por HTTP.
type Server struct {
	agg             Aggregator
	cached          *cachedAggregator
	logger          logx.Logger
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

type targetRequest struct {
	Target string `json:"target"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New construye el servidor; no empieza a escuchar hasta Run.
func New(agg Aggregator, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logx.NewNop()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	logger := opts.Logger.With("component", "httpapi")
	s := &Server{
		agg:             agg,
		logger:          logger,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if opts.CacheTTL > 0 {
		s.cached = &cachedAggregator{
			next:   agg,
			cache:  cache.New[*domain.AggregateResult](opts.CacheSize, opts.CacheTTL),
			ttl:    opts.CacheTTL,
			logger: logger,
		}
		s.agg = s.cached
	}
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler devuelve el mux con CORS aplicado; útil para httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /api/target", s.handleTarget)
	return withCORS(mux)
}

// Run escucha hasta que ctx se cancela y entonces apaga de forma ordenada.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Mark(errors.ErrInternalFault, err)
	}
	return s.Serve(ctx, ln)
}

// Serve atiende sobre un listener ya abierto. Con caché activa purga las
// entradas caducadas cada TTL mientras el servidor sigue vivo.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cached != nil {
		purgeCtx, stopPurge := context.WithCancel(ctx)
		purged := make(chan struct{})
		go func() {
			defer close(purged)
			s.cached.purgeLoop(purgeCtx, s.cached.ttl)
		}()
		defer func() {
			stopPurge()
			<-purged
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Mark(errors.ErrInternalFault, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Mark(errors.ErrInternalFault, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "PassiveMap: OK")
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := s.agg.Aggregate(r.Context(), req.Target)
	if err != nil {
		status := statusFor(err)
		s.logger.Warn("aggregation rejected", "target", req.Target, "status", status, "error", err.Error())
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	s.logger.Info("aggregation served",
		"target", result.Target,
		"findings", result.TotalFindings(),
		"duration", time.Since(start).String(),
	)
	writeJSON(w, http.StatusOK, result)
}

// statusFor traduce la taxonomía de errores a códigos HTTP.
func statusFor(err error) int {
	if errors.IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// withCORS permite cualquier origen; el preflight responde 204 sin llegar al mux.
func withCORS(next http.Handler) http.Handler {
	methods := strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", methods)
		if req := r.Header.Get("Access-Control-Request-Headers"); req != "" {
			h.Set("Access-Control-Allow-Headers", req)
		} else {
			h.Set("Access-Control-Allow-Headers", "*")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
