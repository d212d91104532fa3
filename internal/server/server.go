// Package server exposes the simulators as a stateless JSON HTTP service.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server holds the shared, read-only dependencies of the handlers.
type Server struct {
	engine   *calculation.SimulationEngine
	defaults domain.GlobalAssumptions
	logger   *logrus.Logger
}

// New creates a server. Requests that leave an assumption unset get it
// from defaults.
func New(engine *calculation.SimulationEngine, defaults domain.GlobalAssumptions, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	if engine == nil {
		engine = calculation.NewSimulationEngine()
	}
	return &Server{engine: engine, defaults: defaults.WithDefaults(), logger: logger}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware(s.logger))

	r.HandleFunc("/healthz", s.Health).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/prices", s.Prices).Methods("GET")
	v1.HandleFunc("/accumulate", s.Accumulate).Methods("POST")
	v1.HandleFunc("/withdraw", s.Withdraw).Methods("POST")
	v1.HandleFunc("/run", s.Run).Methods("POST")

	// A subrouter resolves its own misses, so both routers need the handlers.
	for _, router := range []*mux.Router{r, v1} {
		router.NotFoundHandler = http.HandlerFunc(notFound)
		router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
