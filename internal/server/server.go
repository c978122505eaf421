package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parking-allocator/internal/logging"
	"parking-allocator/internal/parking"
)

type Server struct {
	httpServer *http.Server
	handler    *Handler
}

func NewServer(port string, lot *parking.Lot, serviceName string) *Server {
	handler := NewHandler(lot, serviceName)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handler, newRegistry(lot)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
	}
}

func newRegistry(lot *parking.Lot) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newLotCollector(lot),
	)
	return registry
}

func NewRouter(handler *Handler, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(TracingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", handler.HealthCheck)
	r.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)

	r.Route("/api/parking-lot", func(r chi.Router) {
		r.Post("/spots", handler.AddSpot)
		r.Delete("/spots/{category}/{id}", handler.RemoveSpot)
		r.Post("/entry", handler.Entry)
		r.Post("/exit", handler.Exit)
		r.Get("/status", handler.GetStatus)
		r.Get("/vehicles/{number}", handler.FindVehicle)
		r.Get("/prices", handler.GetPrices)
	})

	return r
}

func (s *Server) Start() error {
	logging.Logger().Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Logger().Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://localhost%s", s.httpServer.Addr)
}
