// Mini serveur keep-alive: répond aux pings d'uptime et expose /metrics.
package httphealth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Server {
	return &Server{log: log}
}

func (srv *Server) Start(addr string) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("wolfbot is alive"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv.log.Infow("keep-alive en écoute", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		srv.log.Warnw("keep-alive arrêté", "err", err)
	}
}
