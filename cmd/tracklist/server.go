package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tracklist/internal/config"
	"tracklist/internal/handlers"
	"tracklist/internal/middleware"
)

func newHTTPHandler(cfg *config.Config, svc handlers.PlaylistService, reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	metrics := middleware.NewMetrics(reg)
	playlistHandler := handlers.New(svc)

	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	api := router.PathPrefix("/api").Subrouter()
	playlistHandler.Register(api)

	router.HandleFunc("/health", playlistHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return withMiddleware(cfg, router)
}

// withMiddleware wraps h so that request logging runs outermost and a
// recovered panic is logged with the request id.
func withMiddleware(cfg *config.Config, h http.Handler) http.Handler {
	h = middleware.CORS(cfg.CORS.AllowedOrigins)(h)
	h = middleware.Recovery()(h)
	h = middleware.RequestLogging()(h)
	return h
}
