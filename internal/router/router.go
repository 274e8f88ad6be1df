package router

import (
	"net/http"

	"github.com/senyabanana/access-service/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(commandHandler *handlers.CommandHandler, pingHandler *handlers.PingHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", pingHandler.Ping)
	r.Post("/api/command", commandHandler.HandleCommand)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
