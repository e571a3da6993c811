package api

import (
	"fmt"
	"net/http"
	"time"

	"eventmatch/internal/logger"
	"eventmatch/internal/monitoring"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", clientHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Get("/featured", h.FeaturedEvents)
			r.Get("/stats", h.EventStats)
			r.Get("/{eventId}", h.GetEvent)
			r.Get("/{eventId}/qr", h.EventQR)
		})
		h.Logger.Info("ROUTER", "Event routes registered under /api/events")

		r.Get("/search", h.SearchEvents)
		r.Get("/search/featured", h.SearchFeatured)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", h.ListBookmarks)
			r.Post("/{eventId}/toggle", h.ToggleBookmark)
		})
		h.Logger.Info("ROUTER", "Bookmark routes registered under /api/bookmarks")

		r.Route("/chat/sessions", func(r chi.Router) {
			r.Post("/", h.CreateChatSession)
			r.Get("/{sessionId}", h.GetChatSession)
			r.Post("/{sessionId}/messages", h.SubmitChatMessage)
			r.Get("/{sessionId}/stream", h.StreamChatReplies)
		})
		h.Logger.Info("ROUTER", "Chat routes registered under /api/chat/sessions")
	})

	return r
}

// requestLogger logs each request and records it under its route pattern.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			duration := time.Since(start)

			monitoring.TrackRequest(r.Method, route, status, duration)
			if route != "/metrics" && route != "/healthz" {
				log.LogAPI(r.Method, r.URL.Path, status, duration)
			}
			if status >= http.StatusInternalServerError {
				log.Warn("HTTP", fmt.Sprintf("%s %s answered %d", r.Method, r.URL.Path, status))
			}
		})
	}
}
