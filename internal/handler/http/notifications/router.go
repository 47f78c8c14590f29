package notifications_http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/app/notifications"
)

func NewRouter(s notifications.NotificationService, l *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	RegisterRoutes(r, s, l)
	return r
}

func RegisterRoutes(r chi.Router, s notifications.NotificationService, l *zap.Logger) {
	handler := NewNotificationHandler(s, l.With(zap.String("component", "NotificationHTTPHandler")))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Notifications service is healthy!"))
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Post("/test", handler.SendTestNotificationHandler)
		r.Post("/bulk", handler.SendBulkNotificationHandler)
	})
}
