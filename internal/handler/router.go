package handler

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mmoldabe-dev/subtrack/internal/middleware"
)

// SetupRouter mounts every route. Everything except /currencies and the docs
// requires the X-User-ID header.
func SetupRouter(subs *HandlerSubscription, notes *HandlerNotification, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	auth := func(fn http.HandlerFunc) http.Handler { return middleware.RequireUser(fn) }

	mux.Handle("POST /subscriptions", auth(subs.createSubscription))
	mux.Handle("GET /subscriptions", auth(subs.listSubscription))
	mux.Handle("GET /subscriptions/{id}", auth(subs.getSubscription))
	mux.Handle("PATCH /subscriptions/{id}", auth(subs.updateSubscription))
	mux.Handle("DELETE /subscriptions/{id}", auth(subs.deleteSubscription))

	mux.Handle("GET /dashboard/stats", auth(subs.getDashboardStats))
	mux.Handle("GET /dashboard/trends", auth(subs.getSpendingTrends))

	mux.Handle("GET /notifications", auth(notes.listNotifications))
	mux.Handle("PATCH /notifications", auth(notes.markAllAsRead))
	mux.Handle("POST /notifications/refresh", auth(notes.refreshNotifications))
	mux.Handle("GET /notifications/unread-count", auth(notes.unreadCount))
	mux.Handle("PATCH /notifications/{id}", auth(notes.markAsRead))

	mux.HandleFunc("GET /currencies", subs.listCurrencies)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return middleware.Chain(mux,
		middleware.LoggingMiddleware(log),
		middleware.RecoverMiddleware(log),
	)
}
