package handler

import (
	"log/slog"
	"net/http"

	"github.com/mmoldabe-dev/subtrack/internal/domain"
	"github.com/mmoldabe-dev/subtrack/internal/service"
)

const maxNotificationLimit = 100

type HandlerNotification struct {
	services service.NotificationServiceInterface
	log      *slog.Logger
}

func NewHandlerNotification(services service.NotificationServiceInterface, log *slog.Logger) *HandlerNotification {
	return &HandlerNotification{
		services: services,
		log:      log.With(slog.String("component", "delivery/http")),
	}
}

type notificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// @Summary List notifications
// @Description Refreshes billing reminders first unless generate=false.
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param unread_only query bool false "only unread"
// @Param include_expired query bool false "include expired"
// @Param limit query int false "page size (default 50)"
// @Param generate query bool false "refresh reminders before listing (default true)"
// @Success 200 {object} notificationsResponse
// @Router /notifications [get]
func (h *HandlerNotification) listNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly, err := queryBool(r, "unread_only")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	includeExpired, err := queryBool(r, "include_expired")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", 0, 1, maxNotificationLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	generate := true
	if r.URL.Query().Get("generate") != "" {
		if generate, err = queryBool(r, "generate"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	uid := userID(r)
	if generate {
		if _, err := h.services.GenerateAll(r.Context(), uid); err != nil {
			writeServiceError(w, h.log, "failed to refresh notifications", err)
			return
		}
	}

	list, err := h.services.GetUserNotifications(r.Context(), uid, domain.NotificationQuery{
		UnreadOnly:     unreadOnly,
		IncludeExpired: includeExpired,
		Limit:          limit,
	})
	if err != nil {
		writeServiceError(w, h.log, "failed to list notifications", err)
		return
	}
	unread, err := h.services.GetUnreadCount(r.Context(), uid)
	if err != nil {
		writeServiceError(w, h.log, "failed to count unread notifications", err)
		return
	}

	writeJSON(w, http.StatusOK, notificationsResponse{Notifications: list, UnreadCount: unread})
}

// @Summary Refresh billing reminders
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Success 200 {object} domain.GenerationResult
// @Router /notifications/refresh [post]
func (h *HandlerNotification) refreshNotifications(w http.ResponseWriter, r *http.Request) {
	res, err := h.services.GenerateAll(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.log, "failed to refresh notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Success 200 {object} countResponse
// @Router /notifications/unread-count [get]
func (h *HandlerNotification) unreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.services.GetUnreadCount(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.log, "failed to count unread notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: int64(n)})
}

// @Summary Mark notification as read
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Param id path string true "notification id"
// @Success 200 {object} domain.Notification
// @Failure 404 {object} errorResponse
// @Router /notifications/{id} [patch]
func (h *HandlerNotification) markAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.services.MarkAsRead(r.Context(), id, userID(r))
	if err != nil {
		writeServiceError(w, h.log, "failed to mark notification as read", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "caller id"
// @Success 200 {object} countResponse
// @Router /notifications [patch]
func (h *HandlerNotification) markAllAsRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.services.MarkAllAsRead(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.log, "failed to mark notifications as read", err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}
