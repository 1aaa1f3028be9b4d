package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/services"
	"github.com/senyabanana/talentlink-service/internal/utils"
)

// NotificationHandler - структура для обработки HTTP-запросов по уведомлениям.
type NotificationHandler struct {
	Service *services.NotificationService
	Timeout time.Duration
}

// NewNotificationHandler создает новый экземпляр NotificationHandler.
func NewNotificationHandler(service *services.NotificationService, timeout time.Duration) *NotificationHandler {
	return &NotificationHandler{Service: service, Timeout: timeout}
}

// GetNotifications обрабатывает запросы для получения всех уведомлений.
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.ReadState(r.URL.Query().Get("state")))
}

// GetUnread обрабатывает запросы для получения непрочитанных уведомлений.
func (h *NotificationHandler) GetUnread(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.UnreadNotifications)
}

// GetRead обрабатывает запросы для получения прочитанных уведомлений.
func (h *NotificationHandler) GetRead(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.ReadNotifications)
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request, state models.ReadState) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	notifications, err := h.Service.GetNotifications(ctx, actor, state, r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		sendError(w, r, err, "failed to retrieve notifications")
		return
	}
	utils.SendJSON(w, http.StatusOK, notifications)
}

// MarkAsRead обрабатывает запросы для отметки уведомления прочитанным.
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	notificationId, ok := pathID(w, r, "notificationId", "notification")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.MarkAsRead(ctx, actor, notificationId); err != nil {
		sendError(w, r, err, "failed to mark notification as read")
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]string{"status": "notification marked as read"})
}

// MarkAllAsRead обрабатывает запросы для отметки всех уведомлений прочитанными.
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	count, err := h.Service.MarkAllAsRead(ctx, actor)
	if err != nil {
		sendError(w, r, err, "failed to mark notifications as read")
		return
	}
	utils.SendJSON(w, http.StatusOK, map[string]int64{"marked": count})
}
