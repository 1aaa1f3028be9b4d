package services

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/senyabanana/talentlink-service/internal/logger"
	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/utils"
)

const (
	maxNotificationLength = 255
	notifyTimeout         = 5 * time.Second
)

// Notifier - отправка уведомления пользователю.
// Ошибки доставки не возвращаются вызывающей стороне.
type Notifier interface {
	Notify(ctx context.Context, userId, message, link string, notificationType models.NotificationType)
}

// NotificationService - уведомления пользователей.
type NotificationService struct {
	Repo repository.NotificationRepository
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{Repo: repo}
}

// Notify сохраняет уведомление. Ошибка записи только логируется.
// Запись не зависит от отмены ctx: к моменту вызова переход уже зафиксирован.
func (s *NotificationService) Notify(ctx context.Context, userId, message, link string, notificationType models.NotificationType) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if notificationType == "" {
		notificationType = models.SystemNotification
	}
	notification := &models.Notification{
		UserID:  userId,
		Message: truncate(message, maxNotificationLength),
		Type:    notificationType,
	}
	if link != "" {
		notification.Link = &link
	}

	if err := s.Repo.CreateNotification(ctx, notification); err != nil {
		logger.FromContext(ctx).Error("failed to create notification",
			"recipient_id", userId,
			"notification_type", notificationType,
			"error", err)
	}
}

// GetNotifications возвращает уведомления пользователя с фильтром по прочтению.
func (s *NotificationService) GetNotifications(ctx context.Context, actor models.Actor, state models.ReadState, limitStr, offsetStr string) ([]models.Notification, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	switch state {
	case "":
		state = models.AllNotifications
	case models.AllNotifications, models.UnreadNotifications, models.ReadNotifications:
	default:
		return nil, models.Validation("invalid read state, must be 'all', 'unread' or 'read'")
	}

	notifications, err := s.Repo.GetUserNotifications(ctx, actor.ID, state, limit, offset)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// MarkAsRead отмечает уведомление пользователя прочитанным.
func (s *NotificationService) MarkAsRead(ctx context.Context, actor models.Actor, notificationId string) error {
	updated, err := s.Repo.MarkAsRead(ctx, actor.ID, notificationId)
	if err != nil {
		return err
	}
	if !updated {
		return models.NotFound("notification not found")
	}
	return nil
}

// MarkAllAsRead отмечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, actor models.Actor) (int64, error) {
	return s.Repo.MarkAllAsRead(ctx, actor.ID)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
