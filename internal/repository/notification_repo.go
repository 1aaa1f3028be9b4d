package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository - интерфейс для работы с уведомлениями.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetUserNotifications(ctx context.Context, userId string, state models.ReadState, limit, offset int) ([]models.Notification, error)
	// MarkAsRead возвращает false, если уведомление не найдено среди уведомлений пользователя.
	MarkAsRead(ctx context.Context, userId, notificationId string) (bool, error)
	MarkAllAsRead(ctx context.Context, userId string) (int64, error)
}

// PostgresNotificationRepository - реализация NotificationRepository для базы данных.
type PostgresNotificationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresNotificationRepository создает новый экземпляр PostgresNotificationRepository.
func NewPostgresNotificationRepository(db *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{DB: db}
}

// CreateNotification сохраняет уведомление.
func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now().UTC()

	_, err := conn(ctx, r.DB).Exec(ctx, `
		INSERT INTO notification (id, user_id, message, link, notification_type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		notification.ID,
		notification.UserID,
		notification.Message,
		notification.Link,
		notification.Type,
		notification.IsRead,
		notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetUserNotifications возвращает уведомления пользователя, новые первыми.
func (r *PostgresNotificationRepository) GetUserNotifications(ctx context.Context, userId string, state models.ReadState, limit, offset int) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, link, notification_type, is_read, created_at
	          FROM notification WHERE user_id = $1`
	args := []interface{}{userId}
	switch state {
	case models.UnreadNotifications:
		query += ` AND is_read = FALSE`
	case models.ReadNotifications:
		query += ` AND is_read = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Message,
			&notification.Link,
			&notification.Type,
			&notification.IsRead,
			&notification.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

// MarkAsRead отмечает уведомление пользователя прочитанным.
func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, userId, notificationId string) (bool, error) {
	tag, err := conn(ctx, r.DB).Exec(ctx,
		`UPDATE notification SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationId, userId)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkAllAsRead отмечает все непрочитанные уведомления пользователя и возвращает их количество.
func (r *PostgresNotificationRepository) MarkAllAsRead(ctx context.Context, userId string) (int64, error) {
	tag, err := conn(ctx, r.DB).Exec(ctx,
		`UPDATE notification SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userId)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return tag.RowsAffected(), nil
}
