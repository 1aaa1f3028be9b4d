package models

import "time"

type (
	NotificationType string // Тип уведомления
	ReadState        string // Фильтр по признаку прочтения
)

const (
	ProjectNotification  NotificationType = "project"
	ProposalNotification NotificationType = "proposal"
	MessageNotification  NotificationType = "message"
	SystemNotification   NotificationType = "system"

	AllNotifications    ReadState = "all"
	UnreadNotifications ReadState = "unread"
	ReadNotifications   ReadState = "read"
)

// Notification представляет уведомление пользователя.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Message   string           `json:"message"`
	Link      *string          `json:"link,omitempty"`
	Type      NotificationType `json:"notificationType"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
