package models

import "time"

// Message представляет сообщение в чате контракта.
type Message struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contractId"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"isRead"`
}

// MessageRequest представляет структуру запроса на отправку сообщения.
type MessageRequest struct {
	ContractID string `json:"contractId" validate:"required,uuid"`
	Text       string `json:"text" validate:"required,max=5000"`
}
