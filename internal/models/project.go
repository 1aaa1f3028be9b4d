package models

import "time"

// Project представляет модель проекта.
type Project struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Budget      float64   `json:"budget"`
	Duration    int       `json:"duration"` // Длительность в днях
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectRequest представляет структуру запроса для создания или обновления проекта.
type ProjectRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required,max=100"`
	Budget      float64 `json:"budget" validate:"gt=0"`
	Duration    int     `json:"duration" validate:"gte=1"`
}

// ProjectFilter - фильтры списка проектов.
type ProjectFilter struct {
	ClientID   string
	Categories []string
	Budget     *float64
	Duration   *int
	Search     string
	Limit      int
	Offset     int
}
