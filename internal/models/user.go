package models

import "time"

// User представляет модель пользователя.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsClient     bool      `json:"isClient"`
	IsFreelancer bool      `json:"isFreelancer"`
	IsStaff      bool      `json:"isStaff"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserTakenMessage - причина отказа в регистрации при занятом имени или email.
const UserTakenMessage = "username or email already taken"

// RegisterRequest представляет структуру запроса на регистрацию.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=150"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	IsClient     bool   `json:"isClient"`
	IsFreelancer bool   `json:"isFreelancer"`
}

// Actor - аутентифицированный пользователь, от имени которого выполняется операция.
// Флаги приходят от внешнего провайдера идентификации.
type Actor struct {
	ID           string
	IsClient     bool
	IsFreelancer bool
	IsStaff      bool
}
