package models

import "time"

type ContractStatus string // Статус контракта

const (
	PendingContract   ContractStatus = "Pending"
	ActiveContract    ContractStatus = "Active"
	CompletedContract ContractStatus = "Completed"
	CancelledContract ContractStatus = "Cancelled"
)

// Contract представляет модель контракта. Заказчик, фрилансер и сумма
// фиксируются при создании и не зависят от последующих изменений предложения.
type Contract struct {
	ID            string         `json:"id"`
	ProposalID    string         `json:"proposalId"`
	ClientID      string         `json:"clientId"`
	FreelancerID  string         `json:"freelancerId"`
	PaymentAmount float64        `json:"paymentAmount"`
	Status        ContractStatus `json:"status"`
	Rating        *int           `json:"rating,omitempty"`
	Review        *string        `json:"review,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	ProjectTitle  string         `json:"projectTitle,omitempty"`
}

// HasParty проверяет, является ли пользователь стороной контракта.
func (c *Contract) HasParty(userID string) bool {
	return c.ClientID == userID || c.FreelancerID == userID
}

// AcceptResult - результат принятия предложения.
type AcceptResult struct {
	Contract *Contract
	Created  bool // false, если контракт уже существовал
}

// ContractReviewRequest - оценка заказчика по завершенному контракту.
type ContractReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"max=2000"`
}
