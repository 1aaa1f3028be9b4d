package models

import "time"

type ProposalStatus string // Статус предложения

const (
	PendingProposal  ProposalStatus = "Pending"  // Ожидает решения заказчика
	AcceptedProposal ProposalStatus = "Accepted" // Принято, по нему создан контракт
	RejectedProposal ProposalStatus = "Rejected" // Отклонено
)

// Proposal представляет модель предложения фрилансера.
type Proposal struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"projectId"`
	FreelancerID string         `json:"freelancerId"`
	ProposalText string         `json:"proposalText"`
	BidAmount    float64        `json:"bidAmount"`
	Status       ProposalStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ProposalRequest представляет структуру запроса для подачи предложения.
type ProposalRequest struct {
	ProjectID    string  `json:"projectId" validate:"required,uuid"`
	ProposalText string  `json:"proposalText" validate:"required"`
	BidAmount    float64 `json:"bidAmount" validate:"gt=0,lt=100000000"`
}

// ProposalFilter - фильтры списка предложений.
type ProposalFilter struct {
	ClientID     string
	FreelancerID string
	ProjectID    string
	Status       ProposalStatus
	Limit        int
	Offset       int
}
