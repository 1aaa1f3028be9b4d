package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/services"
	"github.com/senyabanana/talentlink-service/internal/utils"
)

// ProposalHandler - структура для обработки HTTP-запросов по предложениям.
type ProposalHandler struct {
	Service *services.ProposalService
	Timeout time.Duration
}

// NewProposalHandler создает новый экземпляр ProposalHandler.
func NewProposalHandler(service *services.ProposalService, timeout time.Duration) *ProposalHandler {
	return &ProposalHandler{Service: service, Timeout: timeout}
}

// acceptResponse - ответ на принятие предложения.
type acceptResponse struct {
	Message    string `json:"message"`
	ContractID string `json:"contract_id"`
}

// SubmitProposal обрабатывает запросы для подачи предложения.
func (h *ProposalHandler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var proposalReq models.ProposalRequest
	if !decodeBody(w, r, &proposalReq) {
		return
	}

	proposal, err := h.Service.SubmitProposal(ctx, actor, proposalReq)
	if err != nil {
		sendError(w, r, err, "failed to submit proposal")
		return
	}
	utils.SendJSON(w, http.StatusCreated, proposal)
}

// GetProposals обрабатывает запросы для получения списка предложений.
func (h *ProposalHandler) GetProposals(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	proposals, err := h.Service.GetProposals(ctx, actor,
		query.Get("status"),
		query.Get("project"),
		query.Get("limit"),
		query.Get("offset"))
	if err != nil {
		sendError(w, r, err, "failed to retrieve proposals")
		return
	}
	utils.SendJSON(w, http.StatusOK, proposals)
}

// GetProposal обрабатывает запросы для получения предложения.
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	proposalId, ok := pathID(w, r, "proposalId", "proposal")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposal, err := h.Service.GetProposal(ctx, actor, proposalId)
	if err != nil {
		sendError(w, r, err, "failed to retrieve proposal")
		return
	}
	utils.SendJSON(w, http.StatusOK, proposal)
}

// AcceptProposal обрабатывает запросы для принятия предложения.
func (h *ProposalHandler) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	proposalId, ok := pathID(w, r, "proposalId", "proposal")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	result, err := h.Service.AcceptProposal(ctx, actor, proposalId)
	if err != nil {
		sendError(w, r, err, "failed to accept proposal")
		return
	}

	resp := acceptResponse{Message: "Contract already exists", ContractID: result.Contract.ID}
	status := http.StatusOK
	if result.Created {
		resp.Message = "Proposal accepted"
		status = http.StatusCreated
	}
	utils.SendJSON(w, status, resp)
}

// RejectProposal обрабатывает запросы для отклонения предложения.
func (h *ProposalHandler) RejectProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	proposalId, ok := pathID(w, r, "proposalId", "proposal")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposal, err := h.Service.RejectProposal(ctx, actor, proposalId)
	if err != nil {
		sendError(w, r, err, "failed to reject proposal")
		return
	}
	utils.SendJSON(w, http.StatusOK, proposal)
}
