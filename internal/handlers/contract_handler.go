package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/services"
	"github.com/senyabanana/talentlink-service/internal/utils"
)

// ContractHandler - структура для обработки HTTP-запросов по контрактам.
type ContractHandler struct {
	Service *services.ContractService
	Timeout time.Duration
}

// NewContractHandler создает новый экземпляр ContractHandler.
func NewContractHandler(service *services.ContractService, timeout time.Duration) *ContractHandler {
	return &ContractHandler{Service: service, Timeout: timeout}
}

// GetContracts обрабатывает запросы для получения контрактов пользователя.
func (h *ContractHandler) GetContracts(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contracts, err := h.Service.GetContracts(ctx, actor, r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		sendError(w, r, err, "failed to retrieve contracts")
		return
	}
	utils.SendJSON(w, http.StatusOK, contracts)
}

// GetContract обрабатывает запросы для получения контракта.
func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	contractId, ok := pathID(w, r, "contractId", "contract")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contract, err := h.Service.GetContract(ctx, actor, contractId)
	if err != nil {
		sendError(w, r, err, "failed to retrieve contract")
		return
	}
	utils.SendJSON(w, http.StatusOK, contract)
}

// MarkCompleted обрабатывает запросы для завершения контракта.
func (h *ContractHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	contractId, ok := pathID(w, r, "contractId", "contract")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contract, err := h.Service.CompleteContract(ctx, actor, contractId)
	if err != nil {
		sendError(w, r, err, "failed to complete contract")
		return
	}
	utils.SendJSON(w, http.StatusOK, contract)
}

// ReviewContract обрабатывает запросы для отзыва по контракту.
func (h *ContractHandler) ReviewContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	contractId, ok := pathID(w, r, "contractId", "contract")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var reviewReq models.ContractReviewRequest
	if !decodeBody(w, r, &reviewReq) {
		return
	}

	contract, err := h.Service.ReviewContract(ctx, actor, contractId, reviewReq)
	if err != nil {
		sendError(w, r, err, "failed to review contract")
		return
	}
	utils.SendJSON(w, http.StatusOK, contract)
}
