package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/services"
	"github.com/senyabanana/talentlink-service/internal/utils"
)

// MessageHandler - структура для обработки HTTP-запросов по сообщениям.
type MessageHandler struct {
	Service *services.MessageService
	Timeout time.Duration
}

// NewMessageHandler создает новый экземпляр MessageHandler.
func NewMessageHandler(service *services.MessageService, timeout time.Duration) *MessageHandler {
	return &MessageHandler{Service: service, Timeout: timeout}
}

// SendMessage обрабатывает запросы для отправки сообщения.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var messageReq models.MessageRequest
	if !decodeBody(w, r, &messageReq) {
		return
	}

	message, err := h.Service.SendMessage(ctx, actor, messageReq)
	if err != nil {
		sendError(w, r, err, "failed to send message")
		return
	}
	utils.SendJSON(w, http.StatusCreated, message)
}

// GetMessages обрабатывает запросы для получения сообщений.
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	messages, err := h.Service.GetMessages(ctx, actor, query.Get("contract"), query.Get("limit"), query.Get("offset"))
	if err != nil {
		sendError(w, r, err, "failed to retrieve messages")
		return
	}
	utils.SendJSON(w, http.StatusOK, messages)
}
