package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/senyabanana/talentlink-service/internal/logger"
	"github.com/senyabanana/talentlink-service/internal/middleware"
	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// sendError отправляет ошибку сервиса. Неизвестные ошибки отдаются как 500 с fallback сообщением.
func sendError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := requestLogger(r)

	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		log.Warn("request failed", "status", errorResponse.StatusCode, "error", err)
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	log.Error(fallback, "error", err)
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}

// requireActor достает пользователя из контекста запроса.
func requireActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
	}
	return actor, ok
}

// pathID достает ID сущности из пути. Значение, не являющееся UUID, не может ссылаться на запись.
func pathID(w http.ResponseWriter, r *http.Request, param, entity string) (string, bool) {
	id := chi.URLParam(r, param)
	if _, err := uuid.Parse(id); err != nil {
		utils.SendErrorResponse(w, http.StatusNotFound, entity+" not found")
		return "", false
	}
	return id, true
}

// decodeBody разбирает тело запроса в формате JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// requestLogger возвращает логгер с request_id и user_id запроса.
func requestLogger(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}
