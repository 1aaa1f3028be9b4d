package handlers

import (
	"fmt"
	"net/http"

	"github.com/senyabanana/talentlink-service/internal/logger"
)

// PingHandler обрабатывает GET запрос к /api/ping
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "ok"); err != nil {
		logger.FromContext(r.Context()).Error("failed to write ping response", "error", err)
	}
}
