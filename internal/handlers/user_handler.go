package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/services"
	"github.com/senyabanana/talentlink-service/internal/utils"
)

// UserHandler - регистрация и профили пользователей.
type UserHandler struct {
	Users    *services.UserService
	Profiles *services.ProfileService
	Timeout  time.Duration
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(users *services.UserService, profiles *services.ProfileService, timeout time.Duration) *UserHandler {
	return &UserHandler{Users: users, Profiles: profiles, Timeout: timeout}
}

// Register обрабатывает запросы для регистрации пользователя.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var registerReq models.RegisterRequest
	if !decodeBody(w, r, &registerReq) {
		return
	}

	user, err := h.Users.Register(ctx, registerReq)
	if err != nil {
		sendError(w, r, err, "failed to register user")
		return
	}
	utils.SendJSON(w, http.StatusCreated, user)
}

// GetClientProfile обрабатывает запросы для получения профиля заказчика.
func (h *UserHandler) GetClientProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	profile, err := h.Profiles.GetClientProfile(ctx, actor)
	if err != nil {
		sendError(w, r, err, "failed to retrieve client profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, profile)
}

// UpdateClientProfile обрабатывает запросы для изменения профиля заказчика.
func (h *UserHandler) UpdateClientProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var profileReq models.ClientProfileRequest
	if !decodeBody(w, r, &profileReq) {
		return
	}

	profile, err := h.Profiles.UpdateClientProfile(ctx, actor, profileReq)
	if err != nil {
		sendError(w, r, err, "failed to update client profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, profile)
}

// GetFreelancerProfile обрабатывает запросы для получения профиля фрилансера.
func (h *UserHandler) GetFreelancerProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	profile, err := h.Profiles.GetFreelancerProfile(ctx, actor)
	if err != nil {
		sendError(w, r, err, "failed to retrieve freelancer profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, profile)
}

// UpdateFreelancerProfile обрабатывает запросы для изменения профиля фрилансера.
func (h *UserHandler) UpdateFreelancerProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var profileReq models.FreelancerProfileRequest
	if !decodeBody(w, r, &profileReq) {
		return
	}

	profile, err := h.Profiles.UpdateFreelancerProfile(ctx, actor, profileReq)
	if err != nil {
		sendError(w, r, err, "failed to update freelancer profile")
		return
	}
	utils.SendJSON(w, http.StatusOK, profile)
}

// ListFreelancers обрабатывает запросы для поиска фрилансеров.
func (h *UserHandler) ListFreelancers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	profiles, err := h.Profiles.ListFreelancers(ctx, services.FreelancerQuery{
		Skills:       query.Get("skills__icontains"),
		MinRate:      query.Get("hourly_rate__gte"),
		MaxRate:      query.Get("hourly_rate__lte"),
		Availability: query.Get("availability"),
		Limit:        query.Get("limit"),
		Offset:       query.Get("offset"),
	})
	if err != nil {
		sendError(w, r, err, "failed to retrieve profiles")
		return
	}
	utils.SendJSON(w, http.StatusOK, profiles)
}
