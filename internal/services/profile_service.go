package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/utils"
	"github.com/senyabanana/talentlink-service/internal/validator"
)

// FreelancerQuery - параметры запроса списка фрилансеров.
type FreelancerQuery struct {
	Skills       string
	MinRate      string
	MaxRate      string
	Availability string
	Limit        string
	Offset       string
}

type ProfileService struct {
	Repo      repository.ProfileRepository
	Users     repository.UserRepository
	Validator *validator.Validator
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo repository.ProfileRepository, users repository.UserRepository, v *validator.Validator) *ProfileService {
	return &ProfileService{Repo: repo, Users: users, Validator: v}
}

// GetClientProfile возвращает профиль заказчика, создавая его при отсутствии.
func (s *ProfileService) GetClientProfile(ctx context.Context, actor models.Actor) (*models.ClientProfile, error) {
	if !actor.IsClient {
		return nil, models.Unauthorized("user is not a client")
	}

	profile, err := s.Repo.GetClientProfile(ctx, actor.ID)
	if !errors.Is(err, models.ErrNotFound) {
		return profile, err
	}

	user, err := s.Users.GetUserByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateClientProfile(ctx, defaultClientProfile(user)); err != nil {
		return nil, err
	}
	return s.Repo.GetClientProfile(ctx, actor.ID)
}

// UpdateClientProfile меняет профиль заказчика.
func (s *ProfileService) UpdateClientProfile(ctx context.Context, actor models.Actor, profileReq models.ClientProfileRequest) (*models.ClientProfile, error) {
	if err := validateRequest(s.Validator, profileReq); err != nil {
		return nil, err
	}

	profile, err := s.GetClientProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	profile.CompanyName = profileReq.CompanyName
	profile.Bio = profileReq.Bio
	profile.ContactEmail = profileReq.ContactEmail
	if err := s.Repo.UpdateClientProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetFreelancerProfile возвращает профиль фрилансера, создавая его при отсутствии.
func (s *ProfileService) GetFreelancerProfile(ctx context.Context, actor models.Actor) (*models.FreelancerProfile, error) {
	if !actor.IsFreelancer {
		return nil, models.Unauthorized("user is not a freelancer")
	}

	profile, err := s.Repo.GetFreelancerProfile(ctx, actor.ID)
	if !errors.Is(err, models.ErrNotFound) {
		return profile, err
	}

	if err := s.Repo.CreateFreelancerProfile(ctx, defaultFreelancerProfile(actor.ID)); err != nil {
		return nil, err
	}
	return s.Repo.GetFreelancerProfile(ctx, actor.ID)
}

// UpdateFreelancerProfile меняет профиль фрилансера.
func (s *ProfileService) UpdateFreelancerProfile(ctx context.Context, actor models.Actor, profileReq models.FreelancerProfileRequest) (*models.FreelancerProfile, error) {
	if err := validateRequest(s.Validator, profileReq); err != nil {
		return nil, err
	}

	profile, err := s.GetFreelancerProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	profile.Portfolio = profileReq.Portfolio
	profile.Skills = profileReq.Skills
	profile.HourlyRate = profileReq.HourlyRate
	if profileReq.Availability != nil {
		profile.Availability = *profileReq.Availability
	}
	if err := s.Repo.UpdateFreelancerProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListFreelancers возвращает профили фрилансеров по фильтрам.
func (s *ProfileService) ListFreelancers(ctx context.Context, query FreelancerQuery) ([]models.FreelancerProfile, error) {
	limit, offset, err := utils.ParseLimitOffset(query.Limit, query.Offset)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	minRate, err := utils.ParseOptionalFloat("hourly_rate__gte", query.MinRate)
	if err != nil {
		return nil, models.Validation(err.Error())
	}
	maxRate, err := utils.ParseOptionalFloat("hourly_rate__lte", query.MaxRate)
	if err != nil {
		return nil, models.Validation(err.Error())
	}
	available, err := utils.ParseOptionalBool("availability", query.Availability)
	if err != nil {
		return nil, models.Validation(err.Error())
	}

	profiles, err := s.Repo.ListFreelancers(ctx, models.FreelancerFilter{
		Skills:    strings.TrimSpace(query.Skills),
		MinRate:   minRate,
		MaxRate:   maxRate,
		Available: available,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.FreelancerProfile{}
	}
	return profiles, nil
}
