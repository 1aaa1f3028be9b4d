package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users     repository.UserRepository
	Profiles  repository.ProfileRepository
	Tx        repository.Transactor
	Validator *validator.Validator
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users repository.UserRepository, profiles repository.ProfileRepository, tx repository.Transactor, v *validator.Validator) *UserService {
	return &UserService{Users: users, Profiles: profiles, Tx: tx, Validator: v}
}

// Register создает пользователя и его профиль в одной транзакции.
// Фрилансер получает профиль фрилансера, иначе заказчик получает профиль заказчика.
func (s *UserService) Register(ctx context.Context, registerReq models.RegisterRequest) (*models.User, error) {
	registerReq.Username = strings.TrimSpace(registerReq.Username)
	registerReq.Email = strings.TrimSpace(registerReq.Email)
	if err := validateRequest(s.Validator, registerReq); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registerReq.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     registerReq.Username,
		Email:        registerReq.Email,
		PasswordHash: string(hash),
		IsClient:     registerReq.IsClient,
		IsFreelancer: registerReq.IsFreelancer,
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.Users.CheckUserTaken(ctx, user.Username, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return models.Validation(models.UserTakenMessage)
		}
		if err := s.Users.CreateUser(ctx, user); err != nil {
			return err
		}
		return s.createDefaultProfile(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) createDefaultProfile(ctx context.Context, user *models.User) error {
	switch {
	case user.IsFreelancer:
		return s.Profiles.CreateFreelancerProfile(ctx, defaultFreelancerProfile(user.ID))
	case user.IsClient:
		return s.Profiles.CreateClientProfile(ctx, defaultClientProfile(user))
	}
	return nil
}

func defaultFreelancerProfile(userId string) *models.FreelancerProfile {
	return &models.FreelancerProfile{UserID: userId, Availability: true}
}

func defaultClientProfile(user *models.User) *models.ClientProfile {
	return &models.ClientProfile{
		UserID:       user.ID,
		CompanyName:  user.Username,
		ContactEmail: user.Email,
	}
}
