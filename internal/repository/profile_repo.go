package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository - интерфейс для работы с профилями заказчиков и фрилансеров.
type ProfileRepository interface {
	CreateClientProfile(ctx context.Context, profile *models.ClientProfile) error
	GetClientProfile(ctx context.Context, userId string) (*models.ClientProfile, error)
	UpdateClientProfile(ctx context.Context, profile *models.ClientProfile) error
	CreateFreelancerProfile(ctx context.Context, profile *models.FreelancerProfile) error
	GetFreelancerProfile(ctx context.Context, userId string) (*models.FreelancerProfile, error)
	UpdateFreelancerProfile(ctx context.Context, profile *models.FreelancerProfile) error
	ListFreelancers(ctx context.Context, filter models.FreelancerFilter) ([]models.FreelancerProfile, error)
}

// PostgresProfileRepository - реализация ProfileRepository для базы данных.
type PostgresProfileRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProfileRepository создает новый экземпляр PostgresProfileRepository.
func NewPostgresProfileRepository(db *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// CreateClientProfile создает профиль заказчика. Повторное создание для того же
// пользователя ничего не меняет.
func (r *PostgresProfileRepository) CreateClientProfile(ctx context.Context, profile *models.ClientProfile) error {
	profile.ID = uuid.New().String()
	_, err := conn(ctx, r.DB).Exec(ctx, `
		INSERT INTO client_profile (id, user_id, company_name, bio, contact_email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING`,
		profile.ID, profile.UserID, profile.CompanyName, profile.Bio, profile.ContactEmail)
	if err != nil {
		return fmt.Errorf("failed to insert client profile: %w", err)
	}
	return nil
}

// GetClientProfile возвращает профиль заказчика по ID пользователя.
func (r *PostgresProfileRepository) GetClientProfile(ctx context.Context, userId string) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	err := conn(ctx, r.DB).QueryRow(ctx, `
		SELECT id, user_id, company_name, bio, contact_email
		FROM client_profile WHERE user_id = $1`, userId).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CompanyName,
		&profile.Bio,
		&profile.ContactEmail,
	)
	if err != nil {
		return nil, notFound(err, "client profile")
	}
	return &profile, nil
}

// UpdateClientProfile меняет профиль заказчика.
func (r *PostgresProfileRepository) UpdateClientProfile(ctx context.Context, profile *models.ClientProfile) error {
	tag, err := conn(ctx, r.DB).Exec(ctx, `
		UPDATE client_profile SET company_name = $1, bio = $2, contact_email = $3
		WHERE user_id = $4`,
		profile.CompanyName, profile.Bio, profile.ContactEmail, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to update client profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("client profile not found")
	}
	return nil
}

// CreateFreelancerProfile создает профиль фрилансера.
func (r *PostgresProfileRepository) CreateFreelancerProfile(ctx context.Context, profile *models.FreelancerProfile) error {
	profile.ID = uuid.New().String()
	_, err := conn(ctx, r.DB).Exec(ctx, `
		INSERT INTO freelancer_profile (id, user_id, portfolio, skills, hourly_rate, availability)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING`,
		profile.ID, profile.UserID, profile.Portfolio, profile.Skills, profile.HourlyRate, profile.Availability)
	if err != nil {
		return fmt.Errorf("failed to insert freelancer profile: %w", err)
	}
	return nil
}

const freelancerColumns = `fp.id, fp.user_id, u.username, fp.portfolio, fp.skills, fp.hourly_rate, fp.availability`

// GetFreelancerProfile возвращает профиль фрилансера по ID пользователя.
func (r *PostgresProfileRepository) GetFreelancerProfile(ctx context.Context, userId string) (*models.FreelancerProfile, error) {
	var profile models.FreelancerProfile
	err := conn(ctx, r.DB).QueryRow(ctx, `
		SELECT `+freelancerColumns+`
		FROM freelancer_profile fp
		JOIN users u ON u.id = fp.user_id
		WHERE fp.user_id = $1`, userId).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Username,
		&profile.Portfolio,
		&profile.Skills,
		&profile.HourlyRate,
		&profile.Availability,
	)
	if err != nil {
		return nil, notFound(err, "freelancer profile")
	}
	return &profile, nil
}

// UpdateFreelancerProfile меняет профиль фрилансера.
func (r *PostgresProfileRepository) UpdateFreelancerProfile(ctx context.Context, profile *models.FreelancerProfile) error {
	tag, err := conn(ctx, r.DB).Exec(ctx, `
		UPDATE freelancer_profile SET portfolio = $1, skills = $2, hourly_rate = $3, availability = $4
		WHERE user_id = $5`,
		profile.Portfolio, profile.Skills, profile.HourlyRate, profile.Availability, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to update freelancer profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("freelancer profile not found")
	}
	return nil
}

// ListFreelancers возвращает список фрилансеров с учетом фильтров.
func (r *PostgresProfileRepository) ListFreelancers(ctx context.Context, filter models.FreelancerFilter) ([]models.FreelancerProfile, error) {
	query := `SELECT ` + freelancerColumns + ` FROM freelancer_profile fp JOIN users u ON u.id = fp.user_id`
	var filters []string
	var args []interface{}
	argIndex := 1

	if filter.Skills != "" {
		filters = append(filters, fmt.Sprintf("fp.skills ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Skills+"%")
		argIndex++
	}
	if filter.MinRate != nil {
		filters = append(filters, fmt.Sprintf("fp.hourly_rate >= $%d", argIndex))
		args = append(args, *filter.MinRate)
		argIndex++
	}
	if filter.MaxRate != nil {
		filters = append(filters, fmt.Sprintf("fp.hourly_rate <= $%d", argIndex))
		args = append(args, *filter.MaxRate)
		argIndex++
	}
	if filter.Available != nil {
		filters = append(filters, fmt.Sprintf("fp.availability = $%d", argIndex))
		args = append(args, *filter.Available)
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY u.username LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := conn(ctx, r.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.FreelancerProfile
	for rows.Next() {
		var profile models.FreelancerProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Username,
			&profile.Portfolio,
			&profile.Skills,
			&profile.HourlyRate,
			&profile.Availability); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
