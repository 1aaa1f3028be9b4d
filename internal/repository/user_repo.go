package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository - интерфейс для работы с пользователями.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userId string) (*models.User, error)
	CheckUserTaken(ctx context.Context, username, email string) (bool, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser сохраняет нового пользователя, заполняя ID и CreatedAt.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now().UTC()

	insertQuery := `INSERT INTO users (id, username, email, password_hash, is_client, is_freelancer, is_staff, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := conn(ctx, r.DB).Exec(
		ctx,
		insertQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsClient,
		user.IsFreelancer,
		user.IsStaff,
		user.CreatedAt)
	if pgErrorCode(err) == codeUniqueViolation {
		return models.Validation(models.UserTakenMessage)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID возвращает пользователя по ID.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userId string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, is_client, is_freelancer, is_staff, created_at
	          FROM users WHERE id = $1`
	err := conn(ctx, r.DB).QueryRow(ctx, query, userId).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsClient,
		&user.IsFreelancer,
		&user.IsStaff,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// CheckUserTaken проверяет, занято ли имя пользователя или email.
func (r *PostgresUserRepository) CheckUserTaken(ctx context.Context, username, email string) (bool, error) {
	return exists(ctx, conn(ctx, r.DB),
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR lower(email) = lower($2))`,
		username, email)
}
