package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractRepository - интерфейс для работы с контрактами.
type ContractRepository interface {
	// CreateContract создает контракт, если для предложения его еще нет.
	// Возвращает false, если контракт уже существовал.
	CreateContract(ctx context.Context, contract *models.Contract) (bool, error)
	GetContract(ctx context.Context, contractId string) (*models.Contract, error)
	GetContractByProposal(ctx context.Context, proposalId string) (*models.Contract, error)
	// MarkCompleted переводит активный контракт в Completed одним условным UPDATE.
	// Возвращает false, если контракт не был в статусе Active.
	MarkCompleted(ctx context.Context, contractId string) (bool, error)
	SaveReview(ctx context.Context, contractId string, rating int, review string) error
	GetUserContracts(ctx context.Context, userId string, limit, offset int) ([]models.Contract, error)
}

// PostgresContractRepository - реализация ContractRepository для базы данных.
type PostgresContractRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresContractRepository создает новый экземпляр PostgresContractRepository.
func NewPostgresContractRepository(db *pgxpool.Pool) *PostgresContractRepository {
	return &PostgresContractRepository{DB: db}
}

const contractSelect = `
	SELECT c.id, c.proposal_id, c.client_id, c.freelancer_id, c.payment_amount, c.status,
	       c.rating, c.review, c.created_at, pr.title
	FROM contract c
	JOIN proposal p ON p.id = c.proposal_id
	JOIN project pr ON pr.id = p.project_id`

func scanContract(row interface{ Scan(dest ...any) error }, contract *models.Contract) error {
	var rating *int16
	if err := row.Scan(
		&contract.ID,
		&contract.ProposalID,
		&contract.ClientID,
		&contract.FreelancerID,
		&contract.PaymentAmount,
		&contract.Status,
		&rating,
		&contract.Review,
		&contract.CreatedAt,
		&contract.ProjectTitle); err != nil {
		return err
	}
	if rating != nil {
		value := int(*rating)
		contract.Rating = &value
	}
	return nil
}

// CreateContract создает контракт. UNIQUE(proposal_id) не даёт создать второй.
func (r *PostgresContractRepository) CreateContract(ctx context.Context, contract *models.Contract) (bool, error) {
	contract.ID = uuid.New().String()
	contract.CreatedAt = time.Now().UTC()

	tag, err := conn(ctx, r.DB).Exec(ctx, `
		INSERT INTO contract (id, proposal_id, client_id, freelancer_id, payment_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (proposal_id) DO NOTHING`,
		contract.ID,
		contract.ProposalID,
		contract.ClientID,
		contract.FreelancerID,
		contract.PaymentAmount,
		contract.Status,
		contract.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert contract: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetContract возвращает контракт по ID.
func (r *PostgresContractRepository) GetContract(ctx context.Context, contractId string) (*models.Contract, error) {
	var contract models.Contract
	row := conn(ctx, r.DB).QueryRow(ctx, contractSelect+` WHERE c.id = $1`, contractId)
	if err := scanContract(row, &contract); err != nil {
		return nil, notFound(err, "contract")
	}
	return &contract, nil
}

// GetContractByProposal возвращает контракт, созданный по предложению.
func (r *PostgresContractRepository) GetContractByProposal(ctx context.Context, proposalId string) (*models.Contract, error) {
	var contract models.Contract
	row := conn(ctx, r.DB).QueryRow(ctx, contractSelect+` WHERE c.proposal_id = $1`, proposalId)
	if err := scanContract(row, &contract); err != nil {
		return nil, notFound(err, "contract")
	}
	return &contract, nil
}

// MarkCompleted завершает активный контракт.
func (r *PostgresContractRepository) MarkCompleted(ctx context.Context, contractId string) (bool, error) {
	tag, err := conn(ctx, r.DB).Exec(ctx,
		`UPDATE contract SET status = $1 WHERE id = $2 AND status = $3`,
		models.CompletedContract, contractId, models.ActiveContract)
	if err != nil {
		return false, fmt.Errorf("failed to complete contract: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SaveReview сохраняет оценку и отзыв по контракту.
func (r *PostgresContractRepository) SaveReview(ctx context.Context, contractId string, rating int, review string) error {
	tag, err := conn(ctx, r.DB).Exec(ctx,
		`UPDATE contract SET rating = $1, review = $2 WHERE id = $3`,
		rating, review, contractId)
	if err != nil {
		return fmt.Errorf("failed to save contract review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("contract not found")
	}
	return nil
}

// GetUserContracts возвращает контракты, в которых пользователь является стороной.
func (r *PostgresContractRepository) GetUserContracts(ctx context.Context, userId string, limit, offset int) ([]models.Contract, error) {
	rows, err := conn(ctx, r.DB).Query(ctx,
		contractSelect+` WHERE c.client_id = $1 OR c.freelancer_id = $1 ORDER BY c.created_at DESC LIMIT $2 OFFSET $3`,
		userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var contract models.Contract
		if err := scanContract(rows, &contract); err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}
