package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProposalRepository - интерфейс для работы с предложениями.
type ProposalRepository interface {
	CreateProposal(ctx context.Context, proposal *models.Proposal) error
	GetProposal(ctx context.Context, proposalId string) (*models.Proposal, error)
	// GetProposalForUpdate блокирует строку предложения до конца транзакции.
	GetProposalForUpdate(ctx context.Context, proposalId string) (*models.Proposal, error)
	UpdateProposalStatus(ctx context.Context, proposalId string, status models.ProposalStatus) error
	GetProposals(ctx context.Context, filter models.ProposalFilter) ([]models.Proposal, error)
}

// PostgresProposalRepository - реализация ProposalRepository для базы данных.
type PostgresProposalRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProposalRepository создает новый экземпляр PostgresProposalRepository.
func NewPostgresProposalRepository(db *pgxpool.Pool) *PostgresProposalRepository {
	return &PostgresProposalRepository{DB: db}
}

const proposalColumns = `p.id, p.project_id, p.freelancer_id, p.proposal_text, p.bid_amount, p.status, p.created_at`

func scanProposal(row interface{ Scan(dest ...any) error }, proposal *models.Proposal) error {
	return row.Scan(
		&proposal.ID,
		&proposal.ProjectID,
		&proposal.FreelancerID,
		&proposal.ProposalText,
		&proposal.BidAmount,
		&proposal.Status,
		&proposal.CreatedAt)
}

// CreateProposal создает новое предложение в статусе Pending.
func (r *PostgresProposalRepository) CreateProposal(ctx context.Context, proposal *models.Proposal) error {
	proposal.ID = uuid.New().String()
	proposal.Status = models.PendingProposal
	proposal.CreatedAt = time.Now().UTC()

	insertQuery := `INSERT INTO proposal (id, project_id, freelancer_id, proposal_text, bid_amount, status, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := conn(ctx, r.DB).Exec(
		ctx,
		insertQuery,
		proposal.ID,
		proposal.ProjectID,
		proposal.FreelancerID,
		proposal.ProposalText,
		proposal.BidAmount,
		proposal.Status,
		proposal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert proposal: %w", err)
	}
	return nil
}

// GetProposal возвращает предложение по ID.
func (r *PostgresProposalRepository) GetProposal(ctx context.Context, proposalId string) (*models.Proposal, error) {
	var proposal models.Proposal
	row := conn(ctx, r.DB).QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposal p WHERE p.id = $1`, proposalId)
	if err := scanProposal(row, &proposal); err != nil {
		return nil, notFound(err, "proposal")
	}
	return &proposal, nil
}

// GetProposalForUpdate возвращает предложение и блокирует его строку.
func (r *PostgresProposalRepository) GetProposalForUpdate(ctx context.Context, proposalId string) (*models.Proposal, error) {
	var proposal models.Proposal
	row := conn(ctx, r.DB).QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposal p WHERE p.id = $1 FOR UPDATE`, proposalId)
	if err := scanProposal(row, &proposal); err != nil {
		return nil, notFound(err, "proposal")
	}
	return &proposal, nil
}

// UpdateProposalStatus меняет статус предложения.
func (r *PostgresProposalRepository) UpdateProposalStatus(ctx context.Context, proposalId string, status models.ProposalStatus) error {
	tag, err := conn(ctx, r.DB).Exec(ctx, `UPDATE proposal SET status = $1 WHERE id = $2`, status, proposalId)
	if err != nil {
		return fmt.Errorf("failed to update proposal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("proposal not found")
	}
	return nil
}

// GetProposals возвращает список предложений с учетом фильтров.
func (r *PostgresProposalRepository) GetProposals(ctx context.Context, filter models.ProposalFilter) ([]models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposal p JOIN project pr ON pr.id = p.project_id`
	var filters []string
	var args []interface{}
	argIndex := 1

	if filter.ClientID != "" {
		filters = append(filters, fmt.Sprintf("pr.client_id = $%d", argIndex))
		args = append(args, filter.ClientID)
		argIndex++
	}
	if filter.FreelancerID != "" {
		filters = append(filters, fmt.Sprintf("p.freelancer_id = $%d", argIndex))
		args = append(args, filter.FreelancerID)
		argIndex++
	}
	if filter.ProjectID != "" {
		filters = append(filters, fmt.Sprintf("p.project_id = $%d", argIndex))
		args = append(args, filter.ProjectID)
		argIndex++
	}
	if filter.Status != "" {
		filters = append(filters, fmt.Sprintf("p.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := conn(ctx, r.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		var proposal models.Proposal
		if err := scanProposal(rows, &proposal); err != nil {
			return nil, err
		}
		proposals = append(proposals, proposal)
	}
	return proposals, rows.Err()
}
