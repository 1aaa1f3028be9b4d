package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ProjectRepository - интерфейс для работы с проектами.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, projectId string) (*models.Project, error)
	GetProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, projectId string) error
}

// PostgresProjectRepository - реализация ProjectRepository для базы данных.
type PostgresProjectRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProjectRepository создаёт новый экземпляр PostgresProjectRepository.
func NewPostgresProjectRepository(db *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

const projectColumns = `id, client_id, title, description, category, budget, duration, created_at, updated_at`

func scanProject(row interface{ Scan(dest ...any) error }, project *models.Project) error {
	return row.Scan(
		&project.ID,
		&project.ClientID,
		&project.Title,
		&project.Description,
		&project.Category,
		&project.Budget,
		&project.Duration,
		&project.CreatedAt,
		&project.UpdatedAt)
}

// CreateProject создает новый проект.
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	project.ID = uuid.New().String()
	project.CreatedAt = time.Now().UTC()
	project.UpdatedAt = project.CreatedAt

	_, err := conn(ctx, r.DB).Exec(ctx, `
       INSERT INTO project (`+projectColumns+`)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
   `,
		project.ID,
		project.ClientID,
		project.Title,
		project.Description,
		project.Category,
		project.Budget,
		project.Duration,
		project.CreatedAt,
		project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetProject возвращает проект по ID.
func (r *PostgresProjectRepository) GetProject(ctx context.Context, projectId string) (*models.Project, error) {
	var project models.Project
	row := conn(ctx, r.DB).QueryRow(ctx, `SELECT `+projectColumns+` FROM project WHERE id = $1`, projectId)
	if err := scanProject(row, &project); err != nil {
		return nil, notFound(err, "project")
	}
	return &project, nil
}

// GetProjects возвращает список проектов с учетом фильтров.
func (r *PostgresProjectRepository) GetProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project`
	var filters []string
	var args []interface{}
	argIndex := 1

	if filter.ClientID != "" {
		filters = append(filters, fmt.Sprintf("client_id = $%d", argIndex))
		args = append(args, filter.ClientID)
		argIndex++
	}
	if len(filter.Categories) > 0 {
		filters = append(filters, fmt.Sprintf("category = ANY($%d)", argIndex))
		args = append(args, pq.Array(filter.Categories))
		argIndex++
	}
	if filter.Budget != nil {
		filters = append(filters, fmt.Sprintf("budget = $%d", argIndex))
		args = append(args, *filter.Budget)
		argIndex++
	}
	if filter.Duration != nil {
		filters = append(filters, fmt.Sprintf("duration = $%d", argIndex))
		args = append(args, *filter.Duration)
		argIndex++
	}
	if filter.Search != "" {
		filters = append(filters, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := conn(ctx, r.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		if err := scanProject(rows, &project); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProject меняет поля проекта.
func (r *PostgresProjectRepository) UpdateProject(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now().UTC()
	tag, err := conn(ctx, r.DB).Exec(ctx, `
		UPDATE project SET title = $1, description = $2, category = $3, budget = $4, duration = $5, updated_at = $6
		WHERE id = $7`,
		project.Title,
		project.Description,
		project.Category,
		project.Budget,
		project.Duration,
		project.UpdatedAt,
		project.ID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("project not found")
	}
	return nil
}

// DeleteProject удаляет проект вместе с его предложениями.
func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, projectId string) error {
	tag, err := conn(ctx, r.DB).Exec(ctx, `DELETE FROM project WHERE id = $1`, projectId)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("project not found")
	}
	return nil
}
