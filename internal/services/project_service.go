package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/utils"
	"github.com/senyabanana/talentlink-service/internal/validator"

	"github.com/google/uuid"
)

// ProjectQuery - параметры запроса списка проектов.
type ProjectQuery struct {
	Categories []string
	Budget     string
	Duration   string
	Search     string
	Limit      string
	Offset     string
}

type ProjectService struct {
	Repo      repository.ProjectRepository
	Validator *validator.Validator
}

// NewProjectService создает новый экземпляр ProjectService.
func NewProjectService(repo repository.ProjectRepository, v *validator.Validator) *ProjectService {
	return &ProjectService{Repo: repo, Validator: v}
}

// CreateProject создает новый проект от имени заказчика.
func (s *ProjectService) CreateProject(ctx context.Context, actor models.Actor, projectReq models.ProjectRequest) (*models.Project, error) {
	if !actor.IsClient {
		return nil, models.Unauthorized("only clients can create projects")
	}
	if err := validateRequest(s.Validator, projectReq); err != nil {
		return nil, err
	}

	project := &models.Project{
		ClientID:    actor.ID,
		Title:       projectReq.Title,
		Description: projectReq.Description,
		Category:    projectReq.Category,
		Budget:      projectReq.Budget,
		Duration:    projectReq.Duration,
	}
	if err := s.Repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProjects возвращает проекты, доступные пользователю.
// Заказчик видит свои проекты, фрилансер - все.
func (s *ProjectService) GetProjects(ctx context.Context, actor models.Actor, query ProjectQuery) ([]models.Project, error) {
	limit, offset, err := utils.ParseLimitOffset(query.Limit, query.Offset)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	budget, err := utils.ParseOptionalFloat("budget", query.Budget)
	if err != nil {
		return nil, models.Validation(err.Error())
	}
	duration, err := utils.ParseOptionalInt("duration", query.Duration)
	if err != nil {
		return nil, models.Validation(err.Error())
	}

	filter := models.ProjectFilter{
		Budget:   budget,
		Duration: duration,
		Search:   strings.TrimSpace(query.Search),
		Limit:    limit,
		Offset:   offset,
	}
	for _, category := range query.Categories {
		if category = strings.TrimSpace(category); category != "" {
			filter.Categories = append(filter.Categories, category)
		}
	}

	switch {
	case actor.IsClient:
		filter.ClientID = actor.ID
	case actor.IsFreelancer:
	default:
		return []models.Project{}, nil
	}

	projects, err := s.Repo.GetProjects(ctx, filter)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// GetProject возвращает проект, если он доступен пользователю по тем же правилам, что и список.
func (s *ProjectService) GetProject(ctx context.Context, actor models.Actor, projectId string) (*models.Project, error) {
	project, err := s.Repo.GetProject(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if !projectVisible(actor, project) {
		return nil, models.NotFound("project not found")
	}
	return project, nil
}

func projectVisible(actor models.Actor, project *models.Project) bool {
	switch {
	case actor.IsClient:
		return project.ClientID == actor.ID
	case actor.IsFreelancer:
		return true
	default:
		return false
	}
}

// UpdateProject меняет проект. Доступно только владельцу.
func (s *ProjectService) UpdateProject(ctx context.Context, actor models.Actor, projectId string, projectReq models.ProjectRequest) (*models.Project, error) {
	if err := validateRequest(s.Validator, projectReq); err != nil {
		return nil, err
	}

	project, err := s.Repo.GetProject(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if project.ClientID != actor.ID {
		return nil, models.Unauthorized("user is not the owner of this project")
	}

	project.Title = projectReq.Title
	project.Description = projectReq.Description
	project.Category = projectReq.Category
	project.Budget = projectReq.Budget
	project.Duration = projectReq.Duration
	if err := s.Repo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject удаляет проект вместе с предложениями по нему.
func (s *ProjectService) DeleteProject(ctx context.Context, actor models.Actor, projectId string) error {
	project, err := s.Repo.GetProject(ctx, projectId)
	if err != nil {
		return err
	}
	if project.ClientID != actor.ID {
		return models.Unauthorized("user is not the owner of this project")
	}
	return s.Repo.DeleteProject(ctx, projectId)
}

// validateFilterID проверяет, что фильтр по ID, если задан, является UUID.
func validateFilterID(name, id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return models.Validation(fmt.Sprintf("invalid %s id", name))
	}
	return nil
}

// validateRequest проверяет DTO и переводит ошибку в models.ErrValidation.
func validateRequest(v *validator.Validator, req any) error {
	if err := v.Validate(req); err != nil {
		return models.Validation(err.Error())
	}
	return nil
}
