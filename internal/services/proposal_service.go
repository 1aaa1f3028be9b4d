package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/utils"
	"github.com/senyabanana/talentlink-service/internal/validator"
)

// allowedProposalTransition - допустимые переходы статуса предложения.
var allowedProposalTransition = map[models.ProposalStatus][]models.ProposalStatus{
	models.PendingProposal:  {models.AcceptedProposal, models.RejectedProposal},
	models.AcceptedProposal: {},
	models.RejectedProposal: {},
}

type ProposalService struct {
	Repo      repository.ProposalRepository
	Projects  repository.ProjectRepository
	Contracts repository.ContractRepository
	Tx        repository.Transactor
	Notifier  Notifier
	Validator *validator.Validator
}

// NewProposalService создает новый экземпляр ProposalService.
func NewProposalService(
	repo repository.ProposalRepository,
	projects repository.ProjectRepository,
	contracts repository.ContractRepository,
	tx repository.Transactor,
	notifier Notifier,
	v *validator.Validator,
) *ProposalService {
	return &ProposalService{
		Repo:      repo,
		Projects:  projects,
		Contracts: contracts,
		Tx:        tx,
		Notifier:  notifier,
		Validator: v,
	}
}

// SubmitProposal создает предложение фрилансера и уведомляет заказчика.
func (s *ProposalService) SubmitProposal(ctx context.Context, actor models.Actor, proposalReq models.ProposalRequest) (*models.Proposal, error) {
	if !actor.IsFreelancer {
		return nil, models.Unauthorized("only freelancers can submit proposals")
	}
	if err := validateRequest(s.Validator, proposalReq); err != nil {
		return nil, err
	}

	project, err := s.Projects.GetProject(ctx, proposalReq.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID == actor.ID {
		return nil, models.Unauthorized("user cannot submit a proposal to their own project")
	}

	proposal := &models.Proposal{
		ProjectID:    project.ID,
		FreelancerID: actor.ID,
		ProposalText: proposalReq.ProposalText,
		BidAmount:    proposalReq.BidAmount,
	}
	if err := s.Repo.CreateProposal(ctx, proposal); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, project.ClientID,
		fmt.Sprintf("New proposal submitted for your project '%s'.", project.Title),
		projectLink(project.ID),
		models.ProposalNotification)
	return proposal, nil
}

// AcceptProposal принимает предложение и создает по нему контракт.
// Повторный вызов возвращает уже созданный контракт без уведомления.
func (s *ProposalService) AcceptProposal(ctx context.Context, actor models.Actor, proposalId string) (*models.AcceptResult, error) {
	var (
		result  models.AcceptResult
		project *models.Project
	)

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		proposal, err := s.Repo.GetProposalForUpdate(ctx, proposalId)
		if err != nil {
			return err
		}
		project, err = s.Projects.GetProject(ctx, proposal.ProjectID)
		if err != nil {
			return err
		}
		if project.ClientID != actor.ID {
			return models.Unauthorized("user is not the client of this project")
		}
		if proposal.FreelancerID == project.ClientID {
			return models.InvalidState("proposal author is the client of this project")
		}

		switch proposal.Status {
		case models.PendingProposal:
			if err := s.Repo.UpdateProposalStatus(ctx, proposal.ID, models.AcceptedProposal); err != nil {
				return err
			}
		case models.AcceptedProposal:
			existing, err := s.Contracts.GetContractByProposal(ctx, proposal.ID)
			if err == nil {
				result.Contract = existing
				return nil
			}
			if !errors.Is(err, models.ErrNotFound) {
				return err
			}
		default:
			return models.InvalidState(fmt.Sprintf("proposal is %s and cannot be accepted", proposal.Status))
		}

		contract := &models.Contract{
			ProposalID:    proposal.ID,
			ClientID:      project.ClientID,
			FreelancerID:  proposal.FreelancerID,
			PaymentAmount: proposal.BidAmount,
			Status:        models.ActiveContract,
			ProjectTitle:  project.Title,
		}
		created, err := s.Contracts.CreateContract(ctx, contract)
		if err != nil {
			return err
		}
		if !created {
			existing, err := s.Contracts.GetContractByProposal(ctx, proposal.ID)
			if err != nil {
				return err
			}
			result.Contract = existing
			return nil
		}
		result.Contract = contract
		result.Created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Created {
		s.Notifier.Notify(ctx, result.Contract.FreelancerID,
			fmt.Sprintf("Your proposal for project '%s' has been accepted!", project.Title),
			contractLink(result.Contract.ID),
			models.ProposalNotification)
	}
	return &result, nil
}

// RejectProposal отклоняет предложение, находящееся на рассмотрении.
func (s *ProposalService) RejectProposal(ctx context.Context, actor models.Actor, proposalId string) (*models.Proposal, error) {
	var (
		proposal *models.Proposal
		project  *models.Project
	)

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		proposal, err = s.Repo.GetProposalForUpdate(ctx, proposalId)
		if err != nil {
			return err
		}
		project, err = s.Projects.GetProject(ctx, proposal.ProjectID)
		if err != nil {
			return err
		}
		if project.ClientID != actor.ID {
			return models.Unauthorized("user is not the client of this project")
		}

		if !utils.Contains(allowedProposalTransition[proposal.Status], models.RejectedProposal) {
			return models.InvalidState(fmt.Sprintf("proposal is %s and cannot be rejected", proposal.Status))
		}
		if err := s.Repo.UpdateProposalStatus(ctx, proposal.ID, models.RejectedProposal); err != nil {
			return err
		}
		proposal.Status = models.RejectedProposal
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, proposal.FreelancerID,
		fmt.Sprintf("Your proposal for project '%s' has been declined.", project.Title),
		projectLink(project.ID),
		models.ProposalNotification)
	return proposal, nil
}

// GetProposals возвращает предложения, доступные пользователю.
// Заказчик видит предложения по своим проектам, фрилансер - свои.
func (s *ProposalService) GetProposals(ctx context.Context, actor models.Actor, status, projectId, limitStr, offsetStr string) ([]models.Proposal, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	if err := validateFilterID("project", projectId); err != nil {
		return nil, err
	}

	filter := models.ProposalFilter{
		ProjectID: projectId,
		Status:    models.ProposalStatus(status),
		Limit:     limit,
		Offset:    offset,
	}
	if _, ok := allowedProposalTransition[filter.Status]; status != "" && !ok {
		return nil, models.Validation("invalid proposal status")
	}

	switch {
	case actor.IsClient:
		filter.ClientID = actor.ID
	case actor.IsFreelancer:
		filter.FreelancerID = actor.ID
	default:
		return []models.Proposal{}, nil
	}

	proposals, err := s.Repo.GetProposals(ctx, filter)
	if err != nil {
		return nil, err
	}
	if proposals == nil {
		proposals = []models.Proposal{}
	}
	return proposals, nil
}

// GetProposal возвращает предложение автору или заказчику проекта.
func (s *ProposalService) GetProposal(ctx context.Context, actor models.Actor, proposalId string) (*models.Proposal, error) {
	proposal, err := s.Repo.GetProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if proposal.FreelancerID == actor.ID || actor.IsStaff {
		return proposal, nil
	}

	project, err := s.Projects.GetProject(ctx, proposal.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != actor.ID {
		return nil, models.Unauthorized("user is not authorized to view this proposal")
	}
	return proposal, nil
}

func projectLink(projectId string) string {
	return fmt.Sprintf("/projects/%s/", projectId)
}

func contractLink(contractId string) string {
	return fmt.Sprintf("/contracts/%s/", contractId)
}
