package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/utils"
	"github.com/senyabanana/talentlink-service/internal/validator"
)

type ContractService struct {
	Repo      repository.ContractRepository
	Notifier  Notifier
	Validator *validator.Validator
}

// NewContractService создает новый экземпляр ContractService.
func NewContractService(repo repository.ContractRepository, notifier Notifier, v *validator.Validator) *ContractService {
	return &ContractService{Repo: repo, Notifier: notifier, Validator: v}
}

// CompleteContract завершает активный контракт и уведомляет обе стороны.
func (s *ContractService) CompleteContract(ctx context.Context, actor models.Actor, contractId string) (*models.Contract, error) {
	contract, err := s.Repo.GetContract(ctx, contractId)
	if err != nil {
		return nil, err
	}
	if contract.ClientID != actor.ID && !actor.IsStaff {
		return nil, models.Unauthorized("only the client can complete this contract")
	}
	if err := completionAllowed(contract.Status); err != nil {
		return nil, err
	}

	updated, err := s.Repo.MarkCompleted(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Статус изменился между чтением и обновлением.
		current, err := s.Repo.GetContract(ctx, contract.ID)
		if err != nil {
			return nil, err
		}
		if err := completionAllowed(current.Status); err != nil {
			return nil, err
		}
		return nil, models.InvalidState("contract status changed concurrently")
	}
	contract.Status = models.CompletedContract

	link := contractLink(contract.ID)
	s.Notifier.Notify(ctx, contract.ClientID,
		fmt.Sprintf("Your project '%s' has been marked as completed.", contract.ProjectTitle),
		link, models.ProjectNotification)
	s.Notifier.Notify(ctx, contract.FreelancerID,
		fmt.Sprintf("You have successfully completed the project '%s'.", contract.ProjectTitle),
		link, models.ProjectNotification)
	return contract, nil
}

func completionAllowed(status models.ContractStatus) error {
	switch status {
	case models.ActiveContract:
		return nil
	case models.CompletedContract:
		return models.AlreadyCompleted("contract is already completed")
	default:
		return models.InvalidState(fmt.Sprintf("contract is %s and cannot be completed", status))
	}
}

// GetContracts возвращает контракты пользователя, новые первыми.
func (s *ContractService) GetContracts(ctx context.Context, actor models.Actor, limitStr, offsetStr string) ([]models.Contract, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	contracts, err := s.Repo.GetUserContracts(ctx, actor.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	if contracts == nil {
		contracts = []models.Contract{}
	}
	return contracts, nil
}

// GetContract возвращает контракт стороне контракта или сотруднику.
func (s *ContractService) GetContract(ctx context.Context, actor models.Actor, contractId string) (*models.Contract, error) {
	contract, err := s.Repo.GetContract(ctx, contractId)
	if err != nil {
		return nil, err
	}
	if !contract.HasParty(actor.ID) && !actor.IsStaff {
		return nil, models.Unauthorized("user is not a party of this contract")
	}
	return contract, nil
}

// ReviewContract сохраняет оценку заказчика по завершенному контракту.
func (s *ContractService) ReviewContract(ctx context.Context, actor models.Actor, contractId string, reviewReq models.ContractReviewRequest) (*models.Contract, error) {
	if err := validateRequest(s.Validator, reviewReq); err != nil {
		return nil, err
	}

	contract, err := s.Repo.GetContract(ctx, contractId)
	if err != nil {
		return nil, err
	}
	if contract.ClientID != actor.ID {
		return nil, models.Unauthorized("only the client can review this contract")
	}
	if contract.Status != models.CompletedContract {
		return nil, models.InvalidState("only completed contracts can be reviewed")
	}

	if err := s.Repo.SaveReview(ctx, contract.ID, reviewReq.Rating, reviewReq.Review); err != nil {
		return nil, err
	}
	contract.Rating = &reviewReq.Rating
	contract.Review = &reviewReq.Review
	return contract, nil
}
