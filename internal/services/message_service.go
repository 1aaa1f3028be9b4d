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

type MessageService struct {
	Repo      repository.MessageRepository
	Contracts repository.ContractRepository
	Notifier  Notifier
	Validator *validator.Validator
}

// NewMessageService создает новый экземпляр MessageService.
func NewMessageService(repo repository.MessageRepository, contracts repository.ContractRepository, notifier Notifier, v *validator.Validator) *MessageService {
	return &MessageService{Repo: repo, Contracts: contracts, Notifier: notifier, Validator: v}
}

// SendMessage отправляет сообщение второй стороне контракта.
func (s *MessageService) SendMessage(ctx context.Context, actor models.Actor, messageReq models.MessageRequest) (*models.Message, error) {
	if err := validateRequest(s.Validator, messageReq); err != nil {
		return nil, err
	}

	contract, err := s.Contracts.GetContract(ctx, messageReq.ContractID)
	if err != nil {
		return nil, err
	}

	var receiverId string
	switch actor.ID {
	case contract.ClientID:
		receiverId = contract.FreelancerID
	case contract.FreelancerID:
		receiverId = contract.ClientID
	default:
		return nil, models.Unauthorized("user is not a party of this contract")
	}

	message := &models.Message{
		ContractID: contract.ID,
		SenderID:   actor.ID,
		ReceiverID: receiverId,
		Text:       messageReq.Text,
	}
	if err := s.Repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, receiverId,
		fmt.Sprintf("New message in your contract chat for '%s'.", contract.ProjectTitle),
		fmt.Sprintf("/contracts/%s/messages/", contract.ID),
		models.MessageNotification)
	return message, nil
}

// GetMessages возвращает сообщения контрактов пользователя по возрастанию времени.
func (s *MessageService) GetMessages(ctx context.Context, actor models.Actor, contractId, limitStr, offsetStr string) ([]models.Message, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	if err := validateFilterID("contract", contractId); err != nil {
		return nil, err
	}

	messages, err := s.Repo.GetUserMessages(ctx, actor.ID, contractId, limit, offset)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
