package repotest

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"

	"github.com/google/uuid"
)

var (
	_ repository.Transactor             = (*Store)(nil)
	_ repository.UserRepository         = (*Store)(nil)
	_ repository.ProfileRepository      = (*Store)(nil)
	_ repository.ProjectRepository      = (*Store)(nil)
	_ repository.ProposalRepository     = (*Store)(nil)
	_ repository.ContractRepository     = (*Store)(nil)
	_ repository.MessageRepository      = (*Store)(nil)
	_ repository.NotificationRepository = (*Store)(nil)
)

// Store - хранилище в памяти, реализующее все интерфейсы репозиториев и Transactor.
// WithinTx выполняет транзакции последовательно и откатывает изменения при ошибке.
// Списки упорядочены и разбиты на страницы так же, как в SQL запросах.
type Store struct {
	txMu  sync.Mutex
	mu    sync.Mutex
	clock time.Time

	users              map[string]models.User
	clientProfiles     map[string]models.ClientProfile
	freelancerProfiles map[string]models.FreelancerProfile
	projects           map[string]models.Project
	proposals          map[string]models.Proposal
	contracts          map[string]models.Contract
	messages           []models.Message
	notifications      []models.Notification

	// FailNotifications заставляет CreateNotification возвращать ошибку.
	FailNotifications bool
}

// NewStore создает пустое хранилище.
func NewStore() *Store {
	return &Store{
		users:              map[string]models.User{},
		clientProfiles:     map[string]models.ClientProfile{},
		freelancerProfiles: map[string]models.FreelancerProfile{},
		projects:           map[string]models.Project{},
		proposals:          map[string]models.Proposal{},
		contracts:          map[string]models.Contract{},
	}
}

func (f *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	saved := f.snapshot()
	if err := fn(ctx); err != nil {
		f.restore(saved)
		return err
	}
	return nil
}

// snapshot копирует состояние хранилища, уведомления не входят в транзакцию.
func (f *Store) snapshot() *Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &Store{
		users:              maps.Clone(f.users),
		clientProfiles:     maps.Clone(f.clientProfiles),
		freelancerProfiles: maps.Clone(f.freelancerProfiles),
		projects:           maps.Clone(f.projects),
		proposals:          maps.Clone(f.proposals),
		contracts:          maps.Clone(f.contracts),
		messages:           slices.Clone(f.messages),
	}
}

func (f *Store) restore(saved *Store) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = saved.users
	f.clientProfiles = saved.clientProfiles
	f.freelancerProfiles = saved.freelancerProfiles
	f.projects = saved.projects
	f.proposals = saved.proposals
	f.contracts = saved.contracts
	f.messages = saved.messages
}

// now возвращает строго возрастающее время, чтобы порядок записей был детерминирован.
func (f *Store) now() time.Time {
	now := time.Now().UTC()
	if !now.After(f.clock) {
		now = f.clock.Add(time.Microsecond)
	}
	f.clock = now
	return now
}

// page применяет limit и offset к отсортированному списку.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// users

func (f *Store) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uuid.New().String()
	user.CreatedAt = f.now()
	f.users[user.ID] = *user
	return nil
}

func (f *Store) GetUserByID(_ context.Context, userId string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return nil, models.NotFound("user not found")
	}
	return &user, nil
}

func (f *Store) CheckUserTaken(_ context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username || strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// profiles

func (f *Store) CreateClientProfile(_ context.Context, profile *models.ClientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile.ID = uuid.New().String()
	if _, ok := f.clientProfiles[profile.UserID]; !ok {
		f.clientProfiles[profile.UserID] = *profile
	}
	return nil
}

func (f *Store) GetClientProfile(_ context.Context, userId string) (*models.ClientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.clientProfiles[userId]
	if !ok {
		return nil, models.NotFound("client profile not found")
	}
	return &profile, nil
}

func (f *Store) UpdateClientProfile(_ context.Context, profile *models.ClientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clientProfiles[profile.UserID]; !ok {
		return models.NotFound("client profile not found")
	}
	f.clientProfiles[profile.UserID] = *profile
	return nil
}

func (f *Store) CreateFreelancerProfile(_ context.Context, profile *models.FreelancerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile.ID = uuid.New().String()
	if _, ok := f.freelancerProfiles[profile.UserID]; !ok {
		f.freelancerProfiles[profile.UserID] = *profile
	}
	return nil
}

func (f *Store) GetFreelancerProfile(_ context.Context, userId string) (*models.FreelancerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.freelancerProfiles[userId]
	if !ok {
		return nil, models.NotFound("freelancer profile not found")
	}
	profile.Username = f.users[userId].Username
	return &profile, nil
}

func (f *Store) UpdateFreelancerProfile(_ context.Context, profile *models.FreelancerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.freelancerProfiles[profile.UserID]; !ok {
		return models.NotFound("freelancer profile not found")
	}
	f.freelancerProfiles[profile.UserID] = *profile
	return nil
}

func (f *Store) ListFreelancers(_ context.Context, filter models.FreelancerFilter) ([]models.FreelancerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var profiles []models.FreelancerProfile
	for _, profile := range f.freelancerProfiles {
		if filter.Skills != "" && !strings.Contains(strings.ToLower(profile.Skills), strings.ToLower(filter.Skills)) {
			continue
		}
		if filter.MinRate != nil && profile.HourlyRate < *filter.MinRate {
			continue
		}
		if filter.MaxRate != nil && profile.HourlyRate > *filter.MaxRate {
			continue
		}
		if filter.Available != nil && profile.Availability != *filter.Available {
			continue
		}
		profile.Username = f.users[profile.UserID].Username
		profiles = append(profiles, profile)
	}
	slices.SortFunc(profiles, func(a, b models.FreelancerProfile) int {
		return strings.Compare(a.Username, b.Username)
	})
	return page(profiles, filter.Limit, filter.Offset), nil
}

// projects

func (f *Store) CreateProject(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	project.ID = uuid.New().String()
	project.CreatedAt = f.now()
	project.UpdatedAt = project.CreatedAt
	f.projects[project.ID] = *project
	return nil
}

func (f *Store) GetProject(_ context.Context, projectId string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.projects[projectId]
	if !ok {
		return nil, models.NotFound("project not found")
	}
	return &project, nil
}

func (f *Store) GetProjects(_ context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var projects []models.Project
	for _, project := range f.projects {
		if filter.ClientID != "" && project.ClientID != filter.ClientID {
			continue
		}
		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, project.Category) {
			continue
		}
		if filter.Budget != nil && project.Budget != *filter.Budget {
			continue
		}
		if filter.Duration != nil && project.Duration != *filter.Duration {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(project.Title+" "+project.Description), strings.ToLower(filter.Search)) {
			continue
		}
		projects = append(projects, project)
	}
	slices.SortFunc(projects, func(a, b models.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return page(projects, filter.Limit, filter.Offset), nil
}

func (f *Store) UpdateProject(_ context.Context, project *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[project.ID]; !ok {
		return models.NotFound("project not found")
	}
	f.projects[project.ID] = *project
	return nil
}

func (f *Store) DeleteProject(_ context.Context, projectId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[projectId]; !ok {
		return models.NotFound("project not found")
	}
	delete(f.projects, projectId)
	for id, proposal := range f.proposals {
		if proposal.ProjectID == projectId {
			delete(f.proposals, id)
		}
	}
	return nil
}

// proposals

func (f *Store) CreateProposal(_ context.Context, proposal *models.Proposal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	proposal.ID = uuid.New().String()
	proposal.Status = models.PendingProposal
	proposal.CreatedAt = f.now()
	f.proposals[proposal.ID] = *proposal
	return nil
}

func (f *Store) GetProposal(_ context.Context, proposalId string) (*models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	proposal, ok := f.proposals[proposalId]
	if !ok {
		return nil, models.NotFound("proposal not found")
	}
	return &proposal, nil
}

func (f *Store) GetProposalForUpdate(ctx context.Context, proposalId string) (*models.Proposal, error) {
	return f.GetProposal(ctx, proposalId)
}

func (f *Store) UpdateProposalStatus(_ context.Context, proposalId string, status models.ProposalStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	proposal, ok := f.proposals[proposalId]
	if !ok {
		return models.NotFound("proposal not found")
	}
	proposal.Status = status
	f.proposals[proposalId] = proposal
	return nil
}

func (f *Store) GetProposals(_ context.Context, filter models.ProposalFilter) ([]models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var proposals []models.Proposal
	for _, proposal := range f.proposals {
		if filter.ClientID != "" && f.projects[proposal.ProjectID].ClientID != filter.ClientID {
			continue
		}
		if filter.FreelancerID != "" && proposal.FreelancerID != filter.FreelancerID {
			continue
		}
		if filter.ProjectID != "" && proposal.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && proposal.Status != filter.Status {
			continue
		}
		proposals = append(proposals, proposal)
	}
	slices.SortFunc(proposals, func(a, b models.Proposal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return page(proposals, filter.Limit, filter.Offset), nil
}

// contracts

func (f *Store) CreateContract(_ context.Context, contract *models.Contract) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.contracts {
		if existing.ProposalID == contract.ProposalID {
			return false, nil
		}
	}
	contract.ID = uuid.New().String()
	contract.CreatedAt = f.now()
	f.contracts[contract.ID] = *contract
	return true, nil
}

func (f *Store) withTitle(contract models.Contract) *models.Contract {
	proposal := f.proposals[contract.ProposalID]
	contract.ProjectTitle = f.projects[proposal.ProjectID].Title
	return &contract
}

func (f *Store) GetContract(_ context.Context, contractId string) (*models.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	contract, ok := f.contracts[contractId]
	if !ok {
		return nil, models.NotFound("contract not found")
	}
	return f.withTitle(contract), nil
}

func (f *Store) GetContractByProposal(_ context.Context, proposalId string) (*models.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, contract := range f.contracts {
		if contract.ProposalID == proposalId {
			return f.withTitle(contract), nil
		}
	}
	return nil, models.NotFound("contract not found")
}

func (f *Store) MarkCompleted(_ context.Context, contractId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	contract, ok := f.contracts[contractId]
	if !ok || contract.Status != models.ActiveContract {
		return false, nil
	}
	contract.Status = models.CompletedContract
	f.contracts[contractId] = contract
	return true, nil
}

func (f *Store) SaveReview(_ context.Context, contractId string, rating int, review string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	contract, ok := f.contracts[contractId]
	if !ok {
		return models.NotFound("contract not found")
	}
	contract.Rating = &rating
	contract.Review = &review
	f.contracts[contractId] = contract
	return nil
}

func (f *Store) GetUserContracts(_ context.Context, userId string, limit, offset int) ([]models.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var contracts []models.Contract
	for _, contract := range f.contracts {
		if contract.HasParty(userId) {
			contracts = append(contracts, *f.withTitle(contract))
		}
	}
	slices.SortFunc(contracts, func(a, b models.Contract) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return page(contracts, limit, offset), nil
}

func (f *Store) SetContractStatus(contractId string, status models.ContractStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	contract := f.contracts[contractId]
	contract.Status = status
	f.contracts[contractId] = contract
}

func (f *Store) ContractCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contracts)
}

// messages

func (f *Store) CreateMessage(_ context.Context, message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.ID = uuid.New().String()
	message.Timestamp = f.now()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *Store) GetUserMessages(_ context.Context, userId, contractId string, limit, offset int) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var messages []models.Message
	for _, message := range f.messages {
		contract := f.contracts[message.ContractID]
		if !contract.HasParty(userId) {
			continue
		}
		if contractId != "" && message.ContractID != contractId {
			continue
		}
		messages = append(messages, message)
	}
	slices.SortStableFunc(messages, func(a, b models.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return page(messages, limit, offset), nil
}

func (f *Store) MessageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// notifications

func (f *Store) CreateNotification(_ context.Context, notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailNotifications {
		return errors.New("notification storage is unavailable")
	}
	notification.ID = uuid.New().String()
	notification.CreatedAt = f.now()
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *Store) GetUserNotifications(_ context.Context, userId string, state models.ReadState, limit, offset int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var notifications []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		n := f.notifications[i]
		if n.UserID != userId {
			continue
		}
		if state == models.UnreadNotifications && n.IsRead || state == models.ReadNotifications && !n.IsRead {
			continue
		}
		notifications = append(notifications, n)
	}
	return page(notifications, limit, offset), nil
}

func (f *Store) MarkAsRead(_ context.Context, userId, notificationId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == notificationId && f.notifications[i].UserID == userId {
			f.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *Store) MarkAllAsRead(_ context.Context, userId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userId && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *Store) NotificationsFor(userId string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var notifications []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userId {
			notifications = append(notifications, n)
		}
	}
	return notifications
}

func (f *Store) NotificationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}
