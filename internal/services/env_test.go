package services

import (
	"context"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository/repotest"
	"github.com/senyabanana/talentlink-service/internal/validator"
)

// testEnv - сервисы, связанные с одним repotest.Store.
type testEnv struct {
	store         *repotest.Store
	notifications *NotificationService
	users         *UserService
	profiles      *ProfileService
	projects      *ProjectService
	proposals     *ProposalService
	contracts     *ContractService
	messages      *MessageService

	client     models.Actor
	freelancer models.Actor
	outsider   models.Actor
	staff      models.Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repotest.NewStore()
	v := validator.New()
	notifications := NewNotificationService(store)

	env := &testEnv{
		store:         store,
		notifications: notifications,
		users:         NewUserService(store, store, store, v),
		profiles:      NewProfileService(store, store, v),
		projects:      NewProjectService(store, v),
		proposals:     NewProposalService(store, store, store, store, notifications, v),
		contracts:     NewContractService(store, notifications, v),
		messages:      NewMessageService(store, store, notifications, v),
	}

	env.client = env.addUser(t, "alice", true, false, false)
	env.freelancer = env.addUser(t, "bob", false, true, false)
	env.outsider = env.addUser(t, "mallory", false, true, false)
	env.staff = env.addUser(t, "admin", false, false, true)
	return env
}

func (e *testEnv) addUser(t *testing.T, username string, isClient, isFreelancer, isStaff bool) models.Actor {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		IsClient:     isClient,
		IsFreelancer: isFreelancer,
		IsStaff:      isStaff,
	}
	if err := e.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return models.Actor{ID: user.ID, IsClient: isClient, IsFreelancer: isFreelancer, IsStaff: isStaff}
}

func (e *testEnv) createProject(t *testing.T, title string) *models.Project {
	t.Helper()
	project, err := e.projects.CreateProject(context.Background(), e.client, models.ProjectRequest{
		Title:       title,
		Description: "Landing page and admin panel",
		Category:    "web",
		Budget:      500,
		Duration:    14,
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func (e *testEnv) submitProposal(t *testing.T, project *models.Project, bid float64) *models.Proposal {
	t.Helper()
	proposal, err := e.proposals.SubmitProposal(context.Background(), e.freelancer, models.ProposalRequest{
		ProjectID:    project.ID,
		ProposalText: "I can do it in two weeks",
		BidAmount:    bid,
	})
	if err != nil {
		t.Fatalf("failed to submit proposal: %v", err)
	}
	return proposal
}

func (e *testEnv) activeContract(t *testing.T) *models.Contract {
	t.Helper()
	project := e.createProject(t, "Online shop")
	proposal := e.submitProposal(t, project, 300)
	result, err := e.proposals.AcceptProposal(context.Background(), e.client, proposal.ID)
	if err != nil {
		t.Fatalf("failed to accept proposal: %v", err)
	}
	return result.Contract
}
