package repository_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/repository"
	"github.com/senyabanana/talentlink-service/internal/repository/pgtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture - клиент, фрилансер и предложение на рассмотрении в тестовой базе.
type fixture struct {
	pool       *pgxpool.Pool
	tx         *repository.PostgresTransactor
	projects   *repository.PostgresProjectRepository
	proposals  *repository.PostgresProposalRepository
	contracts  *repository.PostgresContractRepository
	messages   *repository.PostgresMessageRepository
	client     models.User
	freelancer models.User
	project    *models.Project
	proposal   *models.Proposal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pool := pgtest.Pool(t)
	ctx := context.Background()

	f := &fixture{
		pool:       pool,
		tx:         repository.NewPostgresTransactor(pool),
		projects:   repository.NewPostgresProjectRepository(pool),
		proposals:  repository.NewPostgresProposalRepository(pool),
		contracts:  repository.NewPostgresContractRepository(pool),
		messages:   repository.NewPostgresMessageRepository(pool),
		client:     pgtest.CreateUser(t, pool, true, false),
		freelancer: pgtest.CreateUser(t, pool, false, true),
	}

	f.project = &models.Project{
		ClientID: f.client.ID, Title: "Online shop", Description: "Catalog and cart",
		Category: "web", Budget: 500, Duration: 14,
	}
	require.NoError(t, f.projects.CreateProject(ctx, f.project))

	f.proposal = &models.Proposal{
		ProjectID: f.project.ID, FreelancerID: f.freelancer.ID, ProposalText: "Two weeks", BidAmount: 300,
	}
	require.NoError(t, f.proposals.CreateProposal(ctx, f.proposal))
	return f
}

func (f *fixture) contract() *models.Contract {
	return &models.Contract{
		ProposalID:    f.proposal.ID,
		ClientID:      f.client.ID,
		FreelancerID:  f.freelancer.ID,
		PaymentAmount: f.proposal.BidAmount,
		Status:        models.ActiveContract,
	}
}

func TestCreateContract_OnePerProposal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.contracts.CreateContract(ctx, f.contract())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.contracts.CreateContract(ctx, f.contract())
	require.NoError(t, err)
	assert.False(t, created)

	contract, err := f.contracts.GetContractByProposal(ctx, f.proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Online shop", contract.ProjectTitle)
	assert.Equal(t, 300.0, contract.PaymentAmount)
}

func TestProposalForUpdate_SerializesAccept(t *testing.T) {
	f := newFixture(t)
	const workers = 8

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		sawPending  int
		contractsOk int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.tx.WithinTx(context.Background(), func(ctx context.Context) error {
				proposal, err := f.proposals.GetProposalForUpdate(ctx, f.proposal.ID)
				if err != nil {
					return err
				}
				if proposal.Status != models.PendingProposal {
					return nil
				}
				if err := f.proposals.UpdateProposalStatus(ctx, proposal.ID, models.AcceptedProposal); err != nil {
					return err
				}
				created, err := f.contracts.CreateContract(ctx, f.contract())
				if err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()
				sawPending++
				if created {
					contractsOk++
				}
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, sawPending)
	assert.Equal(t, 1, contractsOk)

	var count int
	require.NoError(t, f.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM contract WHERE proposal_id = $1`, f.proposal.ID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithinTx_Rollback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := f.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := f.proposals.UpdateProposalStatus(ctx, f.proposal.ID, models.AcceptedProposal); err != nil {
			return err
		}
		if _, err := f.contracts.CreateContract(ctx, f.contract()); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	proposal, err := f.proposals.GetProposal(ctx, f.proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PendingProposal, proposal.Status)
	_, err = f.contracts.GetContractByProposal(ctx, f.proposal.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMarkCompleted_OnlyActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract()
	_, err := f.contracts.CreateContract(ctx, contract)
	require.NoError(t, err)

	updated, err := f.contracts.MarkCompleted(ctx, contract.ID)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = f.contracts.MarkCompleted(ctx, contract.ID)
	require.NoError(t, err)
	assert.False(t, updated)

	stored, err := f.contracts.GetContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompletedContract, stored.Status)

	updated, err = f.contracts.MarkCompleted(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestGetUserMessages_AscendingWithPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract()
	_, err := f.contracts.CreateContract(ctx, contract)
	require.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, f.messages.CreateMessage(ctx, &models.Message{
			ContractID: contract.ID, SenderID: f.client.ID, ReceiverID: f.freelancer.ID, Text: text,
		}))
	}

	messages, err := f.messages.GetUserMessages(ctx, f.freelancer.ID, contract.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{messages[0].Text, messages[1].Text, messages[2].Text})

	paged, err := f.messages.GetUserMessages(ctx, f.freelancer.ID, contract.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "second", paged[0].Text)

	outsider := pgtest.CreateUser(t, f.pool, false, true)
	none, err := f.messages.GetUserMessages(ctx, outsider.ID, contract.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetProjects_BudgetAndDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.projects.CreateProject(ctx, &models.Project{
		ClientID: f.client.ID, Title: "Logo", Description: "Vector logo",
		Category: "design", Budget: 50, Duration: 3,
	}))

	budget := 50.0
	duration := 3
	projects, err := f.projects.GetProjects(ctx, models.ProjectFilter{
		ClientID: f.client.ID, Budget: &budget, Duration: &duration, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Logo", projects[0].Title)

	newest, err := f.projects.GetProjects(ctx, models.ProjectFilter{ClientID: f.client.ID, Limit: 1})
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.Equal(t, "Logo", newest[0].Title)

	web, err := f.projects.GetProjects(ctx, models.ProjectFilter{
		ClientID: f.client.ID, Categories: []string{"web"}, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, web, 1)
	assert.Equal(t, "Online shop", web[0].Title)
}

func TestNotifications_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := repository.NewPostgresNotificationRepository(f.pool)

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, repo.CreateNotification(ctx, &models.Notification{
			UserID: f.client.ID, Message: msg, Type: models.SystemNotification,
		}))
	}

	all, err := repo.GetUserNotifications(ctx, f.client.ID, models.AllNotifications, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "three", all[0].Message)

	marked, err := repo.MarkAsRead(ctx, f.freelancer.ID, all[0].ID)
	require.NoError(t, err)
	assert.False(t, marked)

	count, err := repo.MarkAllAsRead(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	unread, err := repo.GetUserNotifications(ctx, f.client.ID, models.UnreadNotifications, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestCreateUser_DuplicateIsValidationError(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := repository.NewPostgresUserRepository(pool)
	existing := pgtest.CreateUser(t, pool, true, false)

	err := repo.CreateUser(ctx, &models.User{
		Username: existing.Username, Email: "other-" + existing.Email, PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.EqualError(t, err, models.UserTakenMessage)

	err = repo.CreateUser(ctx, &models.User{
		Username: "other-" + existing.Username, Email: strings.ToUpper(existing.Email), PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = repo.CreateUser(ctx, &models.User{
		Username: "other-" + existing.Username, Email: "UPPER-" + existing.Email, PasswordHash: "hash",
	})
	require.NoError(t, err)
}
