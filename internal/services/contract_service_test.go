package services

import (
	"context"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteContract_NotifiesBothParties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	contract := env.activeContract(t)
	before := env.store.NotificationCount()

	completed, err := env.contracts.CompleteContract(ctx, env.client, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompletedContract, completed.Status)
	assert.Equal(t, before+2, env.store.NotificationCount())

	clientNotifications := env.store.NotificationsFor(env.client.ID)
	last := clientNotifications[len(clientNotifications)-1]
	assert.Equal(t, "Your project 'Online shop' has been marked as completed.", last.Message)
	assert.Equal(t, models.ProjectNotification, last.Type)

	freelancerNotifications := env.store.NotificationsFor(env.freelancer.ID)
	last = freelancerNotifications[len(freelancerNotifications)-1]
	assert.Equal(t, "You have successfully completed the project 'Online shop'.", last.Message)
}

func TestCompleteContract_AlreadyCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	contract := env.activeContract(t)

	_, err := env.contracts.CompleteContract(ctx, env.client, contract.ID)
	require.NoError(t, err)
	before := env.store.NotificationCount()

	_, err = env.contracts.CompleteContract(ctx, env.client, contract.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyCompleted)
	assert.Equal(t, before, env.store.NotificationCount())
}

func TestCompleteContract_Authorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	contract := env.activeContract(t)

	_, err := env.contracts.CompleteContract(ctx, env.freelancer, contract.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = env.contracts.CompleteContract(ctx, env.outsider, contract.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	completed, err := env.contracts.CompleteContract(ctx, env.staff, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompletedContract, completed.Status)
}

func TestCompleteContract_InvalidState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	contract := env.activeContract(t)
	env.store.SetContractStatus(contract.ID, models.CancelledContract)
	before := env.store.NotificationCount()

	_, err := env.contracts.CompleteContract(ctx, env.client, contract.ID)
	assert.ErrorIs(t, err, models.ErrInvalidState)
	assert.Equal(t, before, env.store.NotificationCount())

	_, err = env.contracts.CompleteContract(ctx, env.client, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestReviewContract(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	contract := env.activeContract(t)
	review := models.ContractReviewRequest{Rating: 5, Review: "Great work"}

	_, err := env.contracts.ReviewContract(ctx, env.client, contract.ID, review)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	_, err = env.contracts.CompleteContract(ctx, env.client, contract.ID)
	require.NoError(t, err)

	_, err = env.contracts.ReviewContract(ctx, env.freelancer, contract.ID, review)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = env.contracts.ReviewContract(ctx, env.client, contract.ID, models.ContractReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, models.ErrValidation)

	reviewed, err := env.contracts.ReviewContract(ctx, env.client, contract.ID, review)
	require.NoError(t, err)
	require.NotNil(t, reviewed.Rating)
	assert.Equal(t, 5, *reviewed.Rating)
}

func TestGetContract_Visibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	contract := env.activeContract(t)

	for _, actor := range []models.Actor{env.client, env.freelancer, env.staff} {
		got, err := env.contracts.GetContract(ctx, actor, contract.ID)
		require.NoError(t, err)
		assert.Equal(t, "Online shop", got.ProjectTitle)
	}
	_, err := env.contracts.GetContract(ctx, env.outsider, contract.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	list, err := env.contracts.GetContracts(ctx, env.freelancer, "", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = env.contracts.GetContracts(ctx, env.outsider, "", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
