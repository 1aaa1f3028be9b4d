package services

import (
	"context"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalToCompletionScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project := env.createProject(t, "Company website")
	assert.Equal(t, 0, env.store.NotificationCount())

	proposal := env.submitProposal(t, project, 100)
	assert.Len(t, env.store.NotificationsFor(env.client.ID), 1)

	result, err := env.proposals.AcceptProposal(ctx, env.client, proposal.ID)
	require.NoError(t, err)
	require.True(t, result.Created)
	assert.Equal(t, 100.0, result.Contract.PaymentAmount)
	assert.Equal(t, models.ActiveContract, result.Contract.Status)
	assert.Len(t, env.store.NotificationsFor(env.freelancer.ID), 1)

	stored, err := env.store.GetProposal(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AcceptedProposal, stored.Status)

	completed, err := env.contracts.CompleteContract(ctx, env.client, result.Contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompletedContract, completed.Status)

	assert.Len(t, env.store.NotificationsFor(env.client.ID), 2)
	assert.Len(t, env.store.NotificationsFor(env.freelancer.ID), 2)
	assert.Equal(t, 4, env.store.NotificationCount())
}
