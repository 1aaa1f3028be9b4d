package repotest

import (
	"context"
	"errors"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx_RollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	kept := &models.Project{ClientID: "c1", Title: "kept"}
	require.NoError(t, store.CreateProject(ctx, kept))

	errBoom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, store.CreateProject(ctx, &models.Project{ClientID: "c1", Title: "lost"}))
		require.NoError(t, store.DeleteProject(ctx, kept.ID))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	projects, err := store.GetProjects(ctx, models.ProjectFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "kept", projects[0].Title)
}

func TestGetProjects_FiltersAndPaging(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for _, p := range []models.Project{
		{ClientID: "c1", Title: "first", Category: "web", Budget: 100, Duration: 7},
		{ClientID: "c1", Title: "second", Category: "web", Budget: 200, Duration: 7},
		{ClientID: "c2", Title: "third", Category: "design", Budget: 100, Duration: 30},
	} {
		p := p
		require.NoError(t, store.CreateProject(ctx, &p))
	}

	budget := 100.0
	byBudget, err := store.GetProjects(ctx, models.ProjectFilter{Budget: &budget, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byBudget, 2)
	assert.Equal(t, "third", byBudget[0].Title)
	assert.Equal(t, "first", byBudget[1].Title)

	duration := 7
	byDuration, err := store.GetProjects(ctx, models.ProjectFilter{Duration: &duration, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byDuration, 2)

	paged, err := store.GetProjects(ctx, models.ProjectFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "second", paged[0].Title)

	empty, err := store.GetProjects(ctx, models.ProjectFilter{Limit: 10, Offset: 3})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetUserContracts_NewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for _, proposalId := range []string{"p1", "p2", "p3"} {
		created, err := store.CreateContract(ctx, &models.Contract{
			ProposalID: proposalId, ClientID: "c1", FreelancerID: "f1", Status: models.ActiveContract,
		})
		require.NoError(t, err)
		require.True(t, created)
	}

	contracts, err := store.GetUserContracts(ctx, "f1", 2, 0)
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	assert.Equal(t, "p3", contracts[0].ProposalID)
	assert.Equal(t, "p2", contracts[1].ProposalID)
}
