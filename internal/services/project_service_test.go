package services

import (
	"context"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := models.ProjectRequest{Title: "Logo", Description: "Vector logo", Category: "design", Budget: 50, Duration: 3}

	project, err := env.projects.CreateProject(ctx, env.client, req)
	require.NoError(t, err)
	assert.Equal(t, env.client.ID, project.ClientID)
	assert.Equal(t, 0, env.store.NotificationCount())

	_, err = env.projects.CreateProject(ctx, env.freelancer, req)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	req.Budget = 0
	_, err = env.projects.CreateProject(ctx, env.client, req)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetProjects_ByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createProject(t, "Online shop")

	otherClient := env.addUser(t, "carol", true, false, false)
	_, err := env.projects.CreateProject(ctx, otherClient, models.ProjectRequest{
		Title: "Logo", Description: "Vector logo", Category: "design", Budget: 50, Duration: 3,
	})
	require.NoError(t, err)

	own, err := env.projects.GetProjects(ctx, env.client, ProjectQuery{})
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := env.projects.GetProjects(ctx, env.freelancer, ProjectQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	design, err := env.projects.GetProjects(ctx, env.freelancer, ProjectQuery{Categories: []string{"design", " "}})
	require.NoError(t, err)
	require.Len(t, design, 1)
	assert.Equal(t, "Logo", design[0].Title)

	search, err := env.projects.GetProjects(ctx, env.freelancer, ProjectQuery{Search: "ADMIN"})
	require.NoError(t, err)
	assert.Len(t, search, 1)

	none, err := env.projects.GetProjects(ctx, env.staff, ProjectQuery{})
	require.NoError(t, err)
	assert.Empty(t, none)

	cheap, err := env.projects.GetProjects(ctx, env.freelancer, ProjectQuery{Budget: "50", Duration: "3"})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, "Logo", cheap[0].Title)

	none, err = env.projects.GetProjects(ctx, env.freelancer, ProjectQuery{Budget: "50", Duration: "14"})
	require.NoError(t, err)
	assert.Empty(t, none)

	newest, err := env.projects.GetProjects(ctx, env.freelancer, ProjectQuery{Limit: "1"})
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.Equal(t, "Logo", newest[0].Title)

	_, err = env.projects.GetProjects(ctx, env.freelancer, ProjectQuery{Budget: "lots"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateAndDeleteProject_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.createProject(t, "Online shop")
	proposal := env.submitProposal(t, project, 100)

	req := models.ProjectRequest{Title: "Online store", Description: "d", Category: "web", Budget: 900, Duration: 30}
	_, err := env.projects.UpdateProject(ctx, env.freelancer, project.ID, req)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	updated, err := env.projects.UpdateProject(ctx, env.client, project.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Online store", updated.Title)

	assert.ErrorIs(t, env.projects.DeleteProject(ctx, env.freelancer, project.ID), models.ErrUnauthorized)
	require.NoError(t, env.projects.DeleteProject(ctx, env.client, project.ID))

	_, err = env.projects.GetProject(ctx, env.client, project.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = env.store.GetProposal(ctx, proposal.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetProject_Visibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	project := env.createProject(t, "Online shop")
	otherClient := env.addUser(t, "carol", true, false, false)

	got, err := env.projects.GetProject(ctx, env.client, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	_, err = env.projects.GetProject(ctx, env.freelancer, project.ID)
	assert.NoError(t, err)

	_, err = env.projects.GetProject(ctx, otherClient, project.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = env.projects.GetProject(ctx, env.staff, project.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
