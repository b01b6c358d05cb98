package serviceimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/pkg/apperror"
)

func TestUserService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")

	exists, err := f.user.EmailExists(ctx, " ALICE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.user.EmailExists(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = f.user.ListUsers(ctx, actorOf(alice))
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	super := actorOf(alice)
	super.IsSuperAdmin = true
	users, err := f.user.ListUsers(ctx, super)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = f.user.UpdateUser(ctx, actorOf(bob), alice.ID, &dto.UpdateUserRequest{Name: "Mallory", Surname: "X"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := f.user.UpdateUser(ctx, actorOf(alice), alice.ID, &dto.UpdateUserRequest{Name: " Alicia ", Surname: "Smith"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "Alicia Smith", updated.DisplayName())
}

func TestDeleteUserRemovesMemberships(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	dev := f.createUser(t, "Dev", "dev@example.com")
	project := f.createProject(t, owner, "Board")
	f.addMember(t, project, dev, models.RoleMember)
	task := f.createTask(t, owner, f.createColumn(t, project, "To Do"), "Fix")
	_, err := f.task.UpdateAssignees(ctx, &dto.UpdateAssigneesRequest{TaskID: task.ID, UserIDs: []uint{dev.ID}})
	require.NoError(t, err)

	assert.ErrorIs(t, f.user.DeleteUser(ctx, actorOf(owner), dev.ID), apperror.ErrForbidden)
	require.NoError(t, f.user.DeleteUser(ctx, actorOf(dev), dev.ID))

	_, err = f.user.GetUser(ctx, dev.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assignees, err := f.task.ListAssignees(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, assignees)

	project, err = f.project.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, project.Members, 1)
}
