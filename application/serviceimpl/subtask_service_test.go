package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/domain/dto"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/utils"
)

func TestSubtaskCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Pim", "pim@example.com")
	task := f.createTask(t, owner, f.createColumn(t, f.createProject(t, owner, "Board"), "To Do"), "Release")

	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	f.subtask.(*SubtaskServiceImpl).now = func() time.Time { return fixed }

	sub, err := f.subtask.AddSubtask(ctx, &dto.CreateSubtaskRequest{TaskID: task.ID, Title: " Tag build "})
	require.NoError(t, err)
	assert.Equal(t, "Tag build", sub.Title)
	assert.False(t, sub.IsCompleted)
	assert.Nil(t, sub.CompletedBy)

	actor := actorOf(owner)
	sub, err = f.subtask.UpdateSubtask(ctx, actor, sub.ID, &dto.UpdateSubtaskRequest{IsCompleted: ptr(true)})
	require.NoError(t, err)
	assert.True(t, sub.IsCompleted)
	require.NotNil(t, sub.CompletedBy)
	assert.Equal(t, "Pim Tester", *sub.CompletedBy)
	require.NotNil(t, sub.CompletedAt)
	assert.True(t, fixed.Equal(*sub.CompletedAt))

	stored, err := f.subtask.GetSubtask(ctx, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedBy)
	assert.Equal(t, "Pim Tester", *stored.CompletedBy)

	sub, err = f.subtask.ToggleSubtask(ctx, actor, sub.ID)
	require.NoError(t, err)
	assert.False(t, sub.IsCompleted)
	assert.Nil(t, sub.CompletedBy)
	assert.Nil(t, sub.CompletedAt)

	// ชื่อว่างใช้อีเมลแทน
	sub, err = f.subtask.ToggleSubtask(ctx, &utils.UserContext{ID: owner.ID, Email: "anon@example.com"}, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, sub.CompletedBy)
	assert.Equal(t, "anon@example.com", *sub.CompletedBy)

	list, err := f.subtask.ListSubtasks(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.subtask.DeleteSubtask(ctx, sub.ID))
	assert.ErrorIs(t, f.subtask.DeleteSubtask(ctx, sub.ID), apperror.ErrNotFound)
}

func TestAddSubtaskUnknownTask(t *testing.T) {
	f := newFixture(t)

	_, err := f.subtask.AddSubtask(context.Background(), &dto.CreateSubtaskRequest{TaskID: 404, Title: "Orphan"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.subtask.ListSubtasks(context.Background(), 404)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
