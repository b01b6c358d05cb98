package serviceimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/pkg/apperror"
)

func titlesOf(tasks []*models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func positionsOf(tasks []*models.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Position)
	}
	return out
}

func TestColumnPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	project := f.createProject(t, owner, "Board")

	todo := f.createColumn(t, project, "To Do")
	doing := f.createColumn(t, project, "Doing")
	done := f.createColumn(t, project, "Done")
	assert.Equal(t, []int{0, 1, 2}, []int{todo.Position, doing.Position, done.Position})

	updated, err := f.column.UpdateColumn(ctx, done.ID, &dto.UpdateColumnRequest{Name: "Finished", Position: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Finished", updated.Name)
	assert.Equal(t, 0, updated.Position)

	columns, err := f.column.ListColumns(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, []string{"Finished", "To Do", "Doing"}, []string{columns[0].Name, columns[1].Name, columns[2].Name})

	require.NoError(t, f.column.DeleteColumn(ctx, todo.ID))
	columns, err = f.column.ListColumns(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, 0, columns[0].Position)
	assert.Equal(t, 1, columns[1].Position)

	_, err = f.column.GetColumn(ctx, project.ID+1, doing.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	column := f.createColumn(t, f.createProject(t, owner, "Board"), "To Do")

	task := f.createTask(t, owner, column, "Write docs")
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, owner.ID, task.OwnerID)
	assert.Equal(t, 0, task.Position)

	second, err := f.task.CreateTask(ctx, owner.ID, &dto.CreateTaskRequest{ColumnID: column.ID, Title: "Review", Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, second.Priority)
	assert.Equal(t, 1, second.Position)

	_, err = f.task.CreateTask(ctx, owner.ID, &dto.CreateTaskRequest{ColumnID: column.ID + 99, Title: "Lost"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.task.CreateTask(ctx, owner.ID, &dto.CreateTaskRequest{ColumnID: column.ID, Title: "Bad", Priority: "urgent"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.task.GetTask(ctx, column.ID+1, task.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMoveTaskReindexesColumns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	project := f.createProject(t, owner, "Board")
	todo := f.createColumn(t, project, "To Do")
	doing := f.createColumn(t, project, "Doing")

	a := f.createTask(t, owner, todo, "A")
	f.createTask(t, owner, todo, "B")
	f.createTask(t, owner, todo, "C")
	x := f.createTask(t, owner, doing, "X")

	// ภายใน column เดียวกัน
	moved, err := f.task.MoveTask(ctx, a.ID, &dto.MoveTaskRequest{ColumnID: todo.ID, Position: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Position)

	tasks, err := f.task.ListTasks(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, titlesOf(tasks))
	assert.Equal(t, []int{0, 1, 2}, positionsOf(tasks))

	// ข้าม column, position เกินช่วงถูก clamp ไปท้าย
	moved, err = f.task.MoveTask(ctx, a.ID, &dto.MoveTaskRequest{ColumnID: doing.ID, Position: 50})
	require.NoError(t, err)
	assert.Equal(t, doing.ID, moved.ColumnID)
	assert.Equal(t, 1, moved.Position)

	tasks, err = f.task.ListTasks(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, titlesOf(tasks))
	assert.Equal(t, []int{0, 1}, positionsOf(tasks))

	moved, err = f.task.MoveTask(ctx, x.ID, &dto.MoveTaskRequest{ColumnID: todo.ID, Position: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Position)

	tasks, err = f.task.ListTasks(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "B", "C"}, titlesOf(tasks))

	// ย้ายข้าม project ไม่ได้
	other := f.createColumn(t, f.createProject(t, owner, "Other"), "Elsewhere")
	_, err = f.task.MoveTask(ctx, x.ID, &dto.MoveTaskRequest{ColumnID: other.ID})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	project := f.createProject(t, owner, "Board")
	todo := f.createColumn(t, project, "To Do")
	done := f.createColumn(t, project, "Done")
	f.createTask(t, owner, done, "Already done")

	task, err := f.task.CreateTask(ctx, owner.ID, &dto.CreateTaskRequest{ColumnID: todo.ID, Title: "Ship", Description: "v1"})
	require.NoError(t, err)

	updated, err := f.task.UpdateTask(ctx, task.ID, &dto.UpdateTaskRequest{Priority: ptr("Low"), ColumnID: &done.ID})
	require.NoError(t, err)
	assert.Equal(t, "Ship", updated.Title)
	assert.Equal(t, "v1", updated.Description)
	assert.Equal(t, models.PriorityLow, updated.Priority)
	assert.Equal(t, done.ID, updated.ColumnID)
	assert.Equal(t, 1, updated.Position)

	_, err = f.task.UpdateTask(ctx, task.ID+99, &dto.UpdateTaskRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateAssigneesIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	dev := f.createUser(t, "Dev", "dev@example.com")
	outsider := f.createUser(t, "Outsider", "outsider@example.com")
	project := f.createProject(t, owner, "Board")
	f.addMember(t, project, dev, models.RoleMember)
	task := f.createTask(t, owner, f.createColumn(t, project, "To Do"), "Pair up")

	resp, err := f.task.UpdateAssignees(ctx, &dto.UpdateAssigneesRequest{TaskID: task.ID, UserIDs: []uint{owner.ID, dev.ID, dev.ID}})
	require.NoError(t, err)
	assert.Equal(t, "Assignees updated successfully", resp.Message)
	assert.ElementsMatch(t, []uint{owner.ID, dev.ID}, resp.Assigned)
	assert.Empty(t, resp.Unassigned)

	msg, ok := f.mail.Last(ports.MailAssignment)
	require.True(t, ok)
	assert.Contains(t, msg.TextBody, "Pair up")
	sent := len(f.mail.Messages())

	// ส่งชุดเดิมซ้ำ ไม่มีอะไรเปลี่ยน และไม่ส่งอีเมลซ้ำ
	resp, err = f.task.UpdateAssignees(ctx, &dto.UpdateAssigneesRequest{TaskID: task.ID, UserIDs: []uint{dev.ID, owner.ID}})
	require.NoError(t, err)
	assert.Empty(t, resp.Assigned)
	assert.Empty(t, resp.Unassigned)
	assert.Len(t, f.mail.Messages(), sent)

	resp, err = f.task.UpdateAssignees(ctx, &dto.UpdateAssigneesRequest{TaskID: task.ID, UserIDs: []uint{dev.ID}})
	require.NoError(t, err)
	assert.Empty(t, resp.Assigned)
	assert.Equal(t, []uint{owner.ID}, resp.Unassigned)

	assignees, err := f.task.ListAssignees(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, assignees, 1)
	assert.Equal(t, dev.ID, assignees[0].UserID)
	assert.Equal(t, "dev@example.com", assignees[0].User.Email)

	_, err = f.task.UpdateAssignees(ctx, &dto.UpdateAssigneesRequest{TaskID: task.ID, UserIDs: []uint{outsider.ID}})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// ส่ง list ว่าง = ถอดทุกคน
	resp, err = f.task.UpdateAssignees(ctx, &dto.UpdateAssigneesRequest{TaskID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{dev.ID}, resp.Unassigned)
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	project := f.createProject(t, owner, "Board")
	column := f.createColumn(t, project, "To Do")
	first := f.createTask(t, owner, column, "First")
	second := f.createTask(t, owner, column, "Second")
	third := f.createTask(t, owner, column, "Third")

	sub, err := f.subtask.AddSubtask(ctx, &dto.CreateSubtaskRequest{TaskID: second.ID, Title: "Step"})
	require.NoError(t, err)
	_, err = f.task.UpdateAssignees(ctx, &dto.UpdateAssigneesRequest{TaskID: second.ID, UserIDs: []uint{owner.ID}})
	require.NoError(t, err)

	require.NoError(t, f.task.DeleteTask(ctx, second.ID))
	_, err = f.subtask.GetSubtask(ctx, sub.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	tasks, err := f.task.ListTasks(ctx, column.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Third"}, titlesOf(tasks))
	assert.Equal(t, []int{0, 1}, positionsOf(tasks))

	require.NoError(t, f.column.DeleteColumn(ctx, column.ID))
	for _, id := range []uint{first.ID, third.ID} {
		_, err := f.tasks.GetByID(ctx, id)
		assert.Error(t, err)
	}

	require.NoError(t, f.project.DeleteProject(ctx, project.ID))
	_, err = f.project.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.members.Get(ctx, project.ID, owner.ID)
	assert.Error(t, err)

	assert.ErrorIs(t, f.project.DeleteProject(ctx, project.ID), apperror.ErrNotFound)
}
