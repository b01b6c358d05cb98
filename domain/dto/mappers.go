package dto

import (
	"kanban-api/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Surname:      user.Surname,
		Email:        user.Email,
		IsSuperAdmin: user.IsSuperAdmin,
	}
}

func UserToUserDetailResponse(user *models.User) *UserDetailResponse {
	if user == nil {
		return nil
	}
	return &UserDetailResponse{
		UserResponse:  *UserToUserResponse(user),
		EmailVerified: user.EmailVerified,
		IsGoogleUser:  user.IsGoogleUser(),
		CreatedAt:     user.CreatedAt,
	}
}

func MemberToMemberResponse(m *models.ProjectUser) ProjectMemberResponse {
	return ProjectMemberResponse{
		UserID:  m.UserID,
		Name:    m.User.Name,
		Surname: m.User.Surname,
		Email:   m.User.Email,
		Role:    string(m.Role),
	}
}

func ProjectToProjectResponse(project *models.Project) *ProjectResponse {
	if project == nil {
		return nil
	}
	users := make([]ProjectMemberResponse, 0, len(project.Members))
	for i := range project.Members {
		users = append(users, MemberToMemberResponse(&project.Members[i]))
	}
	return &ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Slug:        project.Slug,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		Users:       users,
	}
}

func ColumnToColumnResponse(column *models.Column) *ColumnResponse {
	if column == nil {
		return nil
	}
	tasks := make([]TaskResponse, 0, len(column.Tasks))
	for i := range column.Tasks {
		tasks = append(tasks, *TaskToTaskResponse(&column.Tasks[i]))
	}
	return &ColumnResponse{
		ID:        column.ID,
		ProjectID: column.ProjectID,
		Name:      column.Name,
		Position:  column.Position,
		CreatedAt: column.CreatedAt,
		Tasks:     tasks,
	}
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	resp := &TaskResponse{
		ID:          task.ID,
		ColumnID:    task.ColumnID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Position:    task.Position,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Assignees:   make([]AssigneeResponse, 0, len(task.Assignees)),
		Subtasks:    make([]SubtaskResponse, 0, len(task.Subtasks)),
		Attachments: make([]AttachmentResponse, 0, len(task.Attachments)),
	}
	for i := range task.Assignees {
		resp.Assignees = append(resp.Assignees, AssigneeToAssigneeResponse(&task.Assignees[i]))
	}
	for i := range task.Subtasks {
		resp.Subtasks = append(resp.Subtasks, *SubtaskToSubtaskResponse(&task.Subtasks[i]))
	}
	for i := range task.Attachments {
		resp.Attachments = append(resp.Attachments, *AttachmentToAttachmentResponse(&task.Attachments[i]))
	}
	return resp
}

func AssigneeToAssigneeResponse(a *models.TaskAssignee) AssigneeResponse {
	return AssigneeResponse{
		UserID:     a.UserID,
		Name:       a.User.Name,
		Surname:    a.User.Surname,
		Email:      a.User.Email,
		AssignedAt: a.AssignedAt,
	}
}

func SubtaskToSubtaskResponse(s *models.Subtask) *SubtaskResponse {
	if s == nil {
		return nil
	}
	return &SubtaskResponse{
		ID:          s.ID,
		TaskID:      s.TaskID,
		Title:       s.Title,
		IsCompleted: s.IsCompleted,
		CompletedBy: s.CompletedBy,
		CompletedAt: s.CompletedAt,
		CreatedAt:   s.CreatedAt,
	}
}

func AttachmentToAttachmentResponse(a *models.Attachment) *AttachmentResponse {
	if a == nil {
		return nil
	}
	return &AttachmentResponse{
		ID:         a.ID,
		TaskID:     a.TaskID,
		FileName:   a.FileName,
		FileType:   a.ContentType,
		Size:       a.Size,
		FilePath:   a.FilePath,
		UploadedBy: a.UploadedByID,
		UploadedAt: a.UploadedAt,
	}
}
