package dto

import "time"

type UpdateAssigneesRequest struct {
	TaskID  uint   `json:"taskId" validate:"required,gt=0"`
	UserIDs []uint `json:"userIds" validate:"dive,gt=0"`
}

type UpdateAssigneesResponse struct {
	Message    string `json:"message"`
	Assigned   []uint `json:"assigned"`
	Unassigned []uint `json:"unassigned"`
}

type AssigneeResponse struct {
	UserID     uint      `json:"userId"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	Email      string    `json:"email"`
	AssignedAt time.Time `json:"assignedAt"`
}
