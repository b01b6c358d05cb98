package dto

import "time"

type CreateColumnRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateColumnRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Position *int   `json:"position" validate:"omitempty,gte=0"`
}

type ColumnResponse struct {
	ID        uint           `json:"id"`
	ProjectID uint           `json:"projectId"`
	Name      string         `json:"name"`
	Position  int            `json:"position"`
	CreatedAt time.Time      `json:"createdAt"`
	Tasks     []TaskResponse `json:"tasks"`
}
