package dto

import "time"

type UserResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

type UserDetailResponse struct {
	UserResponse
	EmailVerified bool      `json:"emailVerified"`
	IsGoogleUser  bool      `json:"isGoogleUser"`
	CreatedAt     time.Time `json:"createdAt"`
}

type UpdateUserRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Surname string `json:"surname" validate:"required,min=1,max=100"`
}

type UserExistsResponse struct {
	Exists bool `json:"exists"`
}
