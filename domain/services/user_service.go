package services

import (
	"context"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/pkg/utils"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, actor *utils.UserContext) ([]*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, actor *utils.UserContext, id uint, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actor *utils.UserContext, id uint) error
}
