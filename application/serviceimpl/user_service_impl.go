package serviceimpl

import (
	"context"
	"strings"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) services.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "user")
	}
	return user, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, actor *utils.UserContext) ([]*models.User, error) {
	if !actor.IsSuperAdmin {
		return nil, apperror.Forbidden("only super admins can list users")
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *UserServiceImpl) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

// UpdateUser แก้ได้เฉพาะชื่อของตัวเอง (super admin แก้ของคนอื่นได้)
func (s *UserServiceImpl) UpdateUser(ctx context.Context, actor *utils.UserContext, id uint, req *dto.UpdateUserRequest) (*models.User, error) {
	if actor.ID != id && !actor.IsSuperAdmin {
		return nil, apperror.Forbidden("you can only update your own profile")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "user")
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Surname = strings.TrimSpace(req.Surname)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "User updated", "user_id", user.ID)
	return user, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor *utils.UserContext, id uint) error {
	if actor.ID != id && !actor.IsSuperAdmin {
		return apperror.Forbidden("you can only delete your own account")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return repoError(err, "user")
	}

	logger.InfoContext(ctx, "User deleted", "user_id", id, "deleted_by", actor.ID)
	return nil
}
