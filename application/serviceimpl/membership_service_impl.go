package serviceimpl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

const invitationTTL = 24 * time.Hour

type MembershipServiceImpl struct {
	projectRepo    repositories.ProjectRepository
	memberRepo     repositories.ProjectUserRepository
	invitationRepo repositories.InvitationRepository
	userRepo       repositories.UserRepository
	tx             repositories.Transactor
	notifier       services.NotificationService
	now            func() time.Time
}

func NewMembershipService(
	projectRepo repositories.ProjectRepository,
	memberRepo repositories.ProjectUserRepository,
	invitationRepo repositories.InvitationRepository,
	userRepo repositories.UserRepository,
	tx repositories.Transactor,
	notifier services.NotificationService,
) services.MembershipService {
	return &MembershipServiceImpl{
		projectRepo:    projectRepo,
		memberRepo:     memberRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		tx:             tx,
		notifier:       notifier,
		now:            time.Now,
	}
}

// InviteUser ไม่ตรวจคำเชิญซ้ำ ส่งซ้ำได้หลายครั้ง
func (s *MembershipServiceImpl) InviteUser(ctx context.Context, inviterID uint, req *dto.InviteUserRequest) (*models.ProjectInvitation, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, apperror.Validation("role must be Admin or Member")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, repoError(err, "project")
	}

	invitation := &models.ProjectInvitation{
		Email:       normalizeEmail(req.Email),
		ProjectID:   project.ID,
		Role:        role,
		Token:       uuid.NewString(),
		ExpiresAt:   s.now().Add(invitationTTL),
		InvitedByID: &inviterID,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.invitationRepo.Create(ctx, invitation); err != nil {
			return apperror.Internal(err)
		}
		return s.notifier.SendInvitation(ctx, invitation, project)
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User invited", "project_id", project.ID, "email", invitation.Email, "role", role)
	return invitation, nil
}

func (s *MembershipServiceImpl) ConfirmInvite(ctx context.Context, req *dto.ConfirmInviteRequest) (*models.ProjectUser, error) {
	email := normalizeEmail(req.Email)

	invitation, err := s.invitationRepo.Find(ctx, email, req.ProjectID, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidOrExpiredInvite
		}
		return nil, apperror.Internal(err)
	}
	if invitation.IsExpired(s.now()) {
		return nil, apperror.ErrInvalidOrExpiredInvite
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUserMustRegisterFirst
		}
		return nil, apperror.Internal(err)
	}

	_, err = s.memberRepo.Get(ctx, invitation.ProjectID, user.ID)
	switch {
	case err == nil:
		// คำเชิญถือว่าถูกใช้แล้วแม้ผู้ใช้จะเป็นสมาชิกอยู่ก่อน
		if err := s.invitationRepo.Delete(ctx, invitation.ID); err != nil {
			logger.WarnContext(ctx, "Failed to consume invitation", "invitation_id", invitation.ID, "error", err)
		}
		return nil, apperror.ErrAlreadyMember
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperror.Internal(err)
	}

	member := &models.ProjectUser{
		ProjectID: invitation.ProjectID,
		UserID:    user.ID,
		Role:      invitation.Role,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberRepo.Create(ctx, member); err != nil {
			return err
		}
		return s.invitationRepo.Delete(ctx, invitation.ID)
	})
	if err != nil {
		// คำเชิญเดียวกันถูกยืนยันพร้อมกันสองครั้ง
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidOrExpiredInvite
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrAlreadyMember
		}
		return nil, apperror.Internal(err)
	}

	member.User = *user
	logger.InfoContext(ctx, "Invitation confirmed", "project_id", member.ProjectID, "user_id", user.ID, "role", member.Role)
	return member, nil
}

func (s *MembershipServiceImpl) RemoveUser(ctx context.Context, projectID, userID uint) error {
	if err := s.memberRepo.Delete(ctx, projectID, userID); err != nil {
		return repoError(err, "membership")
	}
	logger.InfoContext(ctx, "User removed from project", "project_id", projectID, "user_id", userID)
	return nil
}

func (s *MembershipServiceImpl) UpdateRole(ctx context.Context, projectID, userID uint, role string) (*models.ProjectUser, error) {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, apperror.Validation("role must be Admin or Member")
	}

	if err := s.memberRepo.UpdateRole(ctx, projectID, userID, parsed); err != nil {
		return nil, repoError(err, "membership")
	}

	member, err := s.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return nil, repoError(err, "membership")
	}

	logger.InfoContext(ctx, "Project role updated", "project_id", projectID, "user_id", userID, "role", parsed)
	return member, nil
}

// GetRole ดู role ของตัวเองได้เสมอ ดูของคนอื่นต้องเป็นสมาชิกของ project นั้น
func (s *MembershipServiceImpl) GetRole(ctx context.Context, actor *utils.UserContext, projectID, userID uint) (models.Role, error) {
	if userID != actor.ID && !actor.IsSuperAdmin {
		if _, err := s.memberRepo.Get(ctx, projectID, actor.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", apperror.Forbidden("you are not a member of this project")
			}
			return "", apperror.Internal(err)
		}
	}

	member, err := s.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return "", repoError(err, "membership")
	}
	return member.Role, nil
}
