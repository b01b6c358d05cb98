package serviceimpl

import (
	"context"
	"errors"
	"time"

	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/metrics"
	"kanban-api/pkg/scheduler"
)

const housekeepingJobID = "housekeeping"

// HousekeepingConfig การตั้งค่าสำหรับ cleanup
type HousekeepingConfig struct {
	Cron string // default: "@hourly"
}

// HousekeepingService ลบคำเชิญและ reset token ที่หมดอายุแล้ว
type HousekeepingService struct {
	config         HousekeepingConfig
	invitationRepo repositories.InvitationRepository
	userRepo       repositories.UserRepository
	scheduler      scheduler.JobScheduler
	metrics        *metrics.Metrics
	now            func() time.Time
}

var _ services.HousekeepingService = (*HousekeepingService)(nil)

func NewHousekeepingService(
	config HousekeepingConfig,
	invitationRepo repositories.InvitationRepository,
	userRepo repositories.UserRepository,
	jobScheduler scheduler.JobScheduler,
	m *metrics.Metrics,
) *HousekeepingService {
	if config.Cron == "" {
		config.Cron = "@hourly"
	}
	return &HousekeepingService{
		config:         config,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		scheduler:      jobScheduler,
		metrics:        m,
		now:            time.Now,
	}
}

func (s *HousekeepingService) RegisterCleanupJob() error {
	return s.scheduler.AddJob(housekeepingJobID, s.config.Cron, func(ctx context.Context) {
		if _, err := s.RunCleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "Housekeeping failed", "error", err)
		}
	})
}

// RunCleanup รันทุกขั้นตอน ขั้นตอนที่ fail ไม่หยุดขั้นตอนถัดไป
func (s *HousekeepingService) RunCleanup(ctx context.Context) (*services.HousekeepingResult, error) {
	now := s.now().UTC()
	result := &services.HousekeepingResult{}
	var errs []error

	invitations, err := s.invitationRepo.DeleteExpired(ctx, now)
	if err != nil {
		errs = append(errs, err)
	} else {
		result.ExpiredInvitations = invitations
		s.record("invitations", invitations)
	}

	tokens, err := s.userRepo.ClearExpiredResetTokens(ctx, now)
	if err != nil {
		errs = append(errs, err)
	} else {
		result.ExpiredResetTokens = tokens
		s.record("reset_tokens", tokens)
	}

	logger.InfoContext(ctx, "Housekeeping completed",
		"expired_invitations", result.ExpiredInvitations,
		"expired_reset_tokens", result.ExpiredResetTokens,
	)
	return result, errors.Join(errs...)
}

func (s *HousekeepingService) record(target string, n int64) {
	if s.metrics != nil && n > 0 {
		s.metrics.HousekeepingRun.WithLabelValues(target).Add(float64(n))
	}
}
