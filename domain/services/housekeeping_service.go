package services

import "context"

// HousekeepingService ลบข้อมูลหมดอายุตามรอบ cron
type HousekeepingService interface {
	// RunCleanup ลบคำเชิญที่หมดอายุและล้าง reset token ที่หมดอายุ
	RunCleanup(ctx context.Context) (*HousekeepingResult, error)

	// RegisterCleanupJob ลงทะเบียน job กับ scheduler
	RegisterCleanupJob() error
}

type HousekeepingResult struct {
	ExpiredInvitations int64 `json:"expiredInvitations"`
	ExpiredResetTokens int64 `json:"expiredResetTokens"`
}
