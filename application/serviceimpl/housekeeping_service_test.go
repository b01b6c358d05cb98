package serviceimpl

import (
	"context"
	"testing"
	"time"

	iodto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-api/domain/models"
	"kanban-api/infrastructure/postgres"
	"kanban-api/pkg/metrics"
	"kanban-api/pkg/scheduler"
)

func TestHousekeepingCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	project := f.createProject(t, owner, "Board")
	now := time.Now().UTC()

	for i, expires := range []time.Time{now.Add(-time.Hour), now.Add(-time.Minute), now.Add(time.Hour)} {
		require.NoError(t, f.invitations.Create(ctx, &models.ProjectInvitation{
			Email:     "invitee@example.com",
			ProjectID: project.ID,
			Role:      models.RoleMember,
			Token:     "token-" + string(rune('a'+i)),
			ExpiresAt: expires,
		}))
	}

	stale := f.createUser(t, "Stale", "stale@example.com")
	token, past := "old-reset", now.Add(-2*time.Hour)
	stale.PasswordResetToken = &token
	stale.PasswordResetTokenExpires = &past
	require.NoError(t, f.users.Update(ctx, stale))

	fresh := f.createUser(t, "Fresh", "fresh@example.com")
	freshToken, future := "new-reset", now.Add(time.Hour)
	fresh.PasswordResetToken = &freshToken
	fresh.PasswordResetTokenExpires = &future
	require.NoError(t, f.users.Update(ctx, fresh))

	m := metrics.New()
	jobs := scheduler.NewJobScheduler(time.Minute)
	hk := NewHousekeepingService(HousekeepingConfig{}, f.invitations, f.users, jobs, m)
	hk.now = func() time.Time { return now }

	result, err := hk.RunCleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.ExpiredInvitations)
	assert.Equal(t, int64(1), result.ExpiredResetTokens)
	var counter iodto.Metric
	require.NoError(t, m.HousekeepingRun.WithLabelValues("invitations").Write(&counter))
	assert.Equal(t, float64(2), counter.GetCounter().GetValue())

	reloaded, err := f.users.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.PasswordResetToken)

	reloaded, err = f.users.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.PasswordResetToken)

	// รอบที่สองไม่มีอะไรให้ลบ
	result, err = hk.RunCleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.ExpiredInvitations)
	assert.Zero(t, result.ExpiredResetTokens)
}

func TestHousekeepingRegistersJob(t *testing.T) {
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{Driver: "sqlite", Path: "file:housekeeping?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	jobs := scheduler.NewJobScheduler(time.Minute)
	hk := NewHousekeepingService(HousekeepingConfig{Cron: "*/5 * * * *"}, postgres.NewInvitationRepository(db), postgres.NewUserRepository(db), jobs, nil)

	require.NoError(t, hk.RegisterCleanupJob())
	assert.Error(t, hk.RegisterCleanupJob())

	list := jobs.ListJobs()
	require.Len(t, list, 1)
	assert.Equal(t, housekeepingJobID, list[0].ID)
	assert.Equal(t, "*/5 * * * *", list[0].CronExpr)

	require.NoError(t, jobs.RunNow(housekeepingJobID))
	list = jobs.ListJobs()
	assert.NotNil(t, list[0].LastRun)
}
