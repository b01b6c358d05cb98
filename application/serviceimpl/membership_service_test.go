package serviceimpl

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/pkg/apperror"
)

func TestCreateProjectMakesOwnerAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")

	project, err := f.project.CreateProject(ctx, owner.ID, &dto.CreateProjectRequest{Title: "  Website Redesign ", Description: "Q3"})
	require.NoError(t, err)
	assert.Equal(t, "Website Redesign", project.Title)
	assert.Equal(t, "website-redesign", project.Slug)

	require.Len(t, project.Members, 1)
	assert.Equal(t, owner.ID, project.Members[0].UserID)
	assert.Equal(t, models.RoleAdmin, project.Members[0].Role)

	summaries, err := f.project.UserProjects(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Admin", summaries[0].Role)
}

func TestListProjectsVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")
	f.createProject(t, alice, "Alpha")
	f.createProject(t, bob, "Beta")

	own, err := f.project.ListProjects(ctx, actorOf(alice))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Alpha", own[0].Title)

	admin := actorOf(alice)
	admin.IsSuperAdmin = true
	all, err := f.project.ListProjects(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInviteAndConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	guest := f.createUser(t, "Guest", "guest@example.com")
	project := f.createProject(t, owner, "Board")

	invitation, err := f.membership.InviteUser(ctx, owner.ID, &dto.InviteUserRequest{
		ProjectID: project.ID,
		Email:     "Guest@Example.com",
		Role:      "member",
	})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", invitation.Email)
	assert.Equal(t, models.RoleMember, invitation.Role)

	msg, ok := f.mail.Last(ports.MailInvitation)
	require.True(t, ok)
	assert.Equal(t, "guest@example.com", msg.To)
	assert.Contains(t, msg.TextBody, url.QueryEscape(invitation.Token))

	confirm := &dto.ConfirmInviteRequest{ProjectID: project.ID, Email: "guest@example.com", Token: invitation.Token}
	member, err := f.membership.ConfirmInvite(ctx, confirm)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, member.UserID)
	assert.Equal(t, models.RoleMember, member.Role)

	// คำเชิญถูกลบหลังยืนยัน ใช้ซ้ำไม่ได้
	_, err = f.membership.ConfirmInvite(ctx, confirm)
	assert.ErrorIs(t, err, apperror.ErrInvalidOrExpiredInvite)

	role, err := f.membership.GetRole(ctx, actorOf(guest), project.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, role)
}

func TestConfirmInviteFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	project := f.createProject(t, owner, "Board")

	invite := func(email string) *models.ProjectInvitation {
		inv, err := f.membership.InviteUser(ctx, owner.ID, &dto.InviteUserRequest{ProjectID: project.ID, Email: email, Role: "Admin"})
		require.NoError(t, err)
		return inv
	}

	t.Run("wrong token", func(t *testing.T) {
		invite("someone@example.com")
		_, err := f.membership.ConfirmInvite(ctx, &dto.ConfirmInviteRequest{ProjectID: project.ID, Email: "someone@example.com", Token: "bogus"})
		assert.ErrorIs(t, err, apperror.ErrInvalidOrExpiredInvite)
	})

	t.Run("not registered", func(t *testing.T) {
		inv := invite("stranger@example.com")
		_, err := f.membership.ConfirmInvite(ctx, &dto.ConfirmInviteRequest{ProjectID: project.ID, Email: inv.Email, Token: inv.Token})
		assert.ErrorIs(t, err, apperror.ErrUserMustRegisterFirst)
	})

	t.Run("already member", func(t *testing.T) {
		inv := invite("owner@example.com")
		_, err := f.membership.ConfirmInvite(ctx, &dto.ConfirmInviteRequest{ProjectID: project.ID, Email: inv.Email, Token: inv.Token})
		assert.ErrorIs(t, err, apperror.ErrAlreadyMember)
	})

	t.Run("expired", func(t *testing.T) {
		f.createUser(t, "Late", "late@example.com")
		inv := invite("late@example.com")

		impl := f.membership.(*MembershipServiceImpl)
		impl.now = func() time.Time { return time.Now().Add(invitationTTL + time.Minute) }
		defer func() { impl.now = time.Now }()

		_, err := f.membership.ConfirmInvite(ctx, &dto.ConfirmInviteRequest{ProjectID: project.ID, Email: inv.Email, Token: inv.Token})
		assert.ErrorIs(t, err, apperror.ErrInvalidOrExpiredInvite)
	})
}

// staleMembershipCheck จำลองการยืนยันคำเชิญสองครั้งพร้อมกัน ทั้งคู่ยังไม่เห็นแถวสมาชิก
type staleMembershipCheck struct {
	repositories.ProjectUserRepository
}

func (staleMembershipCheck) Get(context.Context, uint, uint) (*models.ProjectUser, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestConcurrentConfirmReturnsAlreadyMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	guest := f.createUser(t, "Guest", "guest@example.com")
	project := f.createProject(t, owner, "Board")

	inv, err := f.membership.InviteUser(ctx, owner.ID, &dto.InviteUserRequest{ProjectID: project.ID, Email: guest.Email, Role: "Member"})
	require.NoError(t, err)
	f.addMember(t, project, guest, models.RoleMember)

	membership := NewMembershipService(f.projects, staleMembershipCheck{f.members}, f.invitations, f.users, f.tx, f.notifier)
	_, err = membership.ConfirmInvite(ctx, &dto.ConfirmInviteRequest{ProjectID: project.ID, Email: guest.Email, Token: inv.Token})
	assert.ErrorIs(t, err, apperror.ErrAlreadyMember)

	// invitation ยังอยู่เพราะ transaction ถูก rollback
	var count int64
	require.NoError(t, f.db.Model(&models.ProjectInvitation{}).Where("id = ?", inv.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateRoleAndRemoveUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	member := f.createUser(t, "Member", "member@example.com")
	outsider := f.createUser(t, "Outsider", "outsider@example.com")
	project := f.createProject(t, owner, "Board")
	f.addMember(t, project, member, models.RoleMember)

	updated, err := f.membership.UpdateRole(ctx, project.ID, member.ID, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	_, err = f.membership.UpdateRole(ctx, project.ID, member.ID, "owner")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.membership.GetRole(ctx, actorOf(outsider), project.ID, member.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, f.membership.RemoveUser(ctx, project.ID, member.ID))
	assert.ErrorIs(t, f.membership.RemoveUser(ctx, project.ID, member.ID), apperror.ErrNotFound)

	_, err = f.membership.GetRole(ctx, actorOf(member), project.ID, member.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAuthorize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "Owner", "owner@example.com")
	member := f.createUser(t, "Member", "member@example.com")
	outsider := f.createUser(t, "Outsider", "outsider@example.com")
	project := f.createProject(t, owner, "Board")
	f.addMember(t, project, member, models.RoleMember)

	tests := []struct {
		name    string
		actor   *models.User
		super   bool
		project uint
		roles   []models.Role
		want    error
	}{
		{"admin on admin route", owner, false, project.ID, []models.Role{models.RoleAdmin}, nil},
		{"member on member route", member, false, project.ID, nil, nil},
		{"member on admin route", member, false, project.ID, []models.Role{models.RoleAdmin}, apperror.ErrForbidden},
		{"outsider", outsider, false, project.ID, nil, apperror.ErrForbidden},
		{"super admin bypass", outsider, true, project.ID, []models.Role{models.RoleAdmin}, nil},
		{"missing project", owner, false, project.ID + 100, nil, apperror.ErrNotFound},
		{"super admin missing project", outsider, true, project.ID + 100, nil, apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := actorOf(tt.actor)
			actor.IsSuperAdmin = tt.super
			err := f.access.Authorize(ctx, actor, tt.project, tt.roles...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInvitationLinkCarriesProject(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t, "Owner", "owner@example.com")
	project := f.createProject(t, owner, "Launch Plan")

	_, err := f.membership.InviteUser(context.Background(), owner.ID, &dto.InviteUserRequest{ProjectID: project.ID, Email: "x@example.com", Role: "Member"})
	require.NoError(t, err)

	msg, ok := f.mail.Last(ports.MailInvitation)
	require.True(t, ok)
	assert.True(t, strings.Contains(msg.HTMLBody, "Launch Plan"))
	assert.Contains(t, msg.Subject, "Kanban")
}
