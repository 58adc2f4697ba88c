package application

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/memory"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/tokens"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

func TestMain(m *testing.M) {
	domain.HashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *memory.SessionStore, *clock) {
	t.Helper()
	issuer, err := tokens.NewJWTIssuer("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	sessions := memory.NewSessionStore()
	c := &clock{now: time.Now().UTC()}
	svc := NewService(memory.NewRepository(), sessions, issuer, WithClock(c.Now), WithSessionTTL(time.Hour))
	return svc, sessions, c
}

func createDana(t *testing.T, svc *Service) *domain.Member {
	t.Helper()
	m, err := svc.CreateMember(context.Background(), ports.NewMember{
		Name: "Dana", Email: "dana@example.com", Password: "s3cret-pass", Role: identity.RoleStaff, Position: domain.PositionWaiter,
	})
	require.NoError(t, err)
	return m
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	dana := createDana(t, svc)

	token, err := svc.Login(ctx, " DANA@example.com ", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)
	require.Equal(t, dana.ID, token.Member.ID)

	who, err := svc.Authenticate(ctx, token.Value)
	require.NoError(t, err)
	require.Equal(t, identity.Identity{ID: dana.ID, Name: "Dana", Email: "dana@example.com", Role: identity.RoleStaff}, who)

	require.NoError(t, svc.Logout(ctx, token.Value))
	_, err = svc.Authenticate(ctx, token.Value)
	require.ErrorIs(t, err, ErrAuthentication)
	require.NoError(t, svc.Logout(ctx, token.Value))
}

func TestLogin_Rejects(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	dana := createDana(t, svc)

	_, err := svc.Login(ctx, "dana@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrAuthentication)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	require.ErrorIs(t, err, ErrAuthentication)
	_, err = svc.Login(ctx, "", "")
	require.ErrorIs(t, err, ErrAuthentication)

	inactive := false
	_, err = svc.UpdateMember(ctx, dana.ID, domain.Patch{Active: &inactive})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "dana@example.com", "s3cret-pass")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestAuthenticate_SessionExpiry(t *testing.T) {
	svc, _, c := newTestService(t)
	ctx := context.Background()
	createDana(t, svc)
	token, err := svc.Login(ctx, "dana@example.com", "s3cret-pass")
	require.NoError(t, err)

	c.now = c.now.Add(2 * time.Hour)
	_, err = svc.Authenticate(ctx, token.Value)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestUpdateMember_RoleChangeRevokesSessions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	dana := createDana(t, svc)
	token, err := svc.Login(ctx, "dana@example.com", "s3cret-pass")
	require.NoError(t, err)

	role := identity.RoleAdmin
	updated, err := svc.UpdateMember(ctx, dana.ID, domain.Patch{Role: &role})
	require.NoError(t, err)
	require.Equal(t, identity.RoleAdmin, updated.Role)

	_, err = svc.Authenticate(ctx, token.Value)
	require.ErrorIs(t, err, ErrAuthentication)

	phone := "555-0100"
	token, err = svc.Login(ctx, "dana@example.com", "s3cret-pass")
	require.NoError(t, err)
	_, err = svc.UpdateMember(ctx, dana.ID, domain.Patch{Phone: &phone})
	require.NoError(t, err)
	who, err := svc.Authenticate(ctx, token.Value)
	require.NoError(t, err)
	require.True(t, who.IsAdmin())
}

func TestCreateMember_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	createDana(t, svc)

	_, err := svc.CreateMember(ctx, ports.NewMember{Name: "Other", Email: "DANA@example.com", Password: "s3cret-pass", Role: identity.RoleStaff, Position: domain.PositionChef})
	require.ErrorIs(t, err, ports.ErrDuplicateEmail)

	_, err = svc.CreateMember(ctx, ports.NewMember{Name: "Other", Email: "other@example.com", Password: "x", Role: identity.RoleStaff, Position: domain.PositionChef})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteAndList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	dana := createDana(t, svc)
	_, err := svc.CreateMember(ctx, ports.NewMember{Name: "Chris", Email: "chris@example.com", Password: "s3cret-pass", Role: identity.RoleStaff, Position: domain.PositionChef})
	require.NoError(t, err)

	chefs, err := svc.ListMembers(ctx, "chef")
	require.NoError(t, err)
	require.Len(t, chefs, 1)
	require.Equal(t, "Chris", chefs[0].Name)

	token, err := svc.Login(ctx, "dana@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMember(ctx, dana.ID))
	_, err = svc.Authenticate(ctx, token.Value)
	require.ErrorIs(t, err, ErrAuthentication)
	require.ErrorIs(t, svc.DeleteMember(ctx, dana.ID), ports.ErrNotFound)
	_, err = svc.GetMember(ctx, dana.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "admin-pass")
	require.NoError(t, err)
	require.True(t, created)
	created, err = svc.EnsureAdmin(ctx, "Admin", "ADMIN@example.com", "admin-pass")
	require.NoError(t, err)
	require.False(t, created)

	token, err := svc.Login(ctx, "admin@example.com", "admin-pass")
	require.NoError(t, err)
	require.Equal(t, identity.RoleAdmin, token.Member.Role)
}
