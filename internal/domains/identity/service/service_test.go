package service_test

import (
	"context"
	"errors"
	"testing"

	"kampus/config"
	"kampus/infras/jwt"
	"kampus/infras/metrics"
	"kampus/infras/otel/mocks"
	"kampus/internal/domains/identity/model"
	"kampus/internal/domains/identity/model/dto"
	"kampus/internal/domains/identity/repository"
	"kampus/internal/domains/identity/service"
	"kampus/internal/storage"
	storageMocks "kampus/internal/storage/mocks"
	"kampus/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "kampus"
	cfg.App.PasswordCost = bcrypt.MinCost
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func newService(t *testing.T, store storage.Storage, cfg *config.Config) service.Identity {
	t.Helper()

	ot := mocks.NewOtel()
	svc := service.New(
		repository.NewAccount(store, ot, metrics.New()),
		repository.NewSession(store, ot),
		jwt.New(cfg),
		cfg,
		ot,
	)
	require.NoError(t, svc.Load(context.Background()))

	return svc
}

func TestIdentityService_DemoAccounts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	svc := newService(t, store, newConfig())

	tests := []struct {
		email    string
		password string
		wantID   string
		wantRole model.Role
	}{
		{email: "admin@kampus.ac.id", password: "admin123", wantID: "1", wantRole: model.RoleAdmin},
		{email: "user@kampus.ac.id", password: "user123", wantID: "2", wantRole: model.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			session, err := svc.Login(ctx, dto.LoginRequest{Email: tt.email, Password: tt.password})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, session.ID)
			assert.Equal(t, tt.wantRole, session.Role)
			assert.NotEmpty(t, session.AccessToken)

			current := svc.Current(ctx)
			assert.True(t, current.Authenticated)
			assert.Equal(t, tt.wantID, current.UserID)
			assert.Equal(t, tt.wantRole, current.Role)
		})
	}

	raw, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.NotContains(t, raw, "admin123")
	assert.Contains(t, raw, "passwordHash")
}

func TestIdentityService_LoginRejected(t *testing.T) {
	svc := newService(t, storage.NewMemory(), newConfig())

	tests := []struct {
		name  string
		req   dto.LoginRequest
		check func(error) bool
	}{
		{name: "wrong password", req: dto.LoginRequest{Email: "admin@kampus.ac.id", Password: "user123"}, check: failure.IsUnauthorized},
		{name: "unknown email", req: dto.LoginRequest{Email: "dosen@kampus.ac.id", Password: "admin123"}, check: failure.IsUnauthorized},
		{name: "malformed email", req: dto.LoginRequest{Email: "admin", Password: "admin123"}, check: failure.IsBadRequest},
		{name: "empty password", req: dto.LoginRequest{Email: "admin@kampus.ac.id"}, check: failure.IsBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			assert.True(t, tt.check(err), "unexpected error %v", err)
			assert.False(t, svc.Current(context.Background()).Authenticated)
		})
	}
}

func TestIdentityService_Register(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	cfg := newConfig()
	svc := newService(t, store, cfg)

	session, err := svc.Register(ctx, dto.RegisterRequest{Name: "Siti", Email: "Siti@Kampus.ac.id ", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, session.Role)
	assert.Equal(t, "siti@kampus.ac.id", session.Email)

	current := svc.Current(ctx)
	assert.Equal(t, session.ID, current.UserID)
	assert.False(t, current.CanManageFacilities())

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Siti 2", Email: "siti@kampus.ac.id", Password: "rahasia"})
	assert.True(t, failure.IsConflict(err))

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Budi", Email: "budi@kampus.ac.id", Password: "123"})
	assert.True(t, failure.IsBadRequest(err))

	reloaded := newService(t, store, cfg)
	again, err := reloaded.Login(ctx, dto.LoginRequest{Email: "siti@kampus.ac.id", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, session.ID, again.ID)
}

func TestIdentityService_Logout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	svc := newService(t, store, newConfig())

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@kampus.ac.id", Password: "admin123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, model.Identity{}, svc.Current(ctx))

	_, err = svc.CurrentUser(ctx)
	assert.True(t, failure.IsUnauthorized(err))

	_, err = store.Get(ctx, "user")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIdentityService_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	cfg := newConfig()

	_, err := newService(t, store, cfg).Login(ctx, dto.LoginRequest{Email: "user@kampus.ac.id", Password: "user123"})
	require.NoError(t, err)

	user, err := newService(t, store, cfg).CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", user.Name)
}

func TestIdentityService_ExpiredAccessIsRefreshed(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	cfg := newConfig()
	cfg.JWT.AccessExpireMin = -1

	svc := newService(t, store, cfg)

	first, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@kampus.ac.id", Password: "admin123"})
	require.NoError(t, err)

	current := svc.Current(ctx)
	assert.True(t, current.Authenticated)
	assert.True(t, current.IsAdmin())

	stored, err := repository.NewSession(store, mocks.NewOtel()).Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, stored.RefreshToken)
}

func TestIdentityService_FullyExpiredSession(t *testing.T) {
	ctx := context.Background()
	cfg := newConfig()
	cfg.JWT.AccessExpireMin = -1
	cfg.JWT.RefreshExpireMin = -1

	svc := newService(t, storage.NewMemory(), cfg)

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@kampus.ac.id", Password: "admin123"})
	require.NoError(t, err)

	assert.False(t, svc.Current(ctx).Authenticated)
}

func TestIdentityService_FromToken(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, storage.NewMemory(), newConfig())

	session, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@kampus.ac.id", Password: "admin123"})
	require.NoError(t, err)

	identity, err := svc.FromToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.Identity{UserID: "1", Role: model.RoleAdmin, Authenticated: true}, identity)

	_, err = svc.FromToken(ctx, session.RefreshToken)
	assert.True(t, failure.IsUnauthorized(err))

	_, err = svc.FromToken(ctx, "garbage")
	assert.True(t, failure.IsUnauthorized(err))
}

func TestIdentityService_ContextWins(t *testing.T) {
	svc := newService(t, storage.NewMemory(), newConfig())

	ctx := model.WithIdentity(context.Background(), model.Identity{UserID: "7", Role: model.RoleUser, Authenticated: true})

	assert.Equal(t, model.Identity{UserID: "7", Role: model.RoleUser, Authenticated: true}, svc.Current(ctx))
}

func TestIdentityService_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	cfg := newConfig()
	ot := mocks.NewOtel()
	mockStorage := storageMocks.NewMockStorage(ctrl)

	svc := service.New(repository.NewAccount(mockStorage, ot, metrics.New()), repository.NewSession(mockStorage, ot), jwt.New(cfg), cfg, ot)

	mockStorage.EXPECT().Get(gomock.Any(), "users").Return("", errors.New("offline"))
	assert.Error(t, svc.Load(ctx))

	mockStorage.EXPECT().Get(gomock.Any(), "users").Return("", storage.ErrNotFound)
	mockStorage.EXPECT().Set(gomock.Any(), "users", gomock.Any()).Return(nil)
	require.NoError(t, svc.Load(ctx))

	mockStorage.EXPECT().Set(gomock.Any(), "user", gomock.Any()).Return(errors.New("offline"))
	_, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@kampus.ac.id", Password: "admin123"})
	assert.Error(t, err)

	mockStorage.EXPECT().Get(gomock.Any(), "user").Return("", errors.New("offline"))
	assert.False(t, svc.Current(ctx).Authenticated)
}
