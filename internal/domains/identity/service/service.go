package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"kampus/config"
	"kampus/infras/jwt"
	"kampus/infras/otel"
	"kampus/internal/domains/identity/model"
	"kampus/internal/domains/identity/model/dto"
	"kampus/internal/domains/identity/repository"
	"kampus/internal/storage"
	"kampus/shared/constant"
	"kampus/shared/failure"
	gRepo "kampus/shared/repository"
	"kampus/shared/password"
	"kampus/shared/timezone"
	"kampus/shared/validator"

	"github.com/rs/zerolog/log"
)

var errInvalidCredentials = failure.Unauthorized("invalid email or password")

// Identity is the credential directory and the signed-in session. It only answers who
// the caller is; the stores never consult it.
type Identity interface {
	Load(ctx context.Context) error
	Login(ctx context.Context, req dto.LoginRequest) (model.Session, error)
	Register(ctx context.Context, req dto.RegisterRequest) (model.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) model.Identity
	CurrentUser(ctx context.Context) (model.User, error)
	FromToken(ctx context.Context, token string) (model.Identity, error)
}

type serviceImpl struct {
	mu       sync.RWMutex
	accounts []model.Account
	repo     repository.Account
	session  repository.Session
	jwt      jwt.JWT
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Account, session repository.Session, jwt jwt.JWT, cfg *config.Config, otel otel.Otel) Identity {
	return &serviceImpl{
		accounts: []model.Account{},
		repo:     repo,
		session:  session,
		jwt:      jwt,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) hash(plain string) (string, error) {
	cost := s.cfg.App.PasswordCost
	if cost == 0 {
		cost = password.DefaultCost
	}

	return password.HashWithCost(plain, cost) //nolint:wrapcheck
}

// Load restores the directory, seeding the demo accounts when none was saved.
func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identity.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.repo.Load(ctx)
	if err == nil {
		s.accounts = accounts

		return nil
	}

	if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, gRepo.ErrCorrupt) {
		log.Error().Err(err).Msg("failed to load accounts")

		return fmt.Errorf("failed to load accounts: %w", err)
	}

	seeded := []model.Account{}

	for _, demo := range model.DemoCredentials() {
		hash, err := s.hash(demo.Password)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}

		demo.CreatedAt = timezone.Now()
		seeded = append(seeded, model.Account{User: demo.User, PasswordHash: hash})
	}

	if err = s.repo.Save(ctx, seeded); err != nil {
		log.Error().Err(err).Msg("failed to save demo accounts")

		return fmt.Errorf("failed to save demo accounts: %w", err)
	}

	s.accounts = seeded

	return nil
}

func (s *serviceImpl) find(email string) (model.Account, bool) {
	email = dto.NormalizeEmail(email)

	idx := slices.IndexFunc(s.accounts, func(a model.Account) bool { return a.Email == email })
	if idx < 0 {
		return model.Account{}, false
	}

	return s.accounts[idx], true
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identity.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	s.mu.RLock()
	account, ok := s.find(req.Email)
	s.mu.RUnlock()

	if !ok {
		return res, errInvalidCredentials
	}

	if err = password.Verify(req.Password, account.PasswordHash); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			return res, errInvalidCredentials
		}

		return res, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.signIn(ctx, account.User)
}

// Register adds a user-role account and signs it in.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identity.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	account := req.ToModel(hash)

	s.mu.Lock()

	if _, exists := s.find(account.Email); exists {
		s.mu.Unlock()

		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	next := append(slices.Clone(s.accounts), account)
	if err = s.repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		log.Error().Err(err).Msg("failed to save accounts")

		return res, fmt.Errorf("failed to save accounts: %w", err)
	}

	s.accounts = next
	s.mu.Unlock()

	return s.signIn(ctx, account.User)
}

func (s *serviceImpl) signIn(ctx context.Context, user model.User) (model.Session, error) {
	pair, err := s.jwt.GenerateTokenPair(jwt.Subject{UserID: user.ID, Email: user.Email, Role: string(user.Role)})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return model.Session{}, fmt.Errorf("failed to generate tokens: %w", err)
	}

	session := model.Session{User: user, TokenPair: pair}

	if err = s.session.Save(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to save session")

		return model.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("Signed in")

	return session, nil
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identity.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.session.Delete(ctx) //nolint:wrapcheck
}

// Current resolves the caller from ctx first, then from the persisted session. An
// expired access token is renewed with the refresh token. Any failure yields an
// unauthenticated identity.
func (s *serviceImpl) Current(ctx context.Context) model.Identity {
	if identity, ok := model.FromContext(ctx); ok {
		return identity
	}

	session, err := s.currentSession(ctx)
	if err != nil {
		return model.Identity{}
	}

	return model.Identity{UserID: session.ID, Role: session.Role, Authenticated: true}
}

func (s *serviceImpl) CurrentUser(ctx context.Context) (model.User, error) {
	session, err := s.currentSession(ctx)
	if err != nil {
		return model.User{}, err
	}

	return session.User, nil
}

func (s *serviceImpl) currentSession(ctx context.Context) (res model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identity.Current")
	defer scope.End()

	session, err := s.session.Get(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error().Err(err).Msg("failed to read session")
		}

		return res, failure.UnauthenticatedError
	}

	_, err = s.jwt.ValidateToken(session.AccessToken, jwt.AccessToken)
	if err == nil {
		return session, nil
	}

	if !errors.Is(err, jwt.ErrExpiredToken) {
		log.Warn().Err(err).Msg("stored session has an invalid token")

		return res, failure.UnauthenticatedError
	}

	pair, err := s.jwt.RefreshTokens(session.RefreshToken)
	if err != nil {
		log.Info().Err(err).Msg("session expired")

		return res, failure.UnauthenticatedError
	}

	session.TokenPair = pair

	if err = s.session.Save(ctx, session); err != nil {
		log.Warn().Err(err).Msg("failed to persist refreshed session")
	}

	scope.AddEvent("session refreshed")

	return session, nil
}

// FromToken resolves an access token without touching the persisted session.
func (s *serviceImpl) FromToken(ctx context.Context, token string) (model.Identity, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".identity.FromToken")
	defer scope.End()

	claims, err := s.jwt.ValidateToken(token, jwt.AccessToken)
	if err != nil {
		scope.TraceError(err)

		return model.Identity{}, failure.Unauthorized(err.Error()) // nolint:wrapcheck
	}

	return model.Identity{
		UserID:        claims.Subject,
		Role:          model.Role(claims.Role),
		Authenticated: true,
	}, nil
}
