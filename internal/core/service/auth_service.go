package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

const tokenTypeBearer = "bearer"

// PasswordHasher abstracts the bcrypt worker pool.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) bool
}

// TokenManager abstracts access token issue and verification.
type TokenManager interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Verify(token string) (string, bool)
	TTL() time.Duration
}

// AuthService implements registration, login and bearer token resolution.
type AuthService struct {
	repo               ports.UserRepository
	hasher             PasswordHasher
	tokens             TokenManager
	allowSelfElevation bool
	log                zerolog.Logger

	decoyOnce sync.Once
	decoyHash string
}

func NewAuthService(repo ports.UserRepository, hasher PasswordHasher, tokens TokenManager, allowSelfElevation bool, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:               repo,
		hasher:             hasher,
		tokens:             tokens,
		allowSelfElevation: allowSelfElevation,
		log:                log,
	}
}

// Register creates an account. Usernames are stored lowercased, emails with a
// lowercased domain.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.IsSuperuser && !s.allowSelfElevation {
		return nil, fmt.Errorf("register superuser: %w", domain.ErrForbidden)
	}
	user, err := s.createUser(ctx, in, "")
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// createUser stores hash when it is given and hashes in.Password otherwise.
func (s *AuthService) createUser(ctx context.Context, in ports.RegisterInput, hash string) (*domain.User, error) {
	email := NormalizeEmail(in.Email)
	username := NormalizeUsername(in.Username)
	if email == "" || username == "" || (in.Password == "" && hash == "") {
		return nil, domain.NewValidationError([]string{"body"}, "email, username and password are required")
	}

	// Fail fast before paying for a hash; Create re-checks atomically.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	}

	if hash == "" {
		var err error
		if hash, err = s.hasher.Hash(ctx, in.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	return s.repo.Create(ctx, &domain.User{
		Email:        email,
		Username:     username,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		IsSuperuser:  in.IsSuperuser,
	})
}

// Authenticate fails closed with domain.ErrInvalidCredentials for an unknown
// username, a wrong password or an inactive account.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		// Burn a comparison so unknown usernames cost the same as wrong passwords.
		s.hasher.Verify(ctx, password, s.decoy(ctx))
		s.log.Debug().Str("username", username).Msg("login rejected: unknown user")
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		s.log.Debug().Int64("user_id", user.ID).Msg("login rejected: bad password")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Debug().Int64("user_id", user.ID).Msg("login rejected: inactive")
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues an access token for the user id.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AccessToken, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10), 0)
	if err != nil {
		return nil, nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.AccessToken{
		Token:     token,
		TokenType: tokenTypeBearer,
		ExpiresIn: int64(s.tokens.TTL() / time.Second),
	}, user, nil
}

// ResolveToken verifies token and loads its subject. Whether the user is
// active is left to the caller.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	subject, ok := s.tokens.Verify(token)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) decoy(ctx context.Context) string {
	s.decoyOnce.Do(func() {
		h, err := s.hasher.Hash(ctx, "decoy-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("decoy hash unavailable")
			return
		}
		s.decoyHash = h
	})
	return s.decoyHash
}

// NormalizeUsername lowercases and trims a username.
func NormalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// NormalizeEmail trims an email address and lowercases its domain. The local
// part keeps its case, so Foo@x.com and foo@x.com are distinct accounts.
func NormalizeEmail(e string) string {
	e = strings.TrimSpace(e)
	at := strings.LastIndexByte(e, '@')
	if at < 0 {
		return e
	}
	return e[:at+1] + strings.ToLower(e[at+1:])
}
