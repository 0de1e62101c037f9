package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too weak")
)

const MinPasswordLength = 8

// Session is what a successful register or login hands back.
type Session struct {
	Token jwtx.AuthToken
	User  domain.User
}

type AuthService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Issuer *jwtx.Issuer
	Secret string        // HMAC key, passed in from config
	TTL    time.Duration // jwtx.DefaultTokenTTL when zero
	Now    func() time.Time
}

// Register creates a regular (non-admin) account and logs it in.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (Session, error) {
	l := slogx.FromContext(ctx)

	if err := checkPassword(password); err != nil {
		return Session{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := nowOr(s.Now)
	u := domain.User{
		ID:           idx.NewAt(idx.KindUser, now).String(),
		Email:        normalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return s.issue(u)
}

// Login checks the password and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller, timing included.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		s.Hasher.Burn(password)
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("get user: %w", err)
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed", slog.String("user_id", u.ID))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("verify password: %w", err)
	}

	return s.issue(u)
}

// Authenticate resolves a bearer token to the user id it was issued for.
// Errors are the jwtx sentinels.
func (s *AuthService) Authenticate(_ context.Context, token string) (string, error) {
	return s.Issuer.Verify(token, s.Secret)
}

// IsAdmin reads the flag fresh on every call, so revoking admin takes
// effect without waiting for tokens to expire.
func (s *AuthService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}

func (s *AuthService) issue(u domain.User) (Session, error) {
	ttl := s.TTL
	if ttl == 0 {
		ttl = jwtx.DefaultTokenTTL
	}
	tok, err := s.Issuer.Issue(u.ID, s.Secret, ttl)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: tok, User: u}, nil
}

func checkPassword(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
