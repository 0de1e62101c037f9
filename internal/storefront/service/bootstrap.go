package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

type BootstrapService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Token  string // empty disables bootstrap
	Now    func() time.Time
}

// IsBootstrapped reports whether any account exists yet.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first admin and returns its id. It only works while
// the user table is empty and token matches the configured one.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (string, error) {
	l := slogx.FromContext(ctx)

	// 1. Check if already bootstrapped
	if done, err := s.IsBootstrapped(ctx); err != nil {
		return "", err
	} else if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return "", ErrBootstrapAlready
	}

	// 2. Validate provided token
	if s.Token == "" || !cryptox.EqualTokens(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return "", ErrBootstrapUnauthorized
	}

	// 3. Hash password
	if err := checkPassword(req.AdminPassword); err != nil {
		return "", err
	}
	hash, err := s.Hasher.Hash(req.AdminPassword)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}

	// 4. Create the admin, re-checking emptiness inside the transaction
	now := nowOr(s.Now)
	adminID := idx.NewAt(idx.KindUser, now).String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, domain.User{
			ID:           adminID,
			Email:        normalizeEmail(req.AdminEmail),
			Name:         strings.TrimSpace(req.AdminName),
			PasswordHash: hash,
			IsAdmin:      true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	if err != nil {
		return "", err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", adminID))
	return adminID, nil
}
