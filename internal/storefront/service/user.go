package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile changes the name and/or password, whichever is non-nil, and
// returns the updated user.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, name, password *string) (domain.User, error) {
	var hash string
	if password != nil {
		if err := checkPassword(*password); err != nil {
			return domain.User{}, err
		}
		h, err := s.Hasher.Hash(*password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if name != nil {
			if err := tx.Users().UpdateProfile(ctx, userID, strings.TrimSpace(*name)); err != nil {
				return err
			}
		}
		if hash != "" {
			if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
				return err
			}
		}
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		out = u
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return out, err
}
