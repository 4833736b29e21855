// Package users resolves display nicknames and manages user profiles.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recipespace/server/internal/recipedb"
)

// UnknownNickname is shown for authors that never set a nickname.
const UnknownNickname = "Unknown"

var (
	// ErrIncompleteProfile is returned when a signed-in user has no profile
	// document yet. The frontend routes them to the nickname flow.
	ErrIncompleteProfile = errors.New("users: profile not set")

	// ErrNicknameRequired is returned when a submitted nickname is empty.
	ErrNicknameRequired = errors.New("users: nickname required")
)

// NewResolver returns a Resolver reading profiles from store.
func NewResolver(store recipedb.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolver maps user IDs to display nicknames.
type Resolver struct {
	store recipedb.Store
}

// Nickname returns the nickname for userID, or UnknownNickname when no
// profile document exists. A missing profile is not an error.
func (r *Resolver) Nickname(ctx context.Context, userID string) (string, error) {
	u, err := r.store.GetUser(ctx, userID)
	if errors.Is(err, recipedb.ErrNotFound) {
		return UnknownNickname, nil
	}
	if err != nil {
		return "", fmt.Errorf("users: resolving nickname: %w", err)
	}
	return u.Nickname, nil
}

// NewProfiles returns a Profiles service writing to store.
func NewProfiles(store recipedb.Store) *Profiles {
	return &Profiles{store: store}
}

// Profiles reads and writes user profile documents.
type Profiles struct {
	store recipedb.Store
}

// Get fetches the profile for uid, or ErrIncompleteProfile when the user
// never set a nickname.
func (p *Profiles) Get(ctx context.Context, uid string) (*recipedb.User, error) {
	u, err := p.store.GetUser(ctx, uid)
	if errors.Is(err, recipedb.ErrNotFound) {
		return nil, ErrIncompleteProfile
	}
	if err != nil {
		return nil, fmt.Errorf("users: getting profile: %w", err)
	}
	return u, nil
}

// SetNickname writes the profile document for uid. This is what creates the
// profile on first submission.
func (p *Profiles) SetNickname(ctx context.Context, uid, email, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return ErrNicknameRequired
	}
	u := &recipedb.User{
		UID:      uid,
		Email:    email,
		Nickname: nickname,
	}
	if err := p.store.SetUser(ctx, u); err != nil {
		return fmt.Errorf("users: saving profile: %w", err)
	}
	return nil
}
