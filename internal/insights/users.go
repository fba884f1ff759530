package insights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerinsights/internal/database"
	"github.com/muhammadolammi/careerinsights/internal/identity"
)

// ResolveUser finds the local user for id, provisioning one on first touch.
func (s *Service) ResolveUser(ctx context.Context, id *identity.Identity) (*database.User, error) {
	if id == nil || id.ID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.store.GetUserByClerkID(ctx, id.ID)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user, err = s.store.CreateUser(ctx, database.CreateUserParams{
		ID:          uuid.New(),
		ClerkUserID: id.ID,
		Email:       id.PrimaryEmail(),
		Name:        id.DisplayName(),
		ImageUrl:    id.ImageURL,
	})
	switch {
	case err == nil:
		s.log.Info("provisioned user", "clerk_user_id", id.ID, "user_id", user.ID)
		return &user, nil
	case errors.Is(err, sql.ErrNoRows):
		// Lost a first-touch race; the winner's row is authoritative.
		user, err = s.store.GetUserByClerkID(ctx, id.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("re-read user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("create user: %w", err)
	}
}

// SetIndustry records the industry the user works in.
func (s *Service) SetIndustry(ctx context.Context, id *identity.Identity, industry string) (*database.User, error) {
	industry = strings.TrimSpace(industry)
	if id == nil {
		return nil, ErrUnauthorized
	}
	if industry == "" {
		return nil, ErrInvalidIndustry
	}

	user, err := s.ResolveUser(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateUserIndustry(ctx, database.UpdateUserIndustryParams{
		Industry: sql.NullString{String: industry, Valid: true},
		ID:       user.ID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user industry: %w", err)
	}
	return &updated, nil
}
