// Package service orchestrates entity operations: reconciliation before
// persistence for users, and the OCR → parse → classify → store pipeline for
// receipts. Every user operation reports through the uniform Outcome type.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/simplitrac/backend/internal/domain"
	infra "github.com/simplitrac/backend/internal/infra/firestore"
	"github.com/simplitrac/backend/internal/reconcile"
)

// UserService runs user CRUD against the persistence gateway.
type UserService struct {
	repo infra.UserRepository
	log  zerolog.Logger
}

// NewUserService creates a user service.
func NewUserService(repo infra.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// CreateUser normalizes and ids the user, reconciles its categories, then
// persists the document and subcollections. Nothing is written when
// reconciliation fails.
func (s *UserService) CreateUser(ctx context.Context, u *domain.User) domain.Outcome {
	u.Normalize()
	u.EnsureID()
	if u.CreatedAt == nil {
		now := time.Now().UTC()
		u.CreatedAt = &now
	}

	return s.save(ctx, u)
}

// UpdateUser re-saves the full user with the same upsert semantics as
// create, after confirming the user exists.
func (s *UserService) UpdateUser(ctx context.Context, userID string, u *domain.User) domain.Outcome {
	if _, err := s.repo.FindUser(ctx, userID); err != nil {
		if errors.Is(err, infra.ErrNotFound) {
			return domain.Fail(fmt.Sprintf("A user with id %s doesn't exist.", userID))
		}
		return domain.Fail(err.Error())
	}

	u.Normalize()
	u.EnsureID()
	return s.save(ctx, u)
}

func (s *UserService) save(ctx context.Context, u *domain.User) domain.Outcome {
	if err := reconcile.User(ctx, s.repo, u); err != nil {
		var ambiguous *reconcile.AmbiguousCategoryError
		if errors.As(err, &ambiguous) {
			s.log.Error().
				Str("user_id", u.UserID).
				Str("category_name", ambiguous.CategoryName).
				Int("count", ambiguous.Count).
				Msg("Duplicate category ids found, aborting save")
		}
		return domain.Fail(err.Error())
	}

	if err := s.repo.SaveUser(ctx, u); err != nil {
		return domain.Fail(fmt.Sprintf("Failed to save data: %s", err))
	}

	return domain.OK(u)
}

// GetUser retrieves a user with its subcollections.
func (s *UserService) GetUser(ctx context.Context, userID string) domain.Outcome {
	u, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, infra.ErrNotFound) {
			return domain.Fail(fmt.Sprintf("A user with id %s doesn't exist.", userID))
		}
		return domain.Fail(err.Error())
	}
	return domain.OK(u)
}

// DeleteUser removes the user document and its subcollections.
func (s *UserService) DeleteUser(ctx context.Context, userID string) domain.Outcome {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, infra.ErrNotFound) {
			return domain.Fail(fmt.Sprintf("A user with id %s doesn't exist.", userID))
		}
		return domain.Fail(err.Error())
	}
	return domain.OK(fmt.Sprintf("This user was deleted: %s", userID))
}

// DeleteAllTransactions clears a user's Transaction subcollection.
func (s *UserService) DeleteAllTransactions(ctx context.Context, userID string) domain.Outcome {
	if err := s.repo.DeleteAllTransactions(ctx, userID); err != nil {
		return domain.Fail(err.Error())
	}
	return domain.OK(fmt.Sprintf("All transactions deleted for user: %s", userID))
}

// DeleteCategory removes one category from a user's subcollection.
func (s *UserService) DeleteCategory(ctx context.Context, userID, categoryID string) domain.Outcome {
	if err := s.repo.DeleteCategory(ctx, userID, categoryID); err != nil {
		if errors.Is(err, infra.ErrNotFound) {
			return domain.Fail(fmt.Sprintf("A category with id %s doesn't exist.", categoryID))
		}
		return domain.Fail(err.Error())
	}
	return domain.OK(fmt.Sprintf("This category was deleted: %s", categoryID))
}
