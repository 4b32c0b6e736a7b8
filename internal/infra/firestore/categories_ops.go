package firestore

import (
	"context"
	"fmt"

	"google.golang.org/api/iterator"

	"github.com/simplitrac/backend/internal/domain"
)

// FindCategoryIDsByName returns the distinct ids in the user's Category
// subcollection whose normalized name equals categoryName's. The lookup is
// deliberately scoped to one user: category names are not shared across
// tenants. Comparison happens here rather than in the query because stored
// names are display-normalized while matching is case-insensitive.
func (s *Store) FindCategoryIDsByName(ctx context.Context, userID, categoryName string) ([]string, error) {
	key := domain.CategoryKey(categoryName)
	if key == "" {
		return nil, nil
	}

	cats, err := s.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("FindCategoryIDsByName: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, c := range cats {
		if c.Key() != key || c.CategoryID == "" || seen[c.CategoryID] {
			continue
		}
		seen[c.CategoryID] = true
		ids = append(ids, c.CategoryID)
	}
	return ids, nil
}

// ListCategories streams every document in the user's Category subcollection.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	it := s.userDoc(userID).Collection(categoryCollection).Documents(ctx)
	defer it.Stop()

	var cats []domain.Category
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListCategories: user %s: %w", userID, err)
		}
		var c domain.Category
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("ListCategories: decode %s: %w", doc.Ref.ID, err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// DeleteCategory removes one category document from the user's subcollection.
// A missing document is ErrNotFound rather than a silent no-op.
func (s *Store) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	ref := s.userDoc(userID).Collection(categoryCollection).Doc(categoryID)

	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("DeleteCategory: category %s: %w", categoryID, ErrNotFound)
		}
		return fmt.Errorf("DeleteCategory: category %s: %w", categoryID, err)
	}
	if !snap.Exists() {
		return fmt.Errorf("DeleteCategory: category %s: %w", categoryID, ErrNotFound)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("DeleteCategory: category %s: %w", categoryID, err)
	}
	return nil
}

// deleteAllCategories clears the user's Category subcollection.
func (s *Store) deleteAllCategories(ctx context.Context, userID string) error {
	it := s.userDoc(userID).Collection(categoryCollection).Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("deleteAllCategories: user %s: %w", userID, err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("deleteAllCategories: %s: %w", doc.Ref.ID, err)
		}
	}
	return nil
}
