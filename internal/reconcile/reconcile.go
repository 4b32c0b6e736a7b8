// Package reconcile maps free-text category names onto canonical category
// ids. Reconciliation is a pure computation over its inputs plus one
// read-only lookup per unresolved category; it never writes anything.
package reconcile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simplitrac/backend/internal/domain"
)

// CategoryLookup is the read-only port into the category store. FindCategoryIDsByName
// returns the distinct category ids whose normalized name equals the
// normalized name given, scoped to one user's Category subcollection.
type CategoryLookup interface {
	FindCategoryIDsByName(ctx context.Context, userID, categoryName string) ([]string, error)
}

// AmbiguousCategoryError reports that the store already holds more than one
// id for the same normalized category name. The whole reconcile+save
// operation must abort; picking one silently would hide corrupt data.
type AmbiguousCategoryError struct {
	CategoryName string
	Count        int
}

func (e *AmbiguousCategoryError) Error() string {
	return fmt.Sprintf("category %q resolves to %d distinct ids, expected at most one", e.CategoryName, e.Count)
}

// Categories resolves or mints an id for every category in cats that lacks
// one. Zero existing ids mints a fresh one, exactly one reuses it, and more
// than one aborts with AmbiguousCategoryError. The slice is modified in
// place.
func Categories(ctx context.Context, lookup CategoryLookup, userID string, cats []domain.Category) error {
	resolved := make(map[string]string, len(cats))
	for _, c := range cats {
		if c.CategoryID != "" {
			resolved[c.Key()] = c.CategoryID
		}
	}

	for i := range cats {
		if cats[i].CategoryID != "" {
			continue
		}

		// A category with the same normalized name was already resolved in
		// this batch; reuse its id rather than minting a duplicate.
		if id, ok := resolved[cats[i].Key()]; ok {
			cats[i].CategoryID = id
			continue
		}

		ids, err := lookup.FindCategoryIDsByName(ctx, userID, cats[i].CategoryName)
		if err != nil {
			return fmt.Errorf("reconcile category %q: %w", cats[i].CategoryName, err)
		}

		distinct := distinctIDs(ids)
		switch len(distinct) {
		case 0:
			cats[i].CategoryID = uuid.NewString()
		case 1:
			cats[i].CategoryID = distinct[0]
		default:
			return &AmbiguousCategoryError{
				CategoryName: cats[i].CategoryName,
				Count:        len(distinct),
			}
		}
		resolved[cats[i].Key()] = cats[i].CategoryID
	}
	return nil
}

// Transactions fills CategoryID on every transaction lacking one, using the
// resolved categories' name→id table keyed by normalized name. A transaction
// whose category name has no resolved category keeps an empty CategoryID;
// that is detectable by the caller but not an error here.
func Transactions(txs []domain.Transaction, cats []domain.Category) {
	byKey := make(map[string]string, len(cats))
	for _, c := range cats {
		if c.CategoryID != "" {
			byKey[c.Key()] = c.CategoryID
		}
	}

	for i := range txs {
		if txs[i].CategoryID != "" || txs[i].CategoryName == "" {
			continue
		}
		if id, ok := byKey[domain.CategoryKey(txs[i].CategoryName)]; ok {
			txs[i].CategoryID = id
		}
	}
}

// User reconciles a whole user: categories first, then the transaction
// references. On an ambiguity error nothing is modified beyond the already
// scanned category slice entries, and the caller must not persist.
func User(ctx context.Context, lookup CategoryLookup, u *domain.User) error {
	if err := Categories(ctx, lookup, u.UserID, u.Categories); err != nil {
		return err
	}
	Transactions(u.Transactions, u.Categories)
	return nil
}

func distinctIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
