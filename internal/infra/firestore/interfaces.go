// Package firestore is the persistence gateway. Users live in the "User"
// collection keyed by user_id, with "Transaction" and "Category"
// subcollections keyed by their members' own ids; parsed receipts live in a
// top-level "receipts" collection.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/simplitrac/backend/internal/domain"
)

const (
	userCollection        = "User"
	transactionCollection = "Transaction"
	categoryCollection    = "Category"
	receiptCollection     = "receipts"
)

// ErrNotFound reports a lookup that matched zero documents.
var ErrNotFound = errors.New("doesn't exist")

// AmbiguousError reports a uniqueness-query lookup that matched more than one
// document. Structurally impossible with unique keys, but handled rather
// than assumed away.
type AmbiguousError struct {
	Entity string
	ID     string
	Count  int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("more than one %s with id %s exists (%d found)", e.Entity, e.ID, e.Count)
}

// UserRepository provides the document-store operations for users and their
// subcollections.
type UserRepository interface {
	// SaveUser writes the user document and every transaction/category
	// subcollection member. Update is the same operation (idempotent
	// upsert); no diffing against stored state.
	SaveUser(ctx context.Context, u *domain.User) error

	// FindUser queries by user_id. Zero matches returns ErrNotFound, more
	// than one returns *AmbiguousError; the single match comes back with
	// both subcollections fetched.
	FindUser(ctx context.Context, userID string) (*domain.User, error)

	// DeleteUser removes the user document and cleans its subcollections.
	DeleteUser(ctx context.Context, userID string) error

	// DeleteAllTransactions removes every document in the user's
	// Transaction subcollection.
	DeleteAllTransactions(ctx context.Context, userID string) error

	// DeleteCategory removes one category document from the user's
	// Category subcollection.
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	// FindCategoryIDsByName returns the distinct category ids stored under
	// the user whose normalized name matches categoryName. Read-only; used
	// by reconciliation.
	FindCategoryIDsByName(ctx context.Context, userID, categoryName string) ([]string, error)

	// ListCategories returns every category in the user's subcollection.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// ReceiptRepository stores parsed receipt records.
type ReceiptRepository interface {
	// StoreReceipt writes one parsed receipt document and returns its id.
	StoreReceipt(ctx context.Context, data map[string]any) (string, error)
}

// Store is the Firestore-backed implementation of UserRepository and
// ReceiptRepository, holding one shared client for the process lifetime.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Store with a shared Firestore client.
func NewStore(ctx context.Context, projectID string, opts ...option.ClientOption) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewStore: creating firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *Store) userDoc(userID string) *firestore.DocumentRef {
	return s.client.Collection(userCollection).Doc(userID)
}
