package firestore

import (
	"context"
	"fmt"

	"google.golang.org/api/iterator"

	"github.com/simplitrac/backend/internal/domain"
)

// SaveUser writes the user document, then each transaction and category as
// its own subcollection document. The writes are sequential and not wrapped
// in a Firestore transaction: a failure partway through leaves earlier
// writes in place. Callers re-run SaveUser to repair, since the operation
// is an idempotent upsert.
func (s *Store) SaveUser(ctx context.Context, u *domain.User) error {
	if u.UserID == "" {
		return fmt.Errorf("SaveUser: user id is required")
	}

	userRef := s.userDoc(u.UserID)
	if _, err := userRef.Set(ctx, u); err != nil {
		return fmt.Errorf("SaveUser: user document: %w", err)
	}

	txRef := userRef.Collection(transactionCollection)
	for i := range u.Transactions {
		tx := &u.Transactions[i]
		if tx.TransactionID == "" {
			continue
		}
		if _, err := txRef.Doc(tx.TransactionID).Set(ctx, tx); err != nil {
			return fmt.Errorf("SaveUser: transaction %s: %w", tx.TransactionID, err)
		}
	}

	catRef := userRef.Collection(categoryCollection)
	for i := range u.Categories {
		c := &u.Categories[i]
		if c.CategoryID == "" {
			continue
		}
		if _, err := catRef.Doc(c.CategoryID).Set(ctx, c); err != nil {
			return fmt.Errorf("SaveUser: category %s: %w", c.CategoryID, err)
		}
	}

	return nil
}

// FindUser locates a user by the user_id field. The three-way contract is
// explicit: zero matches is ErrNotFound, one match is returned with its
// subcollections, more than one is *AmbiguousError.
func (s *Store) FindUser(ctx context.Context, userID string) (*domain.User, error) {
	it := s.client.Collection(userCollection).Where("user_id", "==", userID).Documents(ctx)
	defer it.Stop()

	var users []*domain.User
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("FindUser: query: %w", err)
		}
		var u domain.User
		if err := doc.DataTo(&u); err != nil {
			return nil, fmt.Errorf("FindUser: decode %s: %w", doc.Ref.ID, err)
		}
		users = append(users, &u)
	}

	switch len(users) {
	case 0:
		return nil, fmt.Errorf("FindUser: user %s: %w", userID, ErrNotFound)
	case 1:
		u := users[0]
		if err := s.fetchSubcollections(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, &AmbiguousError{Entity: "user", ID: userID, Count: len(users)}
	}
}

// fetchSubcollections loads the Transaction and Category subcollections onto u.
func (s *Store) fetchSubcollections(ctx context.Context, u *domain.User) error {
	userRef := s.userDoc(u.UserID)

	u.Transactions = []domain.Transaction{}
	txIt := userRef.Collection(transactionCollection).Documents(ctx)
	defer txIt.Stop()
	for {
		doc, err := txIt.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("FindUser: transactions of %s: %w", u.UserID, err)
		}
		var tx domain.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return fmt.Errorf("FindUser: decode transaction %s: %w", doc.Ref.ID, err)
		}
		u.Transactions = append(u.Transactions, tx)
	}

	u.Categories = []domain.Category{}
	catIt := userRef.Collection(categoryCollection).Documents(ctx)
	defer catIt.Stop()
	for {
		doc, err := catIt.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("FindUser: categories of %s: %w", u.UserID, err)
		}
		var c domain.Category
		if err := doc.DataTo(&c); err != nil {
			return fmt.Errorf("FindUser: decode category %s: %w", doc.Ref.ID, err)
		}
		u.Categories = append(u.Categories, c)
	}

	return nil
}

// DeleteUser deletes the user document after cleaning both subcollections,
// so no orphaned subcollection documents remain under a deleted parent.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.FindUser(ctx, userID); err != nil {
		return err
	}

	if err := s.DeleteAllTransactions(ctx, userID); err != nil {
		return err
	}
	if err := s.deleteAllCategories(ctx, userID); err != nil {
		return err
	}

	if _, err := s.userDoc(userID).Delete(ctx); err != nil {
		return fmt.Errorf("DeleteUser: user %s: %w", userID, err)
	}
	return nil
}
