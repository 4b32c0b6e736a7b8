package firestore

import (
	"context"
	"fmt"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DeleteAllTransactions removes every document in the user's Transaction
// subcollection. Deletions are sequential; a failure leaves the remainder in
// place and the operation can simply be retried.
func (s *Store) DeleteAllTransactions(ctx context.Context, userID string) error {
	it := s.userDoc(userID).Collection(transactionCollection).Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("DeleteAllTransactions: user %s: %w", userID, err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("DeleteAllTransactions: %s: %w", doc.Ref.ID, err)
		}
	}
	return nil
}

// isNotFound reports whether err is a Firestore NotFound status.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
