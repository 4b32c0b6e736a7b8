package firestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StoreReceipt writes one parsed receipt document into the receipts
// collection and returns the new document id.
func (s *Store) StoreReceipt(ctx context.Context, data map[string]any) (string, error) {
	receiptID := uuid.NewString()

	doc := make(map[string]any, len(data)+2)
	for k, v := range data {
		doc[k] = v
	}
	doc["receipt_id"] = receiptID
	doc["stored_at"] = time.Now().UTC()

	if _, err := s.client.Collection(receiptCollection).Doc(receiptID).Set(ctx, doc); err != nil {
		return "", fmt.Errorf("StoreReceipt: %w", err)
	}
	return receiptID, nil
}
