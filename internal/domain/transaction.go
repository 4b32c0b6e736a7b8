package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one financial transaction belonging to a user. Vendor and
// category name are stored normalized (trimmed, collapsed whitespace,
// lowercase). CategoryID may be empty at construction; reconciliation fills
// it from the owning user's categories before or during persistence.
type Transaction struct {
	TransactionID   string     `json:"transaction_id" firestore:"transaction_id"`
	CreatedAt       *time.Time `json:"created_at,omitempty" firestore:"created_at,omitempty"`
	TransactionDate *time.Time `json:"transaction_date,omitempty" firestore:"transaction_date,omitempty"`
	Amount          float64    `json:"amount" firestore:"amount"`
	Vendor          string     `json:"vendor" firestore:"vendor"`
	CategoryName    string     `json:"category_name" firestore:"category_name"`
	CategoryID      string     `json:"category_id,omitempty" firestore:"category_id"`
	PictureID       string     `json:"picture_id,omitempty" firestore:"picture_id"`
	IsSuccessful    bool       `json:"is_successful" firestore:"is_successful"`
	Recheck         *bool      `json:"recheck,omitempty" firestore:"recheck,omitempty"`
}

// Normalize applies the text-field normalization rules in place.
func (t *Transaction) Normalize() {
	t.Vendor = NormalizeLower(t.Vendor)
	t.CategoryName = NormalizeLower(t.CategoryName)
}

// EnsureID mints a fresh transaction id when one is not set.
func (t *Transaction) EnsureID() {
	if t.TransactionID == "" {
		t.TransactionID = uuid.NewString()
	}
}
