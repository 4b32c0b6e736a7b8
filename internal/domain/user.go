package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns Transactions and Categories as Firestore subcollections. The
// struct is built transiently from a request payload or a store read and is
// never cached across requests.
type User struct {
	UserID    string     `json:"user_id" firestore:"user_id"`
	Email     string     `json:"email,omitempty" firestore:"email"`
	FirstName string     `json:"first_name,omitempty" firestore:"first_name"`
	LastName  string     `json:"last_name,omitempty" firestore:"last_name"`
	CreatedAt *time.Time `json:"created_at,omitempty" firestore:"created_at,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty" firestore:"last_login,omitempty"`
	Admin     bool       `json:"admin" firestore:"admin"`

	Transactions []Transaction `json:"transactions" firestore:"-"`
	Categories   []Category    `json:"categories" firestore:"-"`
}

// Normalize applies text normalization to the user's transactions and
// categories.
func (u *User) Normalize() {
	for i := range u.Transactions {
		u.Transactions[i].Normalize()
	}
	for i := range u.Categories {
		u.Categories[i].Normalize()
	}
}

// EnsureID mints a user id when one is not set, and ids for subcollection
// members that lack them. Category ids are deliberately NOT minted here:
// reconciliation decides whether a category reuses an existing id.
func (u *User) EnsureID() {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	for i := range u.Transactions {
		u.Transactions[i].EnsureID()
	}
}

// AddTransaction appends a normalized copy of tx.
func (u *User) AddTransaction(tx Transaction) {
	tx.Normalize()
	u.Transactions = append(u.Transactions, tx)
}

// AddCategory appends a normalized copy of c.
func (u *User) AddCategory(c Category) {
	c.Normalize()
	u.Categories = append(u.Categories, c)
}
