// Package handlers exposes the HTTP endpoints for user CRUD and receipt
// processing.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/simplitrac/backend/internal/api/middleware"
	"github.com/simplitrac/backend/internal/domain"
	"github.com/simplitrac/backend/internal/service"
)

var validate = validator.New()

// userPayload is the allow-listed request body for user create and update.
// Unknown fields are dropped rather than rejected.
type userPayload struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email" validate:"omitempty,email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	CreatedAt *time.Time `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
	Admin     bool       `json:"admin"`

	Transactions []transactionPayload `json:"transactions"`
	Categories   []categoryPayload    `json:"categories"`
}

type transactionPayload struct {
	TransactionID   string     `json:"transaction_id"`
	CreatedAt       *time.Time `json:"created_at"`
	TransactionDate *time.Time `json:"transaction_date"`
	Amount          float64    `json:"amount"`
	Vendor          string     `json:"vendor"`
	CategoryName    string     `json:"category_name"`
	CategoryID      string     `json:"category_id"`
	PictureID       string     `json:"picture_id"`
	IsSuccessful    bool       `json:"is_successful"`
	Recheck         *bool      `json:"recheck"`
}

type categoryPayload struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
}

func (p *userPayload) toDomain() *domain.User {
	u := &domain.User{
		UserID:    p.UserID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CreatedAt: p.CreatedAt,
		LastLogin: p.LastLogin,
		Admin:     p.Admin,
	}
	for _, t := range p.Transactions {
		u.Transactions = append(u.Transactions, domain.Transaction{
			TransactionID:   t.TransactionID,
			CreatedAt:       t.CreatedAt,
			TransactionDate: t.TransactionDate,
			Amount:          t.Amount,
			Vendor:          t.Vendor,
			CategoryName:    t.CategoryName,
			CategoryID:      t.CategoryID,
			PictureID:       t.PictureID,
			IsSuccessful:    t.IsSuccessful,
			Recheck:         t.Recheck,
		})
	}
	for _, c := range p.Categories {
		u.Categories = append(u.Categories, domain.Category{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
		})
	}
	return u
}

// UsersHandler handles user CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
	log   zerolog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(users *service.UserService, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log}
}

// CreateUser handles POST /user/create
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	outcome := h.users.CreateUser(r.Context(), payload.toDomain())
	writeOutcome(w, outcome)
}

// GetUser handles GET /user/get?user_id=
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	outcome := h.users.GetUser(r.Context(), userID)
	writeOutcome(w, outcome)
}

// UpdateUser handles PUT /user/update?user_id=
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.UserID != "" && payload.UserID != userID {
		middleware.WriteError(w, http.StatusBadRequest, "Param user_id and the user_id in the body do not match")
		return
	}
	if err := validate.Struct(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	payload.UserID = userID
	outcome := h.users.UpdateUser(r.Context(), userID, payload.toDomain())
	writeOutcome(w, outcome)
}

// DeleteUser handles DELETE /user/delete?user_id=
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	outcome := h.users.DeleteUser(r.Context(), userID)
	writeOutcome(w, outcome)
}

// DeleteAllTransactions handles DELETE /transactions/delete
func (h *UsersHandler) DeleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	outcome := h.users.DeleteAllTransactions(r.Context(), req.UserID)
	writeOutcome(w, outcome)
}

// DeleteCategory handles DELETE /category/delete
func (h *UsersHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     string `json:"user_id"`
		CategoryID string `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.CategoryID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id and category_id are required")
		return
	}

	outcome := h.users.DeleteCategory(r.Context(), req.UserID, req.CategoryID)
	writeOutcome(w, outcome)
}

// Healthz handles GET /healthz
func Healthz(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeOutcome maps a service outcome to the wire: 200 with the payload on
// success, 400 with `{"error": message}` otherwise.
func writeOutcome(w http.ResponseWriter, o domain.Outcome) {
	if !o.Successful() {
		middleware.WriteError(w, http.StatusBadRequest, o.ErrorMessage())
		return
	}
	middleware.WriteJSON(w, http.StatusOK, o.Payload)
}
