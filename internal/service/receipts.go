package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/simplitrac/backend/internal/classify"
	"github.com/simplitrac/backend/internal/imagefetch"
	infra "github.com/simplitrac/backend/internal/infra/firestore"
	"github.com/simplitrac/backend/internal/ocr"
	"github.com/simplitrac/backend/internal/receipt"
)

// ErrNoText reports that the OCR provider found no text in the image.
var ErrNoText = errors.New("no text detected in the image")

// ErrStore reports that the parsed receipt could not be persisted.
var ErrStore = errors.New("failed to store receipt data")

// ReceiptResult is the outcome of one receipt-processing run.
type ReceiptResult struct {
	ReceiptID      string                   `json:"receipt_id,omitempty"`
	Parsed         receipt.Parsed           `json:"parsed"`
	Classification *classify.Classification `json:"classification,omitempty"`
}

// ReceiptService runs the receipt-ingestion pipeline: image bytes → OCR →
// regex parsing → optional LLM classification → persistence.
type ReceiptService struct {
	extractor  ocr.TextExtractor
	classifier classify.Classifier
	fetcher    imagefetch.Fetcher
	receipts   infra.ReceiptRepository
	users      infra.UserRepository
	log        zerolog.Logger
}

// NewReceiptService creates a receipt service. classifier and fetcher may be
// nil, disabling LLM classification and gs:// sources respectively.
func NewReceiptService(
	extractor ocr.TextExtractor,
	classifier classify.Classifier,
	fetcher imagefetch.Fetcher,
	receipts infra.ReceiptRepository,
	users infra.UserRepository,
	log zerolog.Logger,
) *ReceiptService {
	return &ReceiptService{
		extractor:  extractor,
		classifier: classifier,
		fetcher:    fetcher,
		receipts:   receipts,
		users:      users,
		log:        log,
	}
}

// Process runs the pipeline over raw image bytes. userID is optional; when
// present, the user's stored category names are offered to the classifier
// alongside the built-in list.
func (s *ReceiptService) Process(ctx context.Context, image []byte, userID string) (*ReceiptResult, error) {
	text, err := s.extractor.DetectText(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("Process: ocr: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	result := &ReceiptResult{Parsed: receipt.Parse(text)}

	if s.classifier != nil {
		classification, err := s.classifier.Classify(ctx, text, s.userCategoryNames(ctx, userID))
		if err != nil {
			// Classification is best-effort; the regex fields still stand.
			s.log.Error().Err(err).Msg("Receipt classification failed")
		} else {
			result.Classification = classification
		}
	}

	receiptID, err := s.receipts.StoreReceipt(ctx, receiptDocument(userID, result))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStore, err)
	}
	result.ReceiptID = receiptID

	s.log.Info().
		Str("receipt_id", receiptID).
		Str("store_name", result.Parsed.StoreName).
		Str("total", result.Parsed.Total).
		Msg("Receipt processed")

	return result, nil
}

// ProcessFromURI fetches the image from a gs:// URI and runs Process.
func (s *ReceiptService) ProcessFromURI(ctx context.Context, gcsURI, userID string) (*ReceiptResult, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("ProcessFromURI: no image fetcher configured")
	}
	image, err := s.fetcher.Fetch(ctx, gcsURI)
	if err != nil {
		return nil, fmt.Errorf("ProcessFromURI: %w", err)
	}
	return s.Process(ctx, image, userID)
}

// userCategoryNames returns the user's stored category names, or nil when no
// user is given or the lookup fails (classification falls back to the
// built-in list).
func (s *ReceiptService) userCategoryNames(ctx context.Context, userID string) []string {
	if userID == "" || s.users == nil {
		return nil
	}
	cats, err := s.users.ListCategories(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Could not load user categories for classification")
		return nil
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.CategoryName)
	}
	return names
}

// receiptDocument flattens the result into the document stored in the
// receipts collection.
func receiptDocument(userID string, r *ReceiptResult) map[string]any {
	doc := map[string]any{
		"date":       r.Parsed.Date,
		"subtotal":   r.Parsed.Subtotal,
		"tax":        r.Parsed.Tax,
		"total":      r.Parsed.Total,
		"store_name": r.Parsed.StoreName,
		"items":      r.Parsed.Items,
	}
	if r.Parsed.TaxComputed {
		doc["tax_computed"] = true
	}
	if userID != "" {
		doc["user_id"] = userID
	}
	if c := r.Classification; c != nil {
		doc["vendor"] = c.Vendor
		doc["amount"] = c.Amount
		doc["category_name"] = c.Category
	}
	return doc
}
