package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/simplitrac/backend/internal/api/middleware"
	"github.com/simplitrac/backend/internal/service"
)

// maxReceiptBytes caps uploaded receipt images at 10 MiB.
const maxReceiptBytes = 10 << 20

// ReceiptsHandler handles the receipt-processing endpoint.
type ReceiptsHandler struct {
	receipts *service.ReceiptService
	log      zerolog.Logger
}

// NewReceiptsHandler creates a new receipts handler.
func NewReceiptsHandler(receipts *service.ReceiptService, log zerolog.Logger) *ReceiptsHandler {
	return &ReceiptsHandler{receipts: receipts, log: log}
}

// ProcessReceipt handles POST /process-receipt. The image arrives either as
// a multipart `file` field, as a JSON body with base64 `image`, or as a JSON
// body with a `gcs_uri` pointing into Cloud Storage.
func (h *ReceiptsHandler) ProcessReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	image, gcsURI, userID, err := h.decodeRequest(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var result *service.ReceiptResult
	if gcsURI != "" {
		result, err = h.receipts.ProcessFromURI(ctx, gcsURI, userID)
	} else {
		result, err = h.receipts.Process(ctx, image, userID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoText):
			middleware.WriteError(w, http.StatusBadRequest, service.ErrNoText.Error())
		case errors.Is(err, service.ErrStore):
			h.log.Error().Err(err).Msg("Failed to store receipt")
			middleware.WriteError(w, http.StatusInternalServerError, service.ErrStore.Error())
		default:
			h.log.Error().Err(err).Msg("Receipt processing failed")
			middleware.WriteError(w, http.StatusInternalServerError, "Failed to process receipt")
		}
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// decodeRequest pulls the image bytes (or gs:// URI) and the optional
// user_id out of the request, accepting multipart and JSON bodies.
func (h *ReceiptsHandler) decodeRequest(r *http.Request) (image []byte, gcsURI, userID string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
			return nil, "", "", errors.New("Invalid multipart form")
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, "", "", errors.New("A file field is required")
		}
		defer file.Close()

		image, err = io.ReadAll(io.LimitReader(file, maxReceiptBytes))
		if err != nil {
			return nil, "", "", errors.New("Could not read the uploaded file")
		}
		return image, "", r.FormValue("user_id"), nil
	}

	var req struct {
		Image  string `json:"image"`
		GCSURI string `json:"gcs_uri"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxReceiptBytes)).Decode(&req); err != nil {
		return nil, "", "", errors.New("Invalid request body")
	}

	switch {
	case req.GCSURI != "":
		return nil, req.GCSURI, req.UserID, nil
	case req.Image != "":
		image, err = base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return nil, "", "", errors.New("image is not valid base64")
		}
		return image, "", req.UserID, nil
	default:
		return nil, "", "", errors.New("One of file, image or gcs_uri is required")
	}
}
