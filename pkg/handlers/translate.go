package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sqlbridge/engine/pkg/logging"
	"github.com/sqlbridge/engine/pkg/models"
	"github.com/sqlbridge/engine/pkg/schema"
)

// Translator is the slice of the translation service this handler needs.
type Translator interface {
	Translate(ctx context.Context, question, schemaDocument string) models.TranslationResult
}

// SchemaSource builds the DBML schema document for an allow-listed set of
// tables.
type SchemaSource interface {
	BuildDocument(ctx context.Context, tables []string) (string, error)
}

// TranslateRequest is the request body for POST /api/translate.
type TranslateRequest struct {
	Question string `json:"question"`
}

// TranslateHandler serves natural-language-to-SQL translation requests.
// The schema document is derived fresh per request so catalog changes are
// picked up without a restart.
type TranslateHandler struct {
	svc     Translator
	schemas SchemaSource
	tables  []string
	logger  *zap.Logger
}

// NewTranslateHandler creates a TranslateHandler.
func NewTranslateHandler(svc Translator, schemas SchemaSource, tables []string, logger *zap.Logger) *TranslateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranslateHandler{svc: svc, schemas: schemas, tables: tables, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *TranslateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/translate", h.Translate)
}

// Translate handles POST /api/translate requests.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With(zap.String("request_id", requestID))

	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body must be JSON with a question field")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "question is required")
		return
	}

	schemaDoc, err := h.schemas.BuildDocument(r.Context(), h.tables)
	if err != nil {
		if errors.Is(err, schema.ErrInvalidTableName) {
			// Allow-list misconfiguration, not a runtime condition.
			logger.Error("Table allow-list failed sanitization", zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "invalid_configuration", err.Error())
			return
		}
		// Driver errors can echo connection details; mask before they
		// reach logs or the client.
		sanitized := logging.SanitizeError(err)
		logger.Error("Catalog query failed", zap.String("error", sanitized))
		_ = ErrorResponse(w, http.StatusBadGateway, "catalog_unavailable", sanitized)
		return
	}
	if schemaDoc == "" {
		logger.Warn("No schema available for allow-listed tables",
			zap.Strings("tables", h.tables))
	}

	result := h.svc.Translate(r.Context(), req.Question, schemaDoc)

	logger.Info("Translation completed",
		zap.String("status", result.Status),
		zap.Int("question_len", len(req.Question)))

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		logger.Error("Failed to encode translation response", zap.Error(err))
	}
}
