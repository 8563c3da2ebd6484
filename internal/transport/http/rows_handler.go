package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"entsocli/internal/dataprocessing"
	apperrors "entsocli/internal/errors"
	"entsocli/internal/infrastructure"
	"entsocli/internal/transport/entsoe"
	"entsocli/pkg/contracts"
	apiv1 "entsocli/pkg/contracts/api/v1"
	"entsocli/pkg/contracts/domain"
)

// maxParseBody bounds the parse endpoint's request body; a month of
// 15-minute points is well under this.
const maxParseBody = 32 << 20

// DocumentFetcher is the upstream collaborator the rows endpoint uses.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, req entsoe.FetchRequest) ([]byte, error)
}

// RowsHandler serves the normalization endpoints. Request-scoped loggers
// are derived from the request context so every line carries the trace ID.
type RowsHandler struct {
	fetcher   DocumentFetcher
	processor *dataprocessing.Processor
	validate  *validator.Validate
}

// NewRowsHandler creates the handler around its collaborators.
func NewRowsHandler(fetcher DocumentFetcher, processor *dataprocessing.Processor) *RowsHandler {
	return &RowsHandler{
		fetcher:   fetcher,
		processor: processor,
		validate:  validator.New(),
	}
}

// logger derives the request-scoped logger for this handler.
func (h *RowsHandler) logger(ctx context.Context) *slog.Logger {
	return infrastructure.WithComponent(infrastructure.LoggerWithContext(ctx), "rows_handler")
}

// Health reports service liveness.
func (h *RowsHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, apiv1.HealthResponse{
		Status:  "healthy",
		Version: contracts.Version,
	})
}

// Version reports detailed build and format version information.
func (h *RowsHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}

// Parse normalizes a caller-supplied document body.
func (h *RowsHandler) Parse(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxParseBody))
	if err != nil {
		apperrors.WriteError(w, apperrors.ErrInvalidRequest)
		return
	}

	result, err := h.processor.Process(r.Context(), raw)
	if err != nil {
		if apperrors.IsStructural(err) {
			apperrors.WriteError(w, apperrors.DecodeFailedWithError(err))
			return
		}
		infrastructure.WithError(h.logger(r.Context()), err).ErrorContext(r.Context(), "parse failed")
		apperrors.WriteError(w, apperrors.ErrInternalServer)
		return
	}

	render.JSON(w, r, apiv1.ParseResponse{
		DocumentType: result.Publication.DocumentType,
		DocumentID:   result.Publication.DocumentID,
		RowCount:     len(result.Rows),
		Rows:         result.Rows,
	})
}

// Rows fetches one day's publication and returns its normalized rows,
// sorted by reconstructed timestamp.
func (h *RowsHandler) Rows(w http.ResponseWriter, r *http.Request) {
	req := apiv1.RowsRequest{
		DocumentType: r.URL.Query().Get("document_type"),
		ProcessType:  r.URL.Query().Get("process_type"),
		Domain:       r.URL.Query().Get("domain"),
		Date:         r.URL.Query().Get("date"),
	}

	if err := h.validate.Struct(req); err != nil {
		apperrors.WriteError(w, apperrors.ValidationFailedWithError(err))
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		apperrors.WriteError(w, apperrors.ValidationFailedWithError(err))
		return
	}

	raw, err := h.fetcher.FetchDocument(r.Context(), entsoe.FetchRequest{
		DocumentType: req.DocumentType,
		ProcessType:  req.ProcessType,
		InDomain:     req.Domain,
		OutDomain:    req.Domain,
		PeriodStart:  day,
		PeriodEnd:    day.AddDate(0, 0, 1),
	})
	if err != nil {
		infrastructure.WithError(h.logger(r.Context()), err).ErrorContext(r.Context(), "upstream fetch failed")
		apperrors.WriteError(w, apperrors.UpstreamWithError(err))
		return
	}

	result, err := h.processor.Process(r.Context(), raw)
	if err != nil {
		if apperrors.IsStructural(err) {
			apperrors.WriteError(w, apperrors.DecodeFailedWithError(err))
			return
		}
		infrastructure.WithError(h.logger(r.Context()), err).ErrorContext(r.Context(), "processing failed")
		apperrors.WriteError(w, apperrors.ErrInternalServer)
		return
	}

	domain.SortRows(result.Rows)

	render.JSON(w, r, apiv1.RowsResponse{
		DocumentType: result.Publication.DocumentType,
		DocumentID:   result.Publication.DocumentID,
		RowCount:     len(result.Rows),
		Rows:         result.Rows,
	})
}
