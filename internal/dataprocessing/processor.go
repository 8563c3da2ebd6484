package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"entsocli/internal/infrastructure"
	"entsocli/pkg/contracts/domain"
)

// Result is the output of one pipeline run. Rows are in document order;
// Raw keeps the original XML for export and debug collaborators that
// re-render it independently.
type Result struct {
	Publication *domain.Publication
	Rows        []domain.Row
	Raw         []byte
}

// Processor runs the full decode → extract → reconstruct → normalize
// pipeline. It holds only immutable configuration and may be shared
// across goroutines, one document per call.
type Processor struct {
	reconstructor *Reconstructor
	normalizer    *Normalizer
	logger        *slog.Logger
}

// NewProcessor builds a Processor rendering display fields in loc and
// falling back to defaultResolutionMinutes for unknown resolution codes.
func NewProcessor(loc *time.Location, defaultResolutionMinutes int, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		reconstructor: NewReconstructor(defaultResolutionMinutes, logger),
		normalizer:    NewNormalizer(loc),
		logger:        logger,
	}
}

// Process transforms one raw XML document into rows. Structural decode
// failures abort the document and propagate; every other anomaly (empty
// branches, missing metadata, unparseable period starts) is absorbed with
// sentinel values so batch callers can keep going.
func (p *Processor) Process(ctx context.Context, raw []byte) (*Result, error) {
	pub, err := Decode(raw)
	if err != nil {
		infrastructure.DocumentsFailed.Inc()
		return nil, err
	}

	rows := make([]domain.Row, 0, pub.PointCount())
	for t := range Triples(pub) {
		instant := p.reconstructor.PointTime(t.Period.Start, t.Point.Position, t.Period.Resolution)
		if instant == nil {
			p.logger.WarnContext(ctx, "period start unavailable, emitting row with display sentinels",
				slog.String("document_id", pub.DocumentID),
				slog.Int("position", t.Point.Position))
		}
		rows = append(rows, p.normalizer.Row(pub, t, instant))
	}

	docType := string(pub.DocumentType)
	infrastructure.DocumentsProcessed.WithLabelValues(docType).Inc()
	infrastructure.RowsEmitted.WithLabelValues(docType).Add(float64(len(rows)))

	p.logger.InfoContext(ctx, "document normalized",
		slog.String("document_type", docType),
		slog.String("document_id", pub.DocumentID),
		slog.Int("series", len(pub.Series)),
		slog.Int("rows", len(rows)))

	return &Result{Publication: pub, Rows: rows, Raw: raw}, nil
}
