package dataprocessing

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	apperrors "entsocli/internal/errors"
	"entsocli/pkg/contracts/domain"
)

// documentRoots is the allow-list of recognized root elements. Anything
// else is a structural decode failure.
var documentRoots = map[string]domain.DocumentType{
	"Publication_MarketDocument":    domain.DocumentTypePrice,
	"GL_MarketDocument":             domain.DocumentTypeLoad,
	"Unavailability_MarketDocument": domain.DocumentTypeUnavailability,
	"Balancing_MarketDocument":      domain.DocumentTypeBalancing,
}

// Interval starts come with and without seconds depending on the
// publishing system; createdDateTime always carries seconds.
var instantLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Decode parses raw XML into a normalized Publication, dispatching on the
// root element name. Unknown or missing roots fail with
// errors.ErrUnknownDocumentRoot; unknown child elements are ignored and
// missing textual metadata defaults to domain.Unknown.
func Decode(raw []byte) (*domain.Publication, error) {
	root, err := rootName(raw)
	if err != nil {
		return nil, apperrors.UnknownRootError("")
	}

	docType, ok := documentRoots[root]
	if !ok {
		return nil, apperrors.UnknownRootError(root)
	}

	var doc marketDocumentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", root, err)
	}

	pub := &domain.Publication{
		DocumentType: docType,
		DocumentID:   defaultUnknown(doc.MRID),
		CreatedAt:    parseInstant(doc.CreatedDateTime),
		Series:       extractSeries(doc.TimeSeries),
	}
	return pub, nil
}

// rootName scans the document for its first start element.
func rootName(raw []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// parseInstant parses a platform timestamp, trying the known layouts.
// Returns nil when the value is absent or matches none of them; the
// caller decides whether that is an anomaly worth a sentinel.
func parseInstant(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	slog.Warn("unparseable instant in document", slog.String("value", value))
	return nil
}

// defaultUnknown applies the permissive-parsing policy for textual
// metadata: absent values become the "Unknown" sentinel, which downstream
// consumers treat as a valid value.
func defaultUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return domain.Unknown
	}
	return strings.TrimSpace(value)
}
