package domain

import (
	"time"
)

// DocumentType identifies which of the known market-document schemas a
// publication was decoded from.
type DocumentType string

const (
	DocumentTypePrice          DocumentType = "price"
	DocumentTypeLoad           DocumentType = "load"
	DocumentTypeUnavailability DocumentType = "unavailability"
	DocumentTypeBalancing      DocumentType = "balancing"
)

// Unknown is the sentinel used for textual metadata fields that are absent
// from the source document. It is a valid value, not an error marker:
// downstream consumers render it as-is.
const Unknown = "Unknown"

// Publication is the normalized form of one decoded market document,
// regardless of which root schema it arrived in.
type Publication struct {
	DocumentType DocumentType `json:"document_type"`
	DocumentID   string       `json:"document_id"`
	CreatedAt    *time.Time   `json:"created_at,omitempty"`
	Series       []Series     `json:"series"`
}

// Series is one time-ordered data stream within a publication, for example
// one bidding zone's day-ahead prices or one production type's output.
type Series struct {
	BusinessType     string   `json:"business_type"`
	CurveType        string   `json:"curve_type"`
	InDomain         string   `json:"in_domain"`
	OutDomain        string   `json:"out_domain"`
	PriceUnit        string   `json:"price_unit"`
	CurrencyUnit     string   `json:"currency_unit"`
	QuantityUnit     string   `json:"quantity_unit"`
	ResourceProvider string   `json:"resource_provider"`
	ResourceType     *string  `json:"resource_type,omitempty"`
	Periods          []Period `json:"periods"`
}

// Period is a contiguous span within a series sharing one resolution.
// Start is nil when the source interval was missing or unparseable; the
// period's points are still emitted, with display sentinels.
type Period struct {
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Resolution string     `json:"resolution"`
	Points     []Point    `json:"points"`
}

// Point is one sampled value at a 1-based position offset within a period.
// Quantity defaults to zero when absent; Price stays nil for documents that
// carry no price, since zero is a legitimate price.
type Point struct {
	Position int      `json:"position"`
	Quantity float64  `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// PointCount returns the total number of points across all series and
// periods. It equals the number of rows the pipeline emits for this
// publication.
func (p *Publication) PointCount() int {
	n := 0
	for _, s := range p.Series {
		for _, per := range s.Periods {
			n += len(per.Points)
		}
	}
	return n
}
