package dataprocessing

import (
	"time"

	"entsocli/pkg/contracts/domain"
)

// Display layouts for the local date/time columns. The time layout has no
// seconds field, which is how sub-minute components of the reconstructed
// instant are forced to zero at display time.
const (
	displayDateLayout = "2006-01-02"
	displayTimeLayout = "15:04"
)

// Normalizer flattens point triples into rows. The target location is
// process-wide immutable display configuration, set once at construction.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns a Normalizer rendering display fields in loc.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// Row builds the flat output record for one point. The reconstructed
// instant is authoritative: it is stored as the row timestamp no matter
// what the source point carried. When it is unavailable the row is still
// emitted, with sentinel display fields and a nil timestamp that sorts
// before all real ones.
func (n *Normalizer) Row(pub *domain.Publication, t Triple, instant *time.Time) domain.Row {
	row := domain.Row{
		DocumentType:     pub.DocumentType,
		DocumentID:       pub.DocumentID,
		BusinessType:     t.Series.BusinessType,
		CurveType:        t.Series.CurveType,
		InDomain:         t.Series.InDomain,
		OutDomain:        t.Series.OutDomain,
		PriceUnit:        t.Series.PriceUnit,
		CurrencyUnit:     t.Series.CurrencyUnit,
		QuantityUnit:     t.Series.QuantityUnit,
		ResourceProvider: t.Series.ResourceProvider,
		ResourceType:     t.Series.ResourceType,
		Position:         t.Point.Position,
		Quantity:         t.Point.Quantity,
		Price:            t.Point.Price,
		Timestamp:        instant,
	}

	if instant == nil {
		row.Date = domain.DisplaySentinel
		row.Time = domain.DisplaySentinel
		return row
	}

	local := instant.In(n.loc)
	row.Date = local.Format(displayDateLayout)
	row.Time = local.Format(displayTimeLayout)
	return row
}
