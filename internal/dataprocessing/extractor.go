package dataprocessing

import (
	"iter"
	"strings"

	"github.com/samber/lo"

	"entsocli/pkg/contracts/domain"
)

// extractSeries resolves each wire series into the normalized model.
// Nested unit/domain/provider objects may each be absent, in which case
// the field takes the Unknown sentinel. The resource type is the first
// entry of the PSR type list, or stays absent entirely — an absent list
// means "no resource type", not "unknown resource type".
func extractSeries(series []timeSeriesXML) []domain.Series {
	return lo.Map(series, func(ts timeSeriesXML, _ int) domain.Series {
		inDomain := ts.InDomain.Value
		if strings.TrimSpace(inDomain) == "" {
			// Load documents label their area as an out-bidding zone
			// instead of an in-domain.
			inDomain = ts.OutBiddingZone.Value
		}

		s := domain.Series{
			BusinessType:     defaultUnknown(ts.BusinessType),
			CurveType:        defaultUnknown(ts.CurveType),
			InDomain:         defaultUnknown(inDomain),
			OutDomain:        defaultUnknown(ts.OutDomain.Value),
			PriceUnit:        defaultUnknown(ts.PriceUnit),
			CurrencyUnit:     defaultUnknown(ts.CurrencyUnit),
			QuantityUnit:     defaultUnknown(ts.QuantityUnit),
			ResourceProvider: defaultUnknown(ts.RegisteredResource.Value),
			Periods:          lo.Map(ts.Periods, extractPeriod),
		}

		if len(ts.PSRTypes) > 0 && strings.TrimSpace(ts.PSRTypes[0].PSRType) != "" {
			psr := strings.TrimSpace(ts.PSRTypes[0].PSRType)
			s.ResourceType = &psr
		}
		return s
	})
}

func extractPeriod(p periodXML, _ int) domain.Period {
	return domain.Period{
		Start:      parseInstant(p.TimeInterval.Start),
		End:        parseInstant(p.TimeInterval.End),
		Resolution: strings.TrimSpace(p.Resolution),
		Points: lo.Map(p.Points, func(pt pointXML, _ int) domain.Point {
			return domain.Point{
				Position: pt.Position,
				Quantity: pt.Quantity,
				Price:    pt.Price,
			}
		}),
	}
}

// Triple is one point together with the series and period context it was
// found under.
type Triple struct {
	Series *domain.Series
	Period *domain.Period
	Point  domain.Point
}

// Triples walks a publication lazily in document order: series order, then
// period order within each series, then point order within each period.
// Series and periods with no children contribute nothing. The walk is a
// pure read; the publication is never mutated.
func Triples(pub *domain.Publication) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		for i := range pub.Series {
			s := &pub.Series[i]
			for j := range s.Periods {
				p := &s.Periods[j]
				for _, pt := range p.Points {
					if !yield(Triple{Series: s, Period: p, Point: pt}) {
						return
					}
				}
			}
		}
	}
}
