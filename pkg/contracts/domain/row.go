package domain

import (
	"sort"
	"time"
)

// DisplaySentinel is rendered in the date/time columns when a row's
// timestamp could not be reconstructed.
const DisplaySentinel = "-"

// Row is the flat record handed to presentation and export collaborators.
// Timestamp is reconstructed from the period start, the point position and
// the period resolution; it is authoritative even when the source document
// carried its own per-point timestamp. A nil Timestamp means the period
// start was missing or unparseable — the row is still emitted, with
// DisplaySentinel in the display columns.
type Row struct {
	DocumentType     DocumentType `json:"document_type"`
	DocumentID       string       `json:"document_id"`
	BusinessType     string       `json:"business_type"`
	CurveType        string       `json:"curve_type"`
	InDomain         string       `json:"in_domain"`
	OutDomain        string       `json:"out_domain"`
	PriceUnit        string       `json:"price_unit"`
	CurrencyUnit     string       `json:"currency_unit"`
	QuantityUnit     string       `json:"quantity_unit"`
	ResourceProvider string       `json:"resource_provider"`
	ResourceType     *string      `json:"resource_type,omitempty"`
	Position         int          `json:"position" validate:"min=1"`
	Quantity         float64      `json:"quantity"`
	Price            *float64     `json:"price,omitempty"`
	Timestamp        *time.Time   `json:"timestamp,omitempty"`
	Date             string       `json:"date"`
	Time             string       `json:"time"`
}

// HasPrice reports whether the row carries a price value. A zero price
// still counts; only documents without a price element leave it nil.
func (r Row) HasPrice() bool {
	return r.Price != nil
}

// PriceRow is the reduced projection the spreadsheet exporter consumes for
// price documents. Timestamp and Price keep their native types so cells
// can be written as date and number cells rather than strings.
type PriceRow struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Price     float64    `json:"price"`
	Currency  string     `json:"currency"`
	PriceUnit string     `json:"price_unit"`
}

// PriceProjection reduces rows to the spreadsheet projection, keeping only
// rows that actually carry a price.
func PriceProjection(rows []Row) []PriceRow {
	out := make([]PriceRow, 0, len(rows))
	for _, r := range rows {
		if r.Price == nil {
			continue
		}
		out = append(out, PriceRow{
			Timestamp: r.Timestamp,
			Price:     *r.Price,
			Currency:  r.CurrencyUnit,
			PriceUnit: r.PriceUnit,
		})
	}
	return out
}

// SortRows orders rows by reconstructed timestamp, ascending. Rows without
// a timestamp sort before every timestamped row so they stay visible at a
// consistent end of the table. The sort is stable, preserving document
// order among equal keys.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := rows[i].Timestamp, rows[j].Timestamp
		switch {
		case ti == nil && tj == nil:
			return false
		case ti == nil:
			return true
		case tj == nil:
			return false
		default:
			return ti.Before(*tj)
		}
	})
}
