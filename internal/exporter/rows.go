package exporter

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"entsocli/internal/config"
	"entsocli/pkg/contracts/domain"
)

// rowHeaders is the full-width column set presentation consumers expect.
// Column presence is stable across document types; price stays empty for
// non-price documents.
var rowHeaders = []string{
	"timestamp", "date", "time", "position",
	"document_type", "document_id", "business_type", "curve_type",
	"in_domain", "out_domain", "resource_provider", "resource_type",
	"price", "currency", "price_unit", "quantity", "quantity_unit",
}

// RowExporter writes normalized rows as CSV tables.
type RowExporter struct {
	csvWriter *CSVWriter
}

// NewRowExporter creates a row exporter writing under the given paths.
func NewRowExporter(paths *config.Paths) *RowExporter {
	return &RowExporter{csvWriter: NewCSVWriter(paths)}
}

// ExportRows writes the full row table to a CSV file.
func (e *RowExporter) ExportRows(rows []domain.Row, filePath string) error {
	records := lo.Map(rows, func(row domain.Row, _ int) []string {
		return rowToRecord(row)
	})

	if err := e.csvWriter.WriteSimpleCSV(filePath, rowHeaders, records); err != nil {
		return fmt.Errorf("failed to export rows: %w", err)
	}
	return nil
}

func rowToRecord(row domain.Row) []string {
	return []string{
		formatTimestamp(row.Timestamp),
		row.Date,
		row.Time,
		strconv.Itoa(row.Position),
		string(row.DocumentType),
		row.DocumentID,
		row.BusinessType,
		row.CurveType,
		row.InDomain,
		row.OutDomain,
		row.ResourceProvider,
		formatOptional(row.ResourceType),
		formatPrice(row.Price),
		row.CurrencyUnit,
		row.PriceUnit,
		formatQuantity(row.Quantity),
		row.QuantityUnit,
	}
}
