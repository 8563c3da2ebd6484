package exporter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"entsocli/pkg/contracts/domain"
)

const priceSheetName = "Prices"

var priceHeaders = []string{"Timestamp", "Price", "Currency", "Price unit"}

// PriceWorkbookExporter writes the reduced price projection as an Excel
// workbook. Timestamps are written as native date cells and prices as
// native number cells so spreadsheet consumers can sort and aggregate
// without re-parsing strings.
type PriceWorkbookExporter struct {
	loc    *time.Location
	logger *slog.Logger
}

// NewPriceWorkbookExporter creates an exporter rendering date cells in loc.
func NewPriceWorkbookExporter(loc *time.Location, logger *slog.Logger) *PriceWorkbookExporter {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceWorkbookExporter{loc: loc, logger: logger}
}

// Export writes the price rows to an xlsx workbook at path.
func (e *PriceWorkbookExporter) Export(rows []domain.PriceRow, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), priceSheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	dateFormat := "yyyy-mm-dd hh:mm"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	priceFormat := "#,##0.00"
	priceStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &priceFormat})
	if err != nil {
		return fmt.Errorf("failed to create price style: %w", err)
	}

	for col, header := range priceHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(priceSheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(priceSheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, row := range rows {
		rowNum := i + 2

		tsCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if row.Timestamp != nil {
			// Excel cells carry no timezone; render the configured
			// local convention.
			if err := f.SetCellValue(priceSheetName, tsCell, row.Timestamp.In(e.loc)); err != nil {
				return fmt.Errorf("failed to write timestamp at row %d: %w", rowNum, err)
			}
			if err := f.SetCellStyle(priceSheetName, tsCell, tsCell, dateStyle); err != nil {
				return fmt.Errorf("failed to style timestamp at row %d: %w", rowNum, err)
			}
		} else {
			f.SetCellValue(priceSheetName, tsCell, domain.DisplaySentinel)
		}

		priceCell, _ := excelize.CoordinatesToCellName(2, rowNum)
		if err := f.SetCellValue(priceSheetName, priceCell, row.Price); err != nil {
			return fmt.Errorf("failed to write price at row %d: %w", rowNum, err)
		}
		if err := f.SetCellStyle(priceSheetName, priceCell, priceCell, priceStyle); err != nil {
			return fmt.Errorf("failed to style price at row %d: %w", rowNum, err)
		}

		currencyCell, _ := excelize.CoordinatesToCellName(3, rowNum)
		f.SetCellValue(priceSheetName, currencyCell, row.Currency)

		unitCell, _ := excelize.CoordinatesToCellName(4, rowNum)
		f.SetCellValue(priceSheetName, unitCell, row.PriceUnit)
	}

	if err := e.sizeColumns(f, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("price workbook written",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return nil
}

// sizeColumns widens each column to its longest rendered value so locale
// number grouping and full timestamps stay readable without manual resizing.
func (e *PriceWorkbookExporter) sizeColumns(f *excelize.File, rows []domain.PriceRow) error {
	widths := make([]float64, len(priceHeaders))
	for i, header := range priceHeaders {
		widths[i] = float64(len(header))
	}

	update := func(col int, value string) {
		if w := float64(len(value)); w > widths[col] {
			widths[col] = w
		}
	}

	for _, row := range rows {
		update(0, "0000-00-00 00:00")
		update(1, FormatGroupedNumber(row.Price))
		update(2, row.Currency)
		update(3, row.PriceUnit)
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column name: %w", err)
		}
		// Excel width units run slightly narrower than characters.
		if err := f.SetColWidth(priceSheetName, name, name, width+2); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}
	return nil
}
