package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"entsocli/pkg/contracts/domain"
)

func TestPriceWorkbookExport(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	exporter := NewPriceWorkbookExporter(loc, nil)

	ts1 := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)
	ts2 := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)
	rows := []domain.PriceRow{
		{Timestamp: &ts1, Price: 42.17, Currency: "EUR", PriceUnit: "MWH"},
		{Timestamp: &ts2, Price: 0, Currency: "EUR", PriceUnit: "MWH"},
		{Timestamp: nil, Price: 12.5, Currency: "EUR", PriceUnit: "MWH"},
	}

	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, exporter.Export(rows, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(priceSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Timestamp", header)

	// Native cell types: the price cell holds a number, not a string.
	cellType, err := f.GetCellType(priceSheetName, "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType)

	price, err := f.GetCellValue(priceSheetName, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "42.17", price)

	// The timestamp renders in the local display convention: 22:00Z on
	// 1 June is midnight on 2 June in CEST.
	rendered, err := f.GetCellValue(priceSheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02 00:00", rendered)

	// Missing timestamps fall back to the display sentinel.
	sentinel, err := f.GetCellValue(priceSheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, domain.DisplaySentinel, sentinel)
}

func TestPriceWorkbookColumnsSized(t *testing.T) {
	exporter := NewPriceWorkbookExporter(time.UTC, nil)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.PriceRow{
		{Timestamp: &ts, Price: 1234567.89, Currency: "EUR", PriceUnit: "MWH"},
	}

	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, exporter.Export(rows, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Timestamp column must at least fit its rendered width.
	width, err := f.GetColWidth(priceSheetName, "A")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, width, 16.0)
}

func TestPriceProjection(t *testing.T) {
	price := 10.0
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.Row{
		{Price: &price, Timestamp: &ts, CurrencyUnit: "EUR", PriceUnit: "MWH"},
		{Price: nil, Timestamp: &ts},
	}

	projected := domain.PriceProjection(rows)
	require.Len(t, projected, 1)
	assert.Equal(t, 10.0, projected[0].Price)
	assert.Equal(t, "EUR", projected[0].Currency)
}
