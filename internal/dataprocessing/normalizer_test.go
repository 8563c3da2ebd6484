package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entsocli/pkg/contracts/domain"
)

func berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	return loc
}

func sampleTriple() (*domain.Publication, Triple) {
	price := 42.17
	psr := "B16"
	s := &domain.Series{
		BusinessType:     "A62",
		CurveType:        "A01",
		InDomain:         "10YFI-1--------U",
		OutDomain:        "10YFI-1--------U",
		PriceUnit:        "MWH",
		CurrencyUnit:     "EUR",
		QuantityUnit:     domain.Unknown,
		ResourceProvider: domain.Unknown,
		ResourceType:     &psr,
	}
	pub := &domain.Publication{
		DocumentType: domain.DocumentTypePrice,
		DocumentID:   "doc-1",
	}
	return pub, Triple{
		Series: s,
		Period: &domain.Period{Resolution: "PT60M"},
		Point:  domain.Point{Position: 3, Quantity: 0, Price: &price},
	}
}

// Summer-time rendering: 22:00Z on 1 June is midnight local the next day
// in a UTC+2 zone.
func TestRowLocalDisplayAcrossMidnight(t *testing.T) {
	n := NewNormalizer(berlin(t))
	pub, triple := sampleTriple()
	instant := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)

	row := n.Row(pub, triple, &instant)

	assert.Equal(t, "2024-06-02", row.Date)
	assert.Equal(t, "00:00", row.Time)
	require.NotNil(t, row.Timestamp)
	assert.True(t, row.Timestamp.Equal(instant))
}

func TestRowWinterDisplay(t *testing.T) {
	n := NewNormalizer(berlin(t))
	pub, triple := sampleTriple()
	instant := time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC)

	row := n.Row(pub, triple, &instant)

	assert.Equal(t, "2024-01-15", row.Date)
	assert.Equal(t, "14:30", row.Time)
}

func TestRowDisplaySecondsZeroed(t *testing.T) {
	n := NewNormalizer(berlin(t))
	pub, triple := sampleTriple()
	instant := time.Date(2024, 1, 15, 13, 30, 59, 0, time.UTC)

	row := n.Row(pub, triple, &instant)

	assert.Equal(t, "14:30", row.Time)
	// The stored instant keeps its seconds; only display drops them.
	assert.Equal(t, 59, row.Timestamp.Second())
}

func TestRowCarriesSeriesMetadata(t *testing.T) {
	n := NewNormalizer(time.UTC)
	pub, triple := sampleTriple()
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	row := n.Row(pub, triple, &instant)

	assert.Equal(t, domain.DocumentTypePrice, row.DocumentType)
	assert.Equal(t, "doc-1", row.DocumentID)
	assert.Equal(t, "A62", row.BusinessType)
	assert.Equal(t, "EUR", row.CurrencyUnit)
	assert.Equal(t, "MWH", row.PriceUnit)
	require.NotNil(t, row.ResourceType)
	assert.Equal(t, "B16", *row.ResourceType)
	assert.Equal(t, 3, row.Position)
	require.NotNil(t, row.Price)
	assert.Equal(t, 42.17, *row.Price)
}

func TestRowSentinelsWhenInstantUnavailable(t *testing.T) {
	n := NewNormalizer(berlin(t))
	pub, triple := sampleTriple()

	row := n.Row(pub, triple, nil)

	assert.Equal(t, domain.DisplaySentinel, row.Date)
	assert.Equal(t, domain.DisplaySentinel, row.Time)
	assert.Nil(t, row.Timestamp)
	// The row is still a full record otherwise.
	assert.Equal(t, 3, row.Position)
	require.NotNil(t, row.Price)
}

func TestRowAbsentPriceStaysAbsent(t *testing.T) {
	n := NewNormalizer(time.UTC)
	pub, triple := sampleTriple()
	triple.Point.Price = nil
	triple.Point.Quantity = 0
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	row := n.Row(pub, triple, &instant)

	assert.Nil(t, row.Price)
	assert.False(t, row.HasPrice())
	assert.Equal(t, 0.0, row.Quantity)
}
