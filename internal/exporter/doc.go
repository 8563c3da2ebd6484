// Package exporter writes normalized rows to the formats downstream
// consumers expect: full-width CSV tables and, for price documents, an
// Excel workbook whose cells keep native date and number types.
package exporter
