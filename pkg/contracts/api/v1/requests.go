// Package api contains API contract definitions for the normalization
// service. Version v1 represents the current stable API version.
package api

import (
	"entsocli/pkg/contracts/domain"
)

// RowsRequest are the query parameters for the rows endpoint: one
// document type, one bidding zone, one day.
type RowsRequest struct {
	DocumentType string `json:"document_type" query:"document_type" validate:"required,oneof=A44 A65 A77 A86"`
	ProcessType  string `json:"process_type" query:"process_type" validate:"omitempty,alphanum"`
	Domain       string `json:"domain" query:"domain" validate:"required,min=2,max=18"`
	Date         string `json:"date" query:"date" validate:"required,datetime=2006-01-02"`
}

// RowsResponse is the rows endpoint payload.
type RowsResponse struct {
	DocumentType domain.DocumentType `json:"document_type"`
	DocumentID   string              `json:"document_id"`
	RowCount     int                 `json:"row_count"`
	Rows         []domain.Row        `json:"rows"`
}

// ParseResponse is the payload for the parse endpoint, which normalizes a
// caller-supplied document body.
type ParseResponse struct {
	DocumentType domain.DocumentType `json:"document_type"`
	DocumentID   string              `json:"document_id"`
	RowCount     int                 `json:"row_count"`
	Rows         []domain.Row        `json:"rows"`
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
