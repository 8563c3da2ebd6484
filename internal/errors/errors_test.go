package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownRootError(t *testing.T) {
	err := UnknownRootError("Acknowledgement_MarketDocument")
	assert.True(t, errors.Is(err, ErrUnknownDocumentRoot))
	assert.Contains(t, err.Error(), "Acknowledgement_MarketDocument")

	err = UnknownRootError("")
	assert.True(t, errors.Is(err, ErrUnknownDocumentRoot))
	assert.Contains(t, err.Error(), "no root element")
}

func TestIsStructural(t *testing.T) {
	assert.True(t, IsStructural(UnknownRootError("html")))
	assert.True(t, IsStructural(fmt.Errorf("decode: %w", ErrUnknownDocumentRoot)))
	assert.False(t, IsStructural(errors.New("connection refused")))
	assert.False(t, IsStructural(nil))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrDecodeFailed)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DECODE_FAILED", resp.Error.ErrorCode)
}

func TestWithErrorHelpersCarryDetail(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	apiErr := UpstreamWithError(cause)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, cause.Error(), apiErr.Details)

	apiErr = DecodeFailedWithError(UnknownRootError("html"))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Details.(string), "html")
}
