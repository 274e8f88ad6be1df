package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponse_IsMatchesByCode(t *testing.T) {
	detailed := ErrInvalidItems.WithDetails("request items %v", []string{"a"})

	assert.True(t, errors.Is(detailed, ErrInvalidItems))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", detailed), ErrInvalidItems))
	assert.False(t, errors.Is(detailed, ErrEmptyItems))
	assert.Contains(t, detailed.Error(), "request items [a]")
	assert.Equal(t, "items do not match stored items", ErrInvalidItems.Message)
}

func TestErrorResponse_StatusByKind(t *testing.T) {
	tests := []struct {
		err  *ErrorResponse
		kind ErrorKind
		want int
	}{
		{err: ErrEmptyItems, kind: KindValidation, want: http.StatusBadRequest},
		{err: ErrOperationNotAllowed, kind: KindUnsupported, want: http.StatusBadRequest},
		{err: ErrTenderNotFound, kind: KindNotFound, want: http.StatusNotFound},
		{err: ErrConcurrentModification, kind: KindConflict, want: http.StatusConflict},
		{err: ErrDatabase, kind: KindIncident, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.want, tt.err.StatusCode)
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	err := NewErrorResponse(http.StatusNotFound, "missing")

	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, ErrorCode("http.404"), err.Code)
	assert.Equal(t, KindIncident, NewErrorResponse(http.StatusBadGateway, "upstream").Kind)
}

func TestNewValidationAndIncidentError(t *testing.T) {
	validation := NewValidationError("tender.invalidTitle", "bad tender")
	assert.Equal(t, KindValidation, validation.Kind)
	assert.Equal(t, http.StatusBadRequest, validation.StatusCode)

	incident := NewIncidentError("storage.down", "storage unavailable")
	assert.Equal(t, KindIncident, incident.Kind)
	assert.Equal(t, http.StatusInternalServerError, incident.StatusCode)

	assert.Equal(t, KindValidation, ErrInvalidMainProcurementCategory.Kind)
	assert.Equal(t, KindIncident, ErrDataParse.Kind)
}
