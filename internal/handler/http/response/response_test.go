package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "emp-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestCreatedCarriesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Leave application submitted", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Leave application submitted", resp.Message)
}

func TestValidationErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"start_date": "start_date is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "start_date is required", resp.Error.Details["start_date"])
}

func TestErrorHelperStatusAndCode(t *testing.T) {
	tests := []struct {
		name     string
		helper   func(http.ResponseWriter, string)
		wantCode int
		wantTag  string
	}{
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", Forbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", NotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", Conflict, http.StatusConflict, "CONFLICT"},
		{"internal", InternalServerError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.helper(rec, "boom")

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantTag, resp.Error.Code)
			assert.Equal(t, "boom", resp.Error.Message)
		})
	}
}

func TestNewMetaRoundsPagesUp(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		totalItems int64
		wantPages  int
	}{
		{"exact fit", 10, 40, 4},
		{"partial last page", 10, 41, 5},
		{"empty listing", 10, 0, 0},
		{"zero limit", 0, 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(1, tt.limit, tt.totalItems)
			assert.Equal(t, tt.wantPages, m.TotalPages)
			assert.Equal(t, tt.totalItems, m.TotalItems)
		})
	}
}
