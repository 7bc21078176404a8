package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/senyabanana/proposal-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	SendErrorResponse(rec, http.StatusConflict, "client is in use")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"reason": "client is in use"}, body)
}

func TestAsErrorResponse(t *testing.T) {
	wrapped := fmt.Errorf("save failed: %w", models.NotFound("proposal", "p1"))
	errorResponse, ok := AsErrorResponse(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errorResponse.StatusCode)

	_, ok = AsErrorResponse(fmt.Errorf("connection reset"))
	assert.False(t, ok)
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(models.TeamMemberRequest{Email: "nope"})
	require.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, "name is required, role is required, email must be a valid email", err.Error())

	err = ValidateStruct(models.TeamMemberRequest{Name: "Ana", Role: "PM", Roles: []models.UserRole{"Root"}})
	require.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "must be one of")

	assert.NoError(t, ValidateStruct(models.ClientRequest{CompanyName: "Acme", ContactName: "Eva"}))
}

func TestParseHours(t *testing.T) {
	hours, err := ParseHours("25")
	require.NoError(t, err)
	assert.Equal(t, 25, hours)

	_, err = ParseHours("")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = ParseHours("2.5")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestParseVersion(t *testing.T) {
	version, err := ParseVersion("3")
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	for _, s := range []string{"0", "-1", "v2"} {
		_, err := ParseVersion(s)
		assert.ErrorIs(t, err, models.ErrInvalidInput, s)
	}
}
