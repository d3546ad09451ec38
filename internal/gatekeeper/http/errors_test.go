package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vasudha-ag/gatekeeper/internal/gatekeeper/service"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) gatesdk.ErrorResponse {
	t.Helper()
	var body gatesdk.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWriteServiceErrorMasksInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("sql: driver exploded"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	require.False(t, body.OK)
	require.NotContains(t, body.Error, "sql")
}

func TestWriteServiceErrorPartialRegistrationMessageSurvives(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, service.ErrPartialRegistration)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	require.False(t, body.OK)
	require.Contains(t, body.Error, "contact an administrator")
}
