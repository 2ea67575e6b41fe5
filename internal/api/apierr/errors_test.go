package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blogadmin/internal/services/analytics"
	"github.com/mcoot/blogadmin/internal/services/auth"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrInvalidSession, http.StatusUnauthorized},
		{auth.ErrStalePrincipal, http.StatusUnauthorized},
		{fmt.Errorf("%w: -3 days", analytics.ErrInvalidWindow), http.StatusBadRequest},
		{fmt.Errorf("%w: dial tcp", auth.ErrStoreUnavailable), http.StatusInternalServerError},
		{fmt.Errorf("%w: time series: boom", analytics.ErrStoreUnavailable), http.StatusInternalServerError},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{NewUnauthorizedError(), http.StatusUnauthorized},
		{errors.New("surprise"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		WriteError(rr, tc.err)
		assert.Equal(t, tc.status, rr.Code, tc.err.Error())
	}
}

func TestWriteErrorBody(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, fmt.Errorf("%w: connection reset", analytics.ErrStoreUnavailable))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, CodeStoreUnavailable, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection reset")
}
