package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blogadmin/internal/api/apierr"
	"github.com/mcoot/blogadmin/internal/model"
)

type failingLister struct{}

func (failingLister) ListCategories(context.Context) ([]*model.Category, error) {
	return nil, errors.New("server selection timeout")
}

func TestCategoriesStoreFailure(t *testing.T) {
	h := NewAnalyticsHandler(nil, failingLister{})

	rr := httptest.NewRecorder()
	h.Categories(rr, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, apierr.CodeStoreUnavailable, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "timeout")
}
