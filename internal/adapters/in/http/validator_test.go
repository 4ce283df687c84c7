package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	api "storefront/internal/adapters/in/http"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	doc, err := api.LoadOpenAPI()
	require.NoError(t, err)
	validator, err := api.RequestValidator(doc)
	require.NoError(t, err)

	e := echo.New()
	e.Any("/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "reached")
	}, validator)
	return e
}

func TestRequestValidator_RouteLookup(t *testing.T) {
	e := newValidatedEcho(t)

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
		wantBody string
	}{
		{name: "undocumented path passes through", method: http.MethodGet, target: "/api/v1/vehicles", wantCode: http.StatusOK, wantBody: "reached"},
		{name: "documented path with wrong method", method: http.MethodDelete, target: "/api/v1/orders", wantCode: http.StatusMethodNotAllowed},
		{name: "documented request", method: http.MethodGet, target: "/api/v1/products/low-stock", wantCode: http.StatusOK, wantBody: "reached"},
		{name: "invalid query parameter", method: http.MethodGet, target: "/api/v1/orders?status=shipped", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			} else {
				assert.NotContains(t, rec.Body.String(), "reached")
			}
		})
	}
}
