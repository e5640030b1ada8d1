package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/deposit-calculator-go/internal/cache"
	"github.com/cloud-ru/deposit-calculator-go/internal/calculations"
	"github.com/cloud-ru/deposit-calculator-go/internal/catalog"
	"github.com/cloud-ru/deposit-calculator-go/internal/config"
	"github.com/cloud-ru/deposit-calculator-go/internal/logging"
	"github.com/cloud-ru/deposit-calculator-go/internal/tools"
)

func newTestRouter() http.Handler {
	deps := &tools.Deps{
		Config:  &config.Config{MaxPrincipal: 1e9, MaxAge: 120, MaxBalanceCap: 1e12},
		Tracer:  noop.NewTracerProvider().Tracer("test"),
		Catalog: catalog.Default(),
		Random:  calculations.FixedSource(0.5),
		Cache:   cache.NewMemoryCache(0, 0),
		Log:     logging.Discard(),
	}
	return New(tools.Registry(deps), logging.Discard()).Router()
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCalculateEndpoint(t *testing.T) {
	h := newTestRouter()

	w := post(t, h, "/calculate", `{
		"principal": "10000",
		"product_id": "standard-fixed",
		"tenor_months": 12,
		"age": 60,
		"convention": "simple"
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp tools.CalculationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4.3, resp.Result.EffectiveRatePercent)
	assert.Equal(t, 430.0, resp.Result.InterestEarned)
	assert.Equal(t, 10430.0, resp.Result.MaturityAmount)
	assert.Equal(t, 0.5, resp.Rate.AgeBonus)
}

func TestCalculateEndpointStatusCodes(t *testing.T) {
	h := newTestRouter()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{invalid-json}`, http.StatusBadRequest},
		{"negative principal", `{"principal": -5, "product_id": "premium-fixed", "tenor_months": 12, "age": 30}`, http.StatusBadRequest},
		{"unknown product", `{"principal": 100, "product_id": "gold", "tenor_months": 12, "age": 30}`, http.StatusNotFound},
		{"tenor not offered", `{"principal": 100, "product_id": "standard-fixed", "tenor_months": 60, "age": 30}`, http.StatusUnprocessableEntity},
		{"bad convention", `{"principal": 100, "product_id": "premium-fixed", "tenor_months": 12, "age": 30, "convention": "daily"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, "/calculate", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/calculate", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestProductsEndpoint(t *testing.T) {
	h := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp tools.ProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 4)
	assert.Equal(t, catalog.PremiumFixedID, resp.Products[0].ID)
}

func TestScheduleAndCompareEndpoints(t *testing.T) {
	h := newTestRouter()
	body := `{"principal": 10000, "product_id": "premium-fixed", "tenor_months": 12, "age": 30, "convention": "compound"}`

	w := post(t, h, "/schedule", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sched tools.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sched))
	assert.Len(t, sched.Schedule, 12)

	w = post(t, h, "/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cmp tools.ComparisonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	assert.Equal(t, 450.0, cmp.Simple.InterestEarned)
	assert.Greater(t, cmp.Compound.InterestEarned, cmp.Simple.InterestEarned)
}

func TestToolDispatch(t *testing.T) {
	h := newTestRouter()

	w := post(t, h, "/tools/"+tools.CalculateDepositReturn,
		`{"principal": 1000, "product_id": "premium-fixed", "tenor_months": 6, "age": 40}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = post(t, h, "/tools/nope", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), tools.ListDepositProducts)
}

func TestToolDispatchEmptyBody(t *testing.T) {
	h := newTestRouter()

	w := post(t, h, "/tools/"+tools.ListDepositProducts, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp tools.ProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 4)

	w = post(t, h, "/calculate", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, "/calculate", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter()

	for _, path := range []string{"/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(calculations.ErrInvalidPrincipal))
	assert.Equal(t, http.StatusNotFound, StatusFor(calculations.ErrUnknownProduct))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(calculations.ErrTenorNotOffered))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	deps := &tools.Deps{
		Config:  &config.Config{MaxPrincipal: 1e9, MaxAge: 120, MaxBalanceCap: 1e12},
		Tracer:  noop.NewTracerProvider().Tracer("test"),
		Catalog: catalog.Default(),
		Log:     logging.Discard(),
	}
	s := New(tools.Registry(deps), logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.ListenAndServe(ctx, "127.0.0.1:0"))
}
