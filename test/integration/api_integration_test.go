package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"product-catalog/internal/handler"
	"product-catalog/internal/middleware"
	"product-catalog/internal/model"
	"product-catalog/internal/repository"
	"product-catalog/internal/router"
	"product-catalog/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	productService := service.NewProductService(productRepo, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	metrics := middleware.NewMetrics()

	return router.New(productHandler, metrics, logger)
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /health answers OK", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "OK"}`, w.Body.String())
	})

	t.Run("GET / serves the index page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Product Catalog Administration")
	})

	t.Run("POST /products creates a product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := `{"name":"Fedora","description":"A red hat","price":"12.50","available":true,"category":"CLOTHS"}`
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "Fedora", created.Name)

		// The Location header resolves to the new resource.
		var raw map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		id := int64(raw["id"].(float64))
		assert.Positive(t, id)
		assert.Equal(t, fmt.Sprintf("/products/%d", id), w.Header().Get("Location"))

		getReq := httptest.NewRequest(http.MethodGet, w.Header().Get("Location"), nil)
		getW := httptest.NewRecorder()
		server.ServeHTTP(getW, getReq)
		assert.Equal(t, http.StatusOK, getW.Code)
	})

	t.Run("POST /products without a name answers 400", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"description": "A red hat"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Contains(t, errResp.Message, "missing name")
		assert.NotEmpty(t, errResp.CorrelationID)
	})

	t.Run("POST /products with text/plain answers 415", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("name=Fedora"))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("Creating 5 products then listing returns all of them", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		for i := 0; i < 5; i++ {
			body := fmt.Sprintf(`{"name":"Item %d","price":"%d.00","available":true}`, i, i+1)
			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var listed []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		assert.Len(t, listed, 5)
		for _, item := range listed {
			assert.NotNil(t, item["id"])
			assert.Greater(t, item["id"].(float64), float64(0))
		}
	})

	t.Run("GET /products/0 when absent answers 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/products/0", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /products/{id} returns the product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", seeded[0].ID), nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var product model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, "Fedora", product.Name)
		assert.Equal(t, "A red hat", product.Description)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))
	})

	t.Run("GET /products filters by name", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/products?name=Fedora", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		assert.Len(t, products, 2)
	})

	t.Run("GET /products filters by category ordinal", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/products?category=1", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		assert.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, model.CategoryCloths, p.Category)
		}
	})

	t.Run("GET /products filters by availability", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/products?available=false", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var products []model.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		assert.Len(t, products, 2)
	})

	t.Run("GET /products with no matches answers an empty array", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/products?name=Sombrero", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("PUT /products/{id} category change is reflected in a subsequent GET", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedProducts(t, testDB.Pool)

		body := `{"name":"Fedora","description":"A red hat","price":"12.50","available":true,"category":"UNKNOWN"}`
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/products/%d", seeded[0].ID), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		getReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", seeded[0].ID), nil)
		getW := httptest.NewRecorder()
		server.ServeHTTP(getW, getReq)

		assert.Equal(t, http.StatusOK, getW.Code)
		assert.Contains(t, getW.Body.String(), `"category":"UNKNOWN"`)
	})

	t.Run("PUT on an absent id answers 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body := `{"name":"Fedora","price":"12.50","available":true}`
		req := httptest.NewRequest(http.MethodPut, "/products/999999", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DELETE /products/{id} answers 204 and removes the row", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", seeded[0].ID), nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, len(seeded)-1, CountProducts(t, testDB.Pool))
	})

	t.Run("DELETE of an absent id answers 204 and changes nothing", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedProducts(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodDelete, "/products/999999", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, len(seeded), CountProducts(t, testDB.Pool))
	})

	t.Run("X-Request-ID header is set on every response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("GET /metrics exposes request counters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})
}
