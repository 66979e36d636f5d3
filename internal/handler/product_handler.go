package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"product-catalog/internal/model"
	"product-catalog/internal/service"
	"product-catalog/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Index handles GET / requests with the embedded admin page.
func (h *ProductHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(web.IndexHTML)
}

// Health handles GET /health requests.
func (h *ProductHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "OK"})
}

// Create handles POST /products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !hasJSONContentType(r) {
		writeError(w, r, http.StatusUnsupportedMediaType, "Content-Type must be application/json", h.logger)
		return
	}

	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	if err := h.service.Create(r.Context(), product); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/products/%d", product.ID))
	writeJSON(w, http.StatusCreated, product)
}

// Get handles GET /products/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// List handles GET /products requests. At most one filter applies,
// with name taking precedence over category over availability.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var products []model.Product
	var err error

	switch {
	case query.Get("name") != "":
		products, err = h.service.FindByName(r.Context(), query.Get("name"))

	case query.Get("category") != "":
		category, parseErr := model.ParseCategoryToken(query.Get("category"))
		if parseErr != nil {
			writeError(w, r, http.StatusBadRequest, parseErr.Error(), h.logger)
			return
		}
		products, err = h.service.FindByCategory(r.Context(), category)

	case query.Get("available") != "":
		available, parseErr := strconv.ParseBool(query.Get("available"))
		if parseErr != nil {
			writeError(w, r, http.StatusBadRequest,
				fmt.Sprintf("invalid available token %q", query.Get("available")), h.logger)
			return
		}
		products, err = h.service.FindByAvailability(r.Context(), available)

	default:
		products, err = h.service.List(r.Context())
	}

	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Update handles PUT /products/{id} requests. The existence check runs
// before the body is read, so an unknown id is a 404 regardless of the
// payload.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Get(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product.ID = id
	if err := h.service.Update(r.Context(), product); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /products/{id} requests. Delete is idempotent
// at the API: an absent id still answers 204.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// productID extracts the id path parameter. A non-integer id does not
// resolve to a resource and is reported as 404.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Product not found", h.logger)
		return 0, false
	}
	return id, true
}

// decodeProduct reads and validates the request body. On failure it
// writes a 400 response and returns ok=false.
func (h *ProductHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*model.Product, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read request body", h.logger)
		return nil, false
	}

	var product model.Product
	if err := json.Unmarshal(body, &product); err != nil {
		// Syntax errors happen before the model's UnmarshalJSON runs,
		// so fold them into the same validation taxonomy here.
		var vErr *model.ValidationError
		if !errors.As(err, &vErr) {
			err = model.NewValidationError("bad or no data")
		}
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return nil, false
	}

	return &product, true
}

// writeServiceError maps a service error onto the HTTP taxonomy:
// validation failures are 400, unresolvable ids are 404, everything
// else is a generic 500.
func (h *ProductHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *model.ValidationError

	switch {
	case errors.Is(err, model.ErrProductNotFound):
		writeError(w, r, http.StatusNotFound, "Product not found", h.logger)
	case errors.As(err, &vErr):
		writeError(w, r, http.StatusBadRequest, vErr.Message, h.logger)
	default:
		h.logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, r, http.StatusInternalServerError, "internal server error", h.logger)
	}
}

// hasJSONContentType checks the Content-Type header, tolerating media
// type parameters such as charset.
func hasJSONContentType(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json"
}
