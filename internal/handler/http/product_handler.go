package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/product"
)

type ProductHandler struct {
	svc      product.Service
	validate *validator.Validate
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc, validate: validator.New()}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{slug}", h.handleGetProductBySlug)
}

func (h *ProductHandler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/products", h.handleCreateProduct)
	router.Put("/products/{id}", h.handleUpdateProduct)
	router.Delete("/products/{id}", h.handleDeleteProduct)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := h.svc.ListProducts(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products via service")
		respondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, pagedResponse{
		Data: products,
		Meta: pageMeta{Total: total, Page: page, Limit: limit},
	})
}

func (h *ProductHandler) handleGetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "slug is required")
		return
	}

	p, err := h.svc.GetProductBySlug(r.Context(), slug)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	SalePrice   *int64   `json:"sale_price" validate:"omitempty,gt=0"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

func (h *ProductHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	p := &product.Product{
		Name:        req.Name,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Summary:     req.Summary,
		Description: req.Description,
		Images:      req.Images,
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	created, err := h.svc.CreateProduct(r.Context(), p)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create product via service")
		respondWithError(w, mapErrorToStatusCode(err), "failed to create product")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	productID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	existing, err := h.svc.GetProductByID(r.Context(), productID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "product not found")
		return
	}

	existing.Name = req.Name
	existing.Price = req.Price
	existing.SalePrice = req.SalePrice
	existing.Summary = req.Summary
	existing.Description = req.Description
	if req.Images != nil {
		existing.Images = req.Images
	}

	if err := h.svc.UpdateProduct(r.Context(), existing); err != nil {
		log.Warn().Err(err).Stringer("product_id", productID).Msg("Failed to update product via service")
		respondWithError(w, mapErrorToStatusCode(err), "failed to update product")
		return
	}

	respondWithJSON(w, http.StatusOK, existing)
}

func (h *ProductHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	productID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), productID); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
