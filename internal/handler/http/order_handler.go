package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/order"
)

// goodname shown on the gateway payment sheet.
const orderGoodname = "LIEBLINGSRING 상품"

type OrderHandler struct {
	svc      order.Service
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc, validate: validator.New()}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.handleCreateOrder)
	router.Get("/orders/{id}", h.handleGetOrderByID)
}

func (h *OrderHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/{id}", h.handleGetOrderByID)
	router.Put("/orders/{id}", h.handleUpdateOrderStatus)
}

type createOrderRequest struct {
	Cart struct {
		Items []struct {
			ID  string `json:"id" validate:"required"`
			Qty int    `json:"qty" validate:"required,gt=0"`
		} `json:"items" validate:"required,min=1,dive"`
	} `json:"cart"`
	Customer struct {
		Email   string `json:"email" validate:"required,email"`
		Name    string `json:"name" validate:"required"`
		Phone   string `json:"phone" validate:"required"`
		Zipcode string `json:"zipcode" validate:"required"`
		Addr1   string `json:"addr1"`
		Addr2   string `json:"addr2"`
	} `json:"customer"`
	Method string `json:"method"`
}

type createOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Goodname string `json:"goodname"`
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var success bool
	defer func() { RecordOrderOperation("create", success) }()

	var req createOrderRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		return
	}

	lines := make([]order.Line, 0, len(req.Cart.Items))
	for _, it := range req.Cart.Items {
		productID, err := uuid.FromString(it.ID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid product id %q", it.ID))
			return
		}
		lines = append(lines, order.Line{ProductID: productID, Qty: it.Qty})
	}

	form := order.CustomerForm{
		Email:   req.Customer.Email,
		Name:    req.Customer.Name,
		Phone:   req.Customer.Phone,
		Zipcode: req.Customer.Zipcode,
		Addr1:   req.Customer.Addr1,
		Addr2:   req.Customer.Addr2,
	}

	created, err := h.svc.CreateOrder(r.Context(), form, lines, req.Method)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create order via service")
		respondWithError(w, mapErrorToStatusCode(err), clientMessageFor(err))
		return
	}

	success = true
	respondWithJSON(w, http.StatusCreated, createOrderResponse{
		OrderID:  created.ID.String(),
		Amount:   created.TotalAmount,
		Goodname: orderGoodname,
	})
}

func clientMessageFor(err error) string {
	switch {
	case errors.Is(err, order.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, order.ErrProductNotFound):
		return "one of the ordered products no longer exists"
	case errors.Is(err, order.ErrNotFound):
		return "order not found"
	case errors.Is(err, order.ErrInvalidStatusTransition):
		return err.Error()
	default:
		return "internal server error"
	}
}

func (h *OrderHandler) handleGetOrderByID(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	orderID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	o, err := h.svc.GetOrderByID(r.Context(), orderID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessageFor(err))
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := h.svc.ListOrders(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders via service")
		respondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	respondWithJSON(w, http.StatusOK, pagedResponse{
		Data: orders,
		Meta: pageMeta{Total: total, Page: page, Limit: limit},
	})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID FAILED CANCEL"`
}

func (h *OrderHandler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	orderID, err := uuid.FromString(idParam)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "status must be one of PENDING, PAID, FAILED, CANCEL")
		return
	}

	err = h.svc.UpdateOrderStatus(r.Context(), orderID, order.Status(req.Status))
	if err != nil {
		log.Warn().Err(err).Stringer("order_id", orderID).Msg("Failed to update order status via service")
		respondWithError(w, mapErrorToStatusCode(err), clientMessageFor(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
