package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/order"
	"github.com/lieblingsring/storefront/internal/payment"
)

// TossConfirmer is the server-to-server confirm call; satisfied by
// payment.TossClient.
type TossConfirmer interface {
	Confirm(ctx context.Context, orderID string, amount int64, paymentKey string) (payment.Result, error)
}

type PaymentHandler struct {
	orders order.Service
	toss   TossConfirmer
}

func NewPaymentHandler(orders order.Service, toss TossConfirmer) *PaymentHandler {
	return &PaymentHandler{orders: orders, toss: toss}
}

func (h *PaymentHandler) RegisterRoutes(router chi.Router) {
	router.Post("/payments/payapp/feedback", h.handlePayAppFeedback)
	router.Post("/payments/toss/confirm", h.handleTossConfirm)
}

// handlePayAppFeedback processes the form-encoded callback from PayApp.
// The provider retries until it sees the literal body "SUCCESS", so every
// branch — including internal failures — answers exactly that.
func (h *PaymentHandler) handlePayAppFeedback(w http.ResponseWriter, r *http.Request) {
	var success bool
	defer func() { RecordOrderOperation("payapp_feedback", success) }()
	defer writePayAppAck(w)

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read payapp feedback body")
		return
	}

	res, err := payment.ParsePayAppFeedback(string(body))
	if err != nil {
		log.Warn().Err(err).Msg("Malformed payapp feedback")
		return
	}

	outcome, err := h.orders.ApplyPaymentResult(r.Context(), res)
	if err != nil {
		// Unknown orders are acknowledged as well; anything else is an
		// internal problem we only log.
		if errors.Is(err, order.ErrNotFound) {
			success = true
		} else {
			log.Error().Err(err).Str("order_id", res.OrderID).Msg("Failed to apply payapp result")
		}
		return
	}

	success = true
	log.Info().Str("order_id", res.OrderID).Str("outcome", string(outcome)).Msg("payapp feedback processed")
}

func writePayAppAck(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("SUCCESS"))
}

type tossConfirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

type tossConfirmResponse struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"orderId"`
	Note    string `json:"note,omitempty"`
}

// handleTossConfirm is called by the browser after the Toss widget redirects
// back; the handler performs the signed server-to-server confirmation and
// reports a structured result.
func (h *PaymentHandler) handleTossConfirm(w http.ResponseWriter, r *http.Request) {
	var success bool
	defer func() { RecordOrderOperation("toss_confirm", success) }()

	var req tossConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PaymentKey == "" || req.OrderID == "" || req.Amount <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid confirm request")
		return
	}

	orderID, err := uuid.FromString(req.OrderID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetOrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// A retried confirm for a settled order is acknowledged without another
	// gateway call.
	if o.Status == order.StatusPaid {
		success = true
		respondWithJSON(w, http.StatusOK, tossConfirmResponse{OK: true, OrderID: req.OrderID, Note: "already paid"})
		return
	}

	if o.TotalAmount != req.Amount {
		respondWithError(w, http.StatusBadRequest, "amount mismatch")
		return
	}

	res, confirmErr := h.toss.Confirm(r.Context(), req.OrderID, req.Amount, req.PaymentKey)
	if confirmErr != nil && !errors.Is(confirmErr, payment.ErrConfirmDeclined) {
		log.Error().Err(confirmErr).Str("order_id", req.OrderID).Msg("Toss confirm call failed")
		respondWithError(w, http.StatusBadGateway, "payment confirmation failed")
		return
	}

	outcome, err := h.orders.ApplyPaymentResult(r.Context(), res)
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("Failed to apply toss result")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch outcome {
	case order.OutcomePaid, order.OutcomeAlreadyDone:
		success = true
		respondWithJSON(w, http.StatusOK, tossConfirmResponse{OK: true, OrderID: req.OrderID})
	default:
		respondWithError(w, http.StatusBadRequest, "payment was not approved")
	}
}
