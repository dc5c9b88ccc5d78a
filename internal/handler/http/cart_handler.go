package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lieblingsring/storefront/internal/cart"
)

// CartHandler mutates the cookie cart. Every operation reads the whole list,
// applies one change and writes the whole list back.
type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleGetCart)
	router.Post("/cart", h.handleAddItem)
	router.Patch("/cart", h.handleSetQty)
	router.Delete("/cart", h.handleRemove)
}

type cartResponse struct {
	OK    bool        `json:"ok"`
	Items []cart.Item `json:"items"`
	Total int64       `json:"total"`
}

func cartOK(items []cart.Item) cartResponse {
	return cartResponse{OK: true, Items: items, Total: cart.Total(items)}
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	items := cart.ReadCookie(r)
	respondWithJSON(w, http.StatusOK, cartOK(items))
}

type addItemRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
	Image string `json:"image"`
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ID == "" || req.Name == "" || req.Price <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Qty < 1 {
		req.Qty = 1
	}

	items := cart.Add(cart.ReadCookie(r), cart.Item{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Qty:   req.Qty,
		Image: req.Image,
	})
	cart.WriteCookie(w, items)
	respondWithJSON(w, http.StatusOK, cartOK(items))
}

type setQtyRequest struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

func (h *CartHandler) handleSetQty(w http.ResponseWriter, r *http.Request) {
	var req setQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		respondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	items := cart.SetQty(cart.ReadCookie(r), req.ID, req.Qty)
	cart.WriteCookie(w, items)
	respondWithJSON(w, http.StatusOK, cartOK(items))
}

type removeRequest struct {
	ID string `json:"id"`
}

// handleRemove deletes one row when an id is given, otherwise clears the
// whole cart.
func (h *CartHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	// An absent or empty body means "clear all".
	_ = json.NewDecoder(r.Body).Decode(&req)

	var items []cart.Item
	if req.ID != "" {
		items = cart.Remove(cart.ReadCookie(r), req.ID)
	} else {
		items = cart.Clear()
	}
	cart.WriteCookie(w, items)
	respondWithJSON(w, http.StatusOK, cartOK(items))
}
