package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/content"
)

type ContentHandler struct {
	svc      content.Service
	validate *validator.Validate
}

func NewContentHandler(svc content.Service) *ContentHandler {
	return &ContentHandler{svc: svc, validate: validator.New()}
}

func (h *ContentHandler) RegisterRoutes(router chi.Router) {
	router.Get("/notices", h.handleListNotices)
	router.Get("/notices/{id}", h.handleGetNotice)
	router.Get("/lookbook", h.handleListLookbook)
	router.Post("/inquiries", h.handleCreateInquiry)
}

func (h *ContentHandler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/notices", h.handleCreateNotice)
	router.Put("/notices/{id}", h.handleUpdateNotice)
	router.Delete("/notices/{id}", h.handleDeleteNotice)
	router.Post("/lookbook", h.handleCreateLookbookEntry)
	router.Put("/lookbook/{id}", h.handleUpdateLookbookEntry)
	router.Delete("/lookbook/{id}", h.handleDeleteLookbookEntry)
	router.Get("/inquiries", h.handleListInquiries)
}

func parsePaging(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (h *ContentHandler) handleListNotices(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	notices, total, err := h.svc.ListNotices(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list notices via service")
		respondWithError(w, http.StatusInternalServerError, "failed to list notices")
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Data: notices, Meta: pageMeta{Total: total, Page: page, Limit: limit}})
}

func (h *ContentHandler) handleGetNotice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	n, err := h.svc.GetNotice(r.Context(), id)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "notice not found")
		return
	}
	respondWithJSON(w, http.StatusOK, n)
}

type noticeRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
}

func (h *ContentHandler) handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	n, err := h.svc.CreateNotice(r.Context(), req.Title, req.Body)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to create notice")
		return
	}
	respondWithJSON(w, http.StatusCreated, n)
}

func (h *ContentHandler) handleUpdateNotice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	n := &content.Notice{ID: id, Title: req.Title, Body: req.Body}
	if err := h.svc.UpdateNotice(r.Context(), n); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to update notice")
		return
	}
	respondWithJSON(w, http.StatusOK, n)
}

func (h *ContentHandler) handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}
	if err := h.svc.DeleteNotice(r.Context(), id); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to delete notice")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) handleListLookbook(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListLookbook(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list lookbook via service")
		respondWithError(w, http.StatusInternalServerError, "failed to list lookbook")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": entries})
}

type lookbookRequest struct {
	Title    string `json:"title" validate:"required"`
	Caption  string `json:"caption"`
	Image    string `json:"image"`
	Position int    `json:"position"`
}

func (h *ContentHandler) handleCreateLookbookEntry(w http.ResponseWriter, r *http.Request) {
	var req lookbookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	e := &content.LookbookEntry{Title: req.Title, Caption: req.Caption, Image: req.Image, Position: req.Position}
	created, err := h.svc.CreateLookbookEntry(r.Context(), e)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to create lookbook entry")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) handleUpdateLookbookEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}

	var req lookbookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	e := &content.LookbookEntry{ID: id, Title: req.Title, Caption: req.Caption, Image: req.Image, Position: req.Position}
	if err := h.svc.UpdateLookbookEntry(r.Context(), e); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to update lookbook entry")
		return
	}
	respondWithJSON(w, http.StatusOK, e)
}

func (h *ContentHandler) handleDeleteLookbookEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}
	if err := h.svc.DeleteLookbookEntry(r.Context(), id); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to delete lookbook entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type inquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required"`
	Product string `json:"product"`
	SKU     string `json:"sku"`
	Type    string `json:"type"`
	Message string `json:"message" validate:"required"`
	Source  string `json:"source"`
}

func (h *ContentHandler) handleCreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "name, contact and message are required")
		return
	}

	q := &content.Inquiry{
		Name:    req.Name,
		Contact: req.Contact,
		Product: req.Product,
		SKU:     req.SKU,
		Type:    req.Type,
		Message: req.Message,
		Source:  req.Source,
	}
	created, err := h.svc.CreateInquiry(r.Context(), q)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to submit inquiry")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "id": created.ID})
}

func (h *ContentHandler) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)
	inquiries, total, err := h.svc.ListInquiries(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list inquiries via service")
		respondWithError(w, http.StatusInternalServerError, "failed to list inquiries")
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Data: inquiries, Meta: pageMeta{Total: total, Page: page, Limit: limit}})
}
