package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lieblingsring/storefront/internal/cart"
	storefrontHttp "github.com/lieblingsring/storefront/internal/handler/http"
)

func newCartRouter() *chi.Mux {
	router := chi.NewRouter()
	storefrontHttp.NewCartHandler().RegisterRoutes(router)
	return router
}

func cartCookieFrom(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == cart.CookieName {
			return c
		}
	}
	t.Fatalf("response did not set the %s cookie", cart.CookieName)
	return nil
}

func decodeCartResponse(t *testing.T, rr *httptest.ResponseRecorder) (items []cart.Item, total int64) {
	t.Helper()
	var resp struct {
		OK    bool        `json:"ok"`
		Items []cart.Item `json:"items"`
		Total int64       `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.True(t, resp.OK)
	return resp.Items, resp.Total
}

func TestCartHandler_AddItem(t *testing.T) {
	router := newCartRouter()

	body := []byte(`{"id":"p1","name":"국화매듭 목걸이","price":99000,"qty":2,"image":"/a.jpg"}`)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	items, total := decodeCartResponse(t, rr)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, int64(198000), total)
	cartCookieFrom(t, rr)
}

func TestCartHandler_AddItem_MergesWithCookie(t *testing.T) {
	router := newCartRouter()

	// First add sets the cookie.
	req := httptest.NewRequest(http.MethodPost, "/cart",
		bytes.NewReader([]byte(`{"id":"p1","name":"Necklace","price":99000,"qty":1}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	cookie := cartCookieFrom(t, rr)

	// Second add of the same product merges quantities.
	req = httptest.NewRequest(http.MethodPost, "/cart",
		bytes.NewReader([]byte(`{"id":"p1","name":"Necklace","price":99000,"qty":3}`)))
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	items, total := decodeCartResponse(t, rr)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Qty)
	assert.Equal(t, int64(4*99000), total)
}

func TestCartHandler_AddItem_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not_json", body: "garbage"},
		{name: "missing_id", body: `{"name":"Necklace","price":99000}`},
		{name: "missing_name", body: `{"id":"p1","price":99000}`},
		{name: "zero_price", body: `{"id":"p1","name":"Necklace","price":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newCartRouter()
			req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCartHandler_SetQty(t *testing.T) {
	router := newCartRouter()

	req := httptest.NewRequest(http.MethodPost, "/cart",
		bytes.NewReader([]byte(`{"id":"p1","name":"Necklace","price":99000,"qty":1}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	cookie := cartCookieFrom(t, rr)

	req = httptest.NewRequest(http.MethodPatch, "/cart", bytes.NewReader([]byte(`{"id":"p1","qty":0}`)))
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	items, _ := decodeCartResponse(t, rr)
	require.Len(t, items, 1)
	// Quantities never drop below one.
	assert.Equal(t, 1, items[0].Qty)
}

func TestCartHandler_Remove(t *testing.T) {
	router := newCartRouter()

	req := httptest.NewRequest(http.MethodPost, "/cart",
		bytes.NewReader([]byte(`{"id":"p1","name":"Necklace","price":99000,"qty":3}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	cookie := cartCookieFrom(t, rr)

	req = httptest.NewRequest(http.MethodPost, "/cart",
		bytes.NewReader([]byte(`{"id":"p2","name":"Earring","price":59000,"qty":1}`)))
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	cookie = cartCookieFrom(t, rr)

	t.Run("remove_one_row", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/cart", bytes.NewReader([]byte(`{"id":"p1"}`)))
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		items, total := decodeCartResponse(t, rr)
		require.Len(t, items, 1)
		assert.Equal(t, "p2", items[0].ID)
		assert.Equal(t, int64(59000), total)
	})

	t.Run("no_id_clears_all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		items, total := decodeCartResponse(t, rr)
		assert.Empty(t, items)
		assert.Equal(t, int64(0), total)
	})
}

func TestCartHandler_GetCart_CorruptCookie(t *testing.T) {
	router := newCartRouter()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: cart.CookieName, Value: "not-json"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	items, total := decodeCartResponse(t, rr)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), total)
}
