package cart_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lieblingsring/storefront/internal/cart"
)

func TestAdd_MergesByID(t *testing.T) {
	items := cart.Add(nil, cart.Item{ID: "p1", Name: "Necklace", Price: 50000, Qty: 1})
	items = cart.Add(items, cart.Item{ID: "p1", Name: "Necklace", Price: 50000, Qty: 1})

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, int64(100000), cart.Total(items))
}

func TestAdd_NewItemAppends(t *testing.T) {
	items := cart.Add(nil, cart.Item{ID: "p1", Name: "Necklace", Price: 50000, Qty: 1})
	items = cart.Add(items, cart.Item{ID: "p2", Name: "Earring", Price: 79000, Qty: 2})

	require.Len(t, items, 2)
	assert.Equal(t, int64(50000+2*79000), cart.Total(items))
}

func TestAdd_ZeroQtyBecomesOne(t *testing.T) {
	items := cart.Add(nil, cart.Item{ID: "p1", Name: "Necklace", Price: 50000, Qty: 0})

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Qty)
}

func TestSetQty(t *testing.T) {
	tests := []struct {
		name    string
		qty     int
		wantQty int
	}{
		{name: "normal", qty: 5, wantQty: 5},
		{name: "clamped_to_one", qty: 0, wantQty: 1},
		{name: "negative_clamped", qty: -3, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []cart.Item{{ID: "p1", Name: "Necklace", Price: 50000, Qty: 2}}
			items = cart.SetQty(items, "p1", tt.qty)
			assert.Equal(t, tt.wantQty, items[0].Qty)
		})
	}
}

func TestSetQty_UnknownIDIsNoop(t *testing.T) {
	items := []cart.Item{{ID: "p1", Qty: 2}}
	items = cart.SetQty(items, "missing", 9)
	assert.Equal(t, 2, items[0].Qty)
}

func TestRemove_DeletesEntireRow(t *testing.T) {
	items := []cart.Item{
		{ID: "p1", Price: 50000, Qty: 3},
		{ID: "p2", Price: 79000, Qty: 1},
	}

	items = cart.Remove(items, "p1")

	// Remove drops the row, it never decrements.
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}

func TestClear(t *testing.T) {
	assert.Empty(t, cart.Clear())
	assert.Equal(t, int64(0), cart.Total(cart.Clear()))
}

func TestCookieRoundTrip(t *testing.T) {
	items := []cart.Item{
		{ID: "p1", Name: "SILVER 국화매듭 목걸이", Price: 99000, Qty: 2, Image: "/a.jpg"},
		{ID: "p2", Name: "Earring", Price: 59000, Qty: 1},
	}

	rec := httptest.NewRecorder()
	cart.WriteCookie(rec, items)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cart.CookieName, cookies[0].Name)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])

	got := cart.ReadCookie(req)
	assert.Equal(t, items, got)
}

func TestReadCookie_MissingOrCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
	}{
		{name: "no_cookie", set: false},
		{name: "not_json", value: "garbage", set: true},
		{name: "wrong_shape", value: "%7B%22id%22%3A1%7D", set: true},
		{name: "json_null", value: "null", set: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tt.set {
				req.AddCookie(&http.Cookie{Name: cart.CookieName, Value: tt.value})
			}

			items := cart.ReadCookie(req)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}
