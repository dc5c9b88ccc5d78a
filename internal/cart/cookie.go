package cart

import (
	"encoding/json"
	"net/http"
	"net/url"
)

const (
	CookieName = "cart_v1"
	cookieTTL  = 60 * 60 * 24 * 30 // 30 days
)

// ReadCookie decodes the cart cookie from the request. A missing or corrupt
// cookie yields an empty cart, never an error.
func ReadCookie(r *http.Request) []Item {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return []Item{}
	}

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return []Item{}
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []Item{}
	}
	return items
}

// WriteCookie rewrites the whole cart back to the response.
func WriteCookie(w http.ResponseWriter, items []Item) {
	raw, err := json.Marshal(items)
	if err != nil {
		// Item marshalling cannot fail on these field types.
		raw = []byte("[]")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   cookieTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
