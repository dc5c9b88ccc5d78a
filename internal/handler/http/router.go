package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Products  *ProductHandler
	Cart      *CartHandler
	Orders    *OrderHandler
	Payments  *PaymentHandler
	Users     *UserHandler
	Content   *ContentHandler
	AdminAuth *AdminAuthHandler

	AdminCookieName string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(PrometheusMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	deps.Products.RegisterRoutes(r)
	deps.Cart.RegisterRoutes(r)
	deps.Orders.RegisterRoutes(r)
	deps.Payments.RegisterRoutes(r)
	deps.Users.RegisterRoutes(r)
	deps.Content.RegisterRoutes(r)

	// Everything under /admin except login/logout sits behind the shared
	// admin guard.
	r.Route("/admin", func(ar chi.Router) {
		deps.AdminAuth.RegisterRoutes(ar)
		ar.Group(func(g chi.Router) {
			g.Use(AdminOnly(deps.AdminCookieName))
			deps.AdminAuth.RegisterAdminRoutes(g)
			deps.Products.RegisterAdminRoutes(g)
			deps.Orders.RegisterAdminRoutes(g)
			deps.Content.RegisterAdminRoutes(g)
		})
	})

	return r
}
