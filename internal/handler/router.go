package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portableworkout-web/internal/cache"
	"portableworkout-web/internal/cart"
	"portableworkout-web/internal/middleware"
	"portableworkout-web/internal/session"
	"portableworkout-web/internal/shopapi"
	"portableworkout-web/internal/view"
)

// RouterDeps bundles everything the route tree needs.
type RouterDeps struct {
	API          *shopapi.Client
	ProductCache *cache.ProductCache
	Store        *session.Store
	Renderer     *view.Renderer
	LoginLimiter *middleware.RateLimiter
}

// NewRouter assembles the full route tree: public catalog and auth pages,
// the RequireAuth-protected group, and the operational endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	products := NewProductHandler(deps.API, deps.ProductCache, deps.Renderer, deps.Store)
	carts := NewCartHandler(cart.NewService(deps.API), deps.Store, deps.Renderer)
	authn := NewAuthHandler(deps.API, deps.Store, deps.Renderer)

	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Metrics())

	// Public pages
	r.Get("/", products.Home)
	r.Get("/products", products.List)
	r.Get("/products/{slug}", products.Detail)

	r.Get("/login", authn.LoginPage)
	r.Get("/register", authn.RegisterPage)
	r.Group(func(r chi.Router) {
		if deps.LoginLimiter != nil {
			r.Use(deps.LoginLimiter.Middleware())
		}
		r.Post("/login", authn.Login)
		r.Post("/register", authn.Register)
	})

	// Everything that touches the remote cart or shows an identity needs a
	// live token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Store, deps.API))

		r.Get("/cart", carts.View)
		r.Post("/cart/items", carts.Add)
		r.Post("/cart/items/{id}", carts.UpdateQuantity)
		r.Post("/cart/items/{id}/delete", carts.Remove)

		r.Get("/dashboard", authn.Dashboard)
		r.Get("/account", authn.Account)
		r.Get("/logout", authn.LogoutPage)
		r.Post("/logout", authn.Logout)
	})

	// Operational endpoints
	r.Get("/health", Health)
	r.Get("/ready", Ready(deps.API, deps.ProductCache))
	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/static/*", view.StaticHandler())

	r.NotFound(products.NotFound)

	return r
}
