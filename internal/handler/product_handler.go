package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portableworkout-web/internal/cache"
	"portableworkout-web/internal/catalog"
	"portableworkout-web/internal/observability"
	"portableworkout-web/internal/session"
	"portableworkout-web/internal/shopapi"
	"portableworkout-web/internal/view"
)

// ProductAPI is the slice of the backend client the product pages need.
type ProductAPI interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	FeaturedProducts(ctx context.Context) ([]catalog.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error)
}

// ProductHandler serves the public catalog pages.
type ProductHandler struct {
	api      ProductAPI
	cache    *cache.ProductCache
	renderer *view.Renderer
	store    *session.Store
}

// NewProductHandler creates the catalog page handler.
func NewProductHandler(api ProductAPI, productCache *cache.ProductCache, renderer *view.Renderer, store *session.Store) *ProductHandler {
	return &ProductHandler{
		api:      api,
		cache:    productCache,
		renderer: renderer,
		store:    store,
	}
}

// Home renders the landing page with the featured selection. A backend
// failure degrades to an empty section rather than an error page.
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.cache.FeaturedProducts(r.Context(), h.api.FeaturedProducts)
	if err != nil {
		observability.FromContext(r.Context()).Error("Failed to load featured products", "error", err)
		featured = nil
	}

	h.renderer.Render(w, r, http.StatusOK, "home", view.HomeData{
		Base:     h.base(r, "Home"),
		Featured: featured,
	})
}

// List renders the filterable product listing. Filters come entirely from the
// query string, so every filtered view is a shareable URL.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.cache.Products(r.Context(), h.api.Products)
	if err != nil {
		observability.FromContext(r.Context()).Error("Failed to load products", "error", err)
		products = nil
	}

	f := filterFromQuery(r)

	visible := catalog.FilterAndSort(products, f)

	viewMode := r.URL.Query().Get("view")
	if viewMode != catalog.ViewList {
		viewMode = catalog.ViewGrid
	}

	h.renderer.Render(w, r, http.StatusOK, "products", view.ProductsData{
		Base:        h.base(r, "Products"),
		Products:    visible,
		Categories:  catalog.Categories(products),
		PriceRanges: catalog.PriceRanges,
		Filter:      f,
		View:        viewMode,
		ActiveCount: f.ActiveCount(),
		Total:       len(products),
	})
}

// Detail renders a single product page.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.api.ProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, shopapi.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		observability.FromContext(r.Context()).Error("Failed to load product", "slug", slug, "error", err)
		http.Error(w, "Service temporarily unavailable", http.StatusBadGateway)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "product", view.ProductDetailData{
		Base:    h.base(r, product.Name),
		Product: *product,
	})
}

// NotFound renders the 404 page.
func (h *ProductHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusNotFound, "notfound", view.NotFoundData{
		Base: h.base(r, "Not found"),
		Path: r.URL.Path,
	})
}

func (h *ProductHandler) base(r *http.Request, title string) view.Base {
	return view.Base{
		Title:    title,
		LoggedIn: h.store.Get(r).HasToken(),
	}
}

// filterFromQuery maps the listing query string onto a Filter. Unknown values
// fall back to their neutral defaults, never to an error page.
func filterFromQuery(r *http.Request) catalog.Filter {
	q := r.URL.Query()

	f := catalog.Filter{
		Query:        q.Get("q"),
		Category:     q.Get("category"),
		PriceRange:   q.Get("price"),
		InStockOnly:  q.Get("in_stock") == "true",
		FeaturedOnly: q.Get("featured") == "true",
		SortBy:       q.Get("sort"),
	}
	if f.Category == "" {
		f.Category = catalog.FilterAll
	}
	if f.PriceRange == "" {
		f.PriceRange = catalog.FilterAll
	}
	if f.SortBy == "" {
		f.SortBy = catalog.SortFeatured
	}
	return f
}
