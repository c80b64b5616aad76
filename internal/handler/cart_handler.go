package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portableworkout-web/internal/cart"
	"portableworkout-web/internal/middleware"
	"portableworkout-web/internal/observability"
	"portableworkout-web/internal/session"
	"portableworkout-web/internal/view"
)

// CartHandler serves the cart page and its mutations. All routes here sit
// behind RequireAuth, so a verified token is always in the request context.
type CartHandler struct {
	carts    *cart.Service
	store    *session.Store
	renderer *view.Renderer
}

// NewCartHandler creates the cart handler.
func NewCartHandler(carts *cart.Service, store *session.Store, renderer *view.Renderer) *CartHandler {
	return &CartHandler{
		carts:    carts,
		store:    store,
		renderer: renderer,
	}
}

// View renders the cart with totals and any pending flash message.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFrom(r.Context())

	sess := h.store.Get(r)
	flash := sess.ConsumeError()

	summary, err := h.carts.List(r.Context(), token)
	if err != nil {
		if errors.Is(err, cart.ErrUnauthenticated) {
			h.store.Destroy(w)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		observability.FromContext(r.Context()).Error("Failed to load cart", "error", err)
		if flash == "" {
			flash = "Could not load your cart right now, please try again"
		}
	}

	// Consuming the flash mutates the session; write the cleared cookie so a
	// reload does not repeat the message.
	if err := h.store.Commit(w, sess); err != nil {
		observability.FromContext(r.Context()).Error("Failed to commit session", "error", err)
	}

	h.renderer.Render(w, r, http.StatusOK, "cart", view.CartData{
		Base:       view.Base{Title: "Cart", LoggedIn: true},
		Summary:    summary,
		FlashError: flash,
	})
}

// Add puts a product into the cart and lands on the cart page.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFrom(r.Context())

	productID := r.PostFormValue("productId")
	quantity := cart.ParseQuantity(r.PostFormValue("quantity"))

	if productID == "" {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	if err := h.carts.Add(r.Context(), token, productID, quantity); err != nil {
		if errors.Is(err, cart.ErrUnauthenticated) {
			h.store.Destroy(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		observability.FromContext(r.Context()).Error("Failed to add to cart", "product_id", productID, "error", err)
		h.flashAndRedirect(w, r, "Could not add the item to your cart", "/cart")
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// UpdateQuantity sets a line item to an absolute quantity. Values below one
// are a no-op: removal has its own button.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFrom(r.Context())
	itemID := chi.URLParam(r, "id")

	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil || quantity < 1 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if err := h.carts.SetQuantity(r.Context(), token, itemID, quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrUnauthenticated):
			h.store.Destroy(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		case errors.Is(err, cart.ErrItemNotFound):
			// The item vanished between render and submit; the fresh cart
			// page is the answer.
		default:
			observability.FromContext(r.Context()).Error("Failed to update quantity", "item_id", itemID, "error", err)
			h.flashAndRedirect(w, r, "Could not update your cart", "/cart")
			return
		}
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Remove deletes a line item.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFrom(r.Context())
	itemID := chi.URLParam(r, "id")

	if err := h.carts.Remove(r.Context(), token, itemID); err != nil {
		switch {
		case errors.Is(err, cart.ErrUnauthenticated):
			h.store.Destroy(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		case errors.Is(err, cart.ErrItemNotFound):
			// Already gone; nothing to report.
		default:
			observability.FromContext(r.Context()).Error("Failed to remove cart item", "item_id", itemID, "error", err)
			h.flashAndRedirect(w, r, "Could not remove the item", "/cart")
			return
		}
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg, target string) {
	sess := h.store.Get(r)
	sess.Flash(msg)
	if err := h.store.Commit(w, sess); err != nil {
		observability.FromContext(r.Context()).Error("Failed to commit session", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
