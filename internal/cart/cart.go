// Package cart implements the cart mutation workflow on top of the two
// backend cart endpoints (add and remove). The cart itself lives on the
// backend; this package only composes calls and totals.
package cart

import (
	"context"
	"errors"
	"strconv"

	"portableworkout-web/internal/observability"
	"portableworkout-web/internal/shopapi"
)

var (
	// ErrUnauthenticated is returned when the backend no longer accepts the
	// visitor's token.
	ErrUnauthenticated = errors.New("cart: unauthenticated")

	// ErrQuantityFloor rejects quantity changes below one. Removal is a
	// separate, explicit action.
	ErrQuantityFloor = errors.New("cart: quantity must be at least 1")

	// ErrItemNotFound is returned when a line item ID is not in the cart.
	ErrItemNotFound = errors.New("cart: item not found")
)

// API is the slice of the backend client the cart workflow needs.
type API interface {
	CartItems(ctx context.Context, token string) ([]shopapi.CartItem, error)
	AddCartItem(ctx context.Context, token, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, token, itemID string) error
}

// Summary is a cart ready for rendering: the line items plus the totals the
// backend does not compute for us.
type Summary struct {
	Items      []shopapi.CartItem
	TotalItems int
	TotalPrice int64
}

// IsEmpty reports whether the cart has no line items.
func (s Summary) IsEmpty() bool {
	return len(s.Items) == 0
}

// Service composes the backend cart endpoints into the workflow the pages
// need.
type Service struct {
	api API
}

// NewService creates a cart service backed by the given API client.
func NewService(api API) *Service {
	return &Service{api: api}
}

// List fetches the cart and computes its totals.
func (s *Service) List(ctx context.Context, token string) (Summary, error) {
	items, err := s.api.CartItems(ctx, token)
	if err != nil {
		return Summary{}, mapErr(err)
	}

	summary := Summary{Items: items}
	for _, item := range items {
		summary.TotalItems += item.Quantity
		summary.TotalPrice += int64(item.Quantity) * item.Product.Price
	}
	return summary, nil
}

// Add puts quantity of a product into the cart. Quantities below one are
// rejected before any network call.
func (s *Service) Add(ctx context.Context, token, productID string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityFloor
	}
	if err := s.api.AddCartItem(ctx, token, productID, quantity); err != nil {
		return mapErr(err)
	}
	return nil
}

// Remove deletes one line item from the cart.
func (s *Service) Remove(ctx context.Context, token, itemID string) error {
	if err := s.api.RemoveCartItem(ctx, token, itemID); err != nil {
		return mapErr(err)
	}
	return nil
}

// SetQuantity changes a line item to an absolute quantity. The backend only
// exposes add and remove, so a change is a removal followed by a re-add of
// the same product at the new quantity. If the remove succeeds and the re-add
// fails the item is gone; the caller surfaces the error and the visitor
// re-adds from the product page.
func (s *Service) SetQuantity(ctx context.Context, token, itemID string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityFloor
	}

	items, err := s.api.CartItems(ctx, token)
	if err != nil {
		return mapErr(err)
	}

	var target *shopapi.CartItem
	for i := range items {
		if items[i].ID == itemID {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return ErrItemNotFound
	}
	if target.Quantity == quantity {
		return nil
	}

	if err := s.api.RemoveCartItem(ctx, token, itemID); err != nil {
		return mapErr(err)
	}
	if err := s.api.AddCartItem(ctx, token, target.ProductID, quantity); err != nil {
		observability.FromContext(ctx).Error("Cart re-add after removal failed, item dropped",
			"item_id", itemID,
			"product_id", target.ProductID,
			"error", err)
		return mapErr(err)
	}
	return nil
}

// ParseQuantity reads a form quantity, defaulting to one. Non-numeric and
// sub-one values clamp to one rather than erroring: the form inputs guard the
// floor, this guards hand-crafted requests.
func ParseQuantity(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func mapErr(err error) error {
	if errors.Is(err, shopapi.ErrUnauthorized) {
		return ErrUnauthenticated
	}
	if errors.Is(err, shopapi.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}
