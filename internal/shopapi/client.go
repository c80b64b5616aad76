// Package shopapi is the typed client for the external product/cart/auth API.
// The backend owns all storage; this client is a stateless request/response
// peer with no retry policy. Each call either succeeds or surfaces an error
// for the page layer to handle.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"portableworkout-web/internal/catalog"
	"portableworkout-web/internal/observability"
)

var (
	// ErrUnauthorized is returned when the backend rejects the bearer token
	// (or its absence).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for unknown slugs and item IDs.
	ErrNotFound = errors.New("not found")
)

// APIError covers backend rejections that are neither auth nor not-found.
type APIError struct {
	Operation string
	Status    int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", e.Operation, e.Status)
}

// User is the identity payload returned by the auth endpoints.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CartItem is one line item of the remote cart, with the product snapshot the
// backend denormalizes into it for display.
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   catalog.Product `json:"product"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Client handles requests to the backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new backend API client
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Products fetches the full product collection.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, "products", http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FeaturedProducts fetches the curated featured selection.
func (c *Client) FeaturedProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, "products_featured", http.MethodGet, "/products/featured", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductBySlug fetches a single product by its URL slug.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var product catalog.Product
	path := "/products/" + url.PathEscape(slug)
	if err := c.do(ctx, "product_by_slug", http.MethodGet, path, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CartItems fetches the authenticated user's cart.
func (c *Client) CartItems(ctx context.Context, token string) ([]CartItem, error) {
	var items []CartItem
	if err := c.do(ctx, "cart_list", http.MethodGet, "/cart", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem adds quantity of a product to the authenticated user's cart.
func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int) error {
	body := addCartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, "cart_add", http.MethodPost, "/cart/items", token, body, nil)
}

// RemoveCartItem deletes a single line item by its cart item ID.
func (c *Client) RemoveCartItem(ctx context.Context, token, itemID string) error {
	path := "/cart/items/" + url.PathEscape(itemID)
	return c.do(ctx, "cart_remove", http.MethodDelete, path, token, nil, nil)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	body := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, "auth_login", http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, "auth_register", http.MethodPost, "/auth/register", "", req, nil)
}

// Me is the identity probe: it confirms the token is still valid and returns
// the identity behind it.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, "auth_me", http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do performs a single backend call. No retries: upstream errors are
// point-in-time and fail only the request that made them.
func (c *Client) do(ctx context.Context, operation, method, path, token string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", operation, err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", operation, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	observability.UpstreamRequestDuration.WithLabelValues(operation, status).Observe(duration)
	observability.UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()

	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", operation, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	case resp.StatusCode >= 400:
		return &APIError{Operation: operation, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: failed to decode response: %w", operation, err)
		}
	}

	return nil
}
