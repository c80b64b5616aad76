package cache

import (
	"context"
	"errors"
	"testing"

	"portableworkout-web/internal/catalog"
)

func TestNilCache_PassesThrough(t *testing.T) {
	var c *ProductCache

	calls := 0
	fetch := func(ctx context.Context) ([]catalog.Product, error) {
		calls++
		return []catalog.Product{{ID: "p1"}}, nil
	}

	for i := 0; i < 3; i++ {
		products, err := c.Products(context.Background(), fetch)
		if err != nil {
			t.Fatalf("Products() error = %v", err)
		}
		if len(products) != 1 || products[0].ID != "p1" {
			t.Errorf("unexpected products: %+v", products)
		}
	}

	if calls != 3 {
		t.Errorf("expected every read to hit upstream, got %d calls", calls)
	}
}

func TestNilCache_PropagatesFetchError(t *testing.T) {
	var c *ProductCache

	boom := errors.New("backend down")
	_, err := c.FeaturedProducts(context.Background(), func(ctx context.Context) ([]catalog.Product, error) {
		return nil, boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
}

func TestNilCache_Ping(t *testing.T) {
	var c *ProductCache
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("expected nil cache ping to succeed, got %v", err)
	}
}

func TestNewProductCache_EmptyAddrIsNil(t *testing.T) {
	if c := NewProductCache(""); c != nil {
		t.Error("expected nil cache for empty address")
	}
	if c := NewProductCache("localhost:6379"); c == nil {
		t.Error("expected a live cache for a configured address")
	}
}
