package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort modes accepted by Filter.SortBy. SortFeatured is the default and is
// not an ordering: the backend's order is preserved as-is, so featured items
// are not guaranteed to lead the result.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
	SortCategory  = "category"
)

// View modes for the product listing.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// FilterAll disables the category and price-range filters.
const FilterAll = "all"

// Filter is the full filter/sort configuration of the product listing page.
// The zero value (with Category/PriceRange normalized to "all") matches every
// product and keeps the backend order.
type Filter struct {
	Query        string
	Category     string
	PriceRange   string
	InStockOnly  bool
	FeaturedOnly bool
	SortBy       string
}

// PriceRangeOption is a canned price bracket offered by the listing page.
type PriceRangeOption struct {
	Value string
	Label string
}

// PriceRanges are the brackets offered in the price filter dropdown.
var PriceRanges = []PriceRangeOption{
	{Value: "all", Label: "All Prices"},
	{Value: "0-200000", Label: "Under Rp 200,000"},
	{Value: "200000-500000", Label: "Rp 200,000 - Rp 500,000"},
	{Value: "500000-1000000", Label: "Rp 500,000 - Rp 1,000,000"},
	{Value: "1000000+", Label: "Over Rp 1,000,000"},
}

// ActiveCount returns how many filters differ from their neutral value.
func (f Filter) ActiveCount() int {
	count := 0
	if f.Query != "" {
		count++
	}
	if f.Category != "" && f.Category != FilterAll {
		count++
	}
	if f.PriceRange != "" && f.PriceRange != FilterAll {
		count++
	}
	if f.InStockOnly {
		count++
	}
	if f.FeaturedOnly {
		count++
	}
	return count
}

// FilterAndSort returns the subset of products matching every active filter,
// ordered according to f.SortBy. The input slice is never modified and all
// sorts are stable.
func FilterAndSort(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	bounds, bounded := parsePriceRange(f.PriceRange)

	for _, p := range products {
		if !f.matches(p, bounds, bounded) {
			continue
		}
		out = append(out, p)
	}

	switch f.SortBy {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	case SortCategory:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Category, out[j].Category) < 0 })
	default:
		// "featured" (and anything unknown): keep the backend's order.
	}

	return out
}

// Categories returns the distinct categories present in the collection, in
// first-seen order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// newCollator builds a locale-aware collator. Collators are not safe for
// concurrent use, so one is built per sort.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

func (f Filter) matches(p Product, bounds priceBounds, bounded bool) bool {
	if f.Category != "" && f.Category != FilterAll && p.Category != f.Category {
		return false
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}

	if bounded {
		if p.Price < bounds.min {
			return false
		}
		if bounds.hasMax && p.Price > bounds.max {
			return false
		}
	}

	if f.InStockOnly && !p.InStock() {
		return false
	}

	if f.FeaturedOnly && !p.FeaturedProduct {
		return false
	}

	return true
}

type priceBounds struct {
	min, max int64
	hasMax   bool
}

// parsePriceRange interprets "min-max" (inclusive) and "min+" brackets.
// "all", the empty string and anything malformed disable the price filter.
func parsePriceRange(s string) (priceBounds, bool) {
	if s == "" || s == FilterAll {
		return priceBounds{}, false
	}

	if open, ok := strings.CutSuffix(s, "+"); ok {
		min, err := strconv.ParseInt(open, 10, 64)
		if err != nil {
			return priceBounds{}, false
		}
		return priceBounds{min: min}, true
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return priceBounds{}, false
	}

	min, err := strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return priceBounds{}, false
	}
	max, err := strconv.ParseInt(hi, 10, 64)
	if err != nil {
		return priceBounds{}, false
	}

	return priceBounds{min: min, max: max, hasMax: true}, true
}
