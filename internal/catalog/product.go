package catalog

// Product is a catalog entry as returned by the backend product API.
// Products are read-only on this side: they are fetched, filtered and
// rendered, never mutated.
type Product struct {
	ID                string   `json:"id"`
	Slug              string   `json:"slug"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             int64    `json:"price"` // minor currency units
	Category          string   `json:"category"`
	SKU               string   `json:"sku"`
	StockQuantity     int      `json:"stockQuantity"`
	FeaturedProduct   bool     `json:"featuredProduct"`
	ImageURLs         []string `json:"imageUrls"`
	PrimaryImageIndex int      `json:"primaryIndexUrl"`
	Specifications    []string `json:"specifications"`
	Benefits          []string `json:"benefits"`
	RelatedPrograms   []string `json:"relatedPrograms"`
}

// PlaceholderImage is rendered when a product carries no usable image.
const PlaceholderImage = "/placeholder.svg"

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// PrimaryImage returns the product's primary image URL. An out-of-range
// primary index falls back to the first image, an empty image list to the
// placeholder.
func (p Product) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return PlaceholderImage
	}
	if p.PrimaryImageIndex < 0 || p.PrimaryImageIndex >= len(p.ImageURLs) {
		return p.ImageURLs[0]
	}
	return p.ImageURLs[p.PrimaryImageIndex]
}
