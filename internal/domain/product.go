package domain

import "time"

// Product statuses. Status is set by the admin independently of the
// stock count; the storefront computes display labels but storage does
// not reconcile the two.
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	Images      []string  `json:"images,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidProductStatus reports whether s is a known product status.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock:
		return true
	}
	return false
}
