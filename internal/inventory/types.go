package inventory

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a tenant-scoped lookup matches no row.
// Deliberately shared by "id does not exist" and "id belongs to another
// tenant" so responses cannot leak cross-tenant existence.
var ErrNotFound = errors.New("record not found")

// Category groups products for display. Owned by a tenant.
type Category struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product is a stocked item. CategoryID is a weak reference to a
// Category; CategoryName is filled from the LEFT JOIN on reads and is
// nil when the product has no category or the reference dangles.
type Product struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Price        float64   `json:"price"`
	Barcode      *string   `json:"barcode"`
	CategoryID   *string   `json:"category_id"`
	Stock        int       `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
	CategoryName *string   `json:"category_name,omitempty"`
}
