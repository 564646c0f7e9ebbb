package models

import "time"

// Purchase is a recorded delivery from a supplier. The supplier name is a
// snapshot string, not a foreign key: renaming or deleting a supplier later
// must not rewrite purchase history.
type Purchase struct {
	ID           int64          `json:"id" db:"id"`
	SupplierName string         `json:"supplier" db:"supplier_name"`
	Date         time.Time      `json:"date" db:"purchase_date"`
	TotalAmount  float64        `json:"total_amount" db:"total_amount"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	Items        []PurchaseItem `json:"items"`
}

// PurchaseItem is one line of a purchase. Product name, category name and
// unit price are snapshots taken at intake time.
type PurchaseItem struct {
	ID              int64   `json:"id" db:"id"`
	PurchaseID      int64   `json:"purchase_id" db:"purchase_id"`
	ProductName     string  `json:"product" db:"product_name"`
	ProductCategory string  `json:"product_category" db:"product_category"`
	Quantity        int     `json:"quantity" db:"quantity" binding:"required,gte=1"`
	UnitPrice       float64 `json:"unit_price" db:"unit_price"`
}

// PurchaseFilters defines the available filters for querying purchases.
// This struct is used by both the service and repository layers.
type PurchaseFilters struct {
	Supplier *string `form:"supplier"`
	Date     *string `form:"date"` // Expected format YYYY-MM-DD
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// PurchaseAggregate is one row of a purchase report, e.g. total quantity
// bought per product or purchase count per category.
type PurchaseAggregate struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}
