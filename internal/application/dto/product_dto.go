package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MinStock    int64  `json:"min_stock"`
	UnitCost    string `json:"unit_cost"` // decimal como string, p. ej. "12.50"
}

// ProductDTO un producto del catálogo.
type ProductDTO struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StockOnHand int64     `json:"stock_on_hand"`
	MinStock    int64     `json:"min_stock"`
	UnitCost    string    `json:"unit_cost"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
