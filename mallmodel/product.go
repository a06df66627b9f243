// Package mallmodel holds the wire types exchanged with the mall API.
package mallmodel

// Product is a catalog entry as returned by GET /product and GET /product/{id}
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

// ProductInput is the body for product create and update (administrator only)
type ProductInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}
