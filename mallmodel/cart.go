package mallmodel

// CartItem is one line of the remote shopping cart. CartID identifies the line
// for update and delete and is distinct from ProductID.
type CartItem struct {
	CartID        int64   `json:"cart_id"`
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
}

// Subtotal is the line's unit price multiplied by its quantity
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}

// ExceedsStock reports whether the quantity is above the stock seen at the last fetch.
// The server remains authoritative; this is advisory for display.
func (c CartItem) ExceedsStock() bool {
	return c.Quantity > c.StockQuantity
}

// AddCartItemRequest is the body for POST /cart
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantityRequest is the body for PUT /cart/{cartId}
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
