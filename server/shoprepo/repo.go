package shoprepo

import (
	"time"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

// Repo is the catalog, cart and order storage behind the development API
type Repo interface {
	ListProducts() ([]mallmodel.Product, error)
	GetProduct(id int64) (mallmodel.Product, error)
	CreateProduct(input mallmodel.ProductInput) (mallmodel.Product, error)
	UpdateProduct(id int64, input mallmodel.ProductInput) (mallmodel.Product, error)
	DeleteProduct(id int64) error

	// CartItems returns a customer's lines joined with current product data
	CartItems(customerID int64) ([]mallmodel.CartItem, error)
	// AddCartItem adds to the customer's line for productID, creating it if needed
	AddCartItem(customerID, productID int64, quantity int) error
	UpdateCartQuantity(customerID, cartID int64, quantity int) error
	RemoveCartItem(customerID, cartID int64) error

	// CreateOrder turns the named cart lines into an order in one step: stock
	// is reduced and the lines are removed, or nothing changes.
	CreateOrder(customerID int64, shippingAddress string, cartIDs []int64, at time.Time) (mallmodel.Order, error)
	OrdersByCustomer(customerID int64) ([]mallmodel.Order, error)
	AllOrders() ([]mallmodel.Order, error)
	GetOrder(id int64) (mallmodel.Order, error)
	UpdateOrderStatus(id int64, status mallmodel.OrderStatus) error
	DeleteOrder(id int64) error
}
