package shoprepo

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
)

var _ Repo = (*InMemoryShopRepo)(nil)

type cartLine struct {
	id         int64
	customerID int64
	productID  int64
	quantity   int
}

// InMemoryShopRepo keeps everything in maps guarded by a single lock so that
// order creation can touch stock, carts and orders atomically
type InMemoryShopRepo struct {
	mu       sync.RWMutex
	products map[int64]mallmodel.Product
	lines    map[int64]cartLine // cartID -> line
	orders   map[int64]mallmodel.Order

	nextProductID int64
	nextCartID    int64
	nextOrderID   int64
	nextItemID    int64
}

func NewInMemoryShopRepo() *InMemoryShopRepo {
	return &InMemoryShopRepo{
		products:      make(map[int64]mallmodel.Product),
		lines:         make(map[int64]cartLine),
		orders:        make(map[int64]mallmodel.Order),
		nextProductID: 1,
		nextCartID:    1,
		nextOrderID:   1,
		nextItemID:    1,
	}
}

func validateProduct(input mallmodel.ProductInput) (mallmodel.ProductInput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return input, fmt.Errorf("product name is required: %w", mallerrors.ErrInvalidInput)
	}
	if input.Price < 0 {
		input.Price = 0
	}
	if input.StockQuantity < 0 {
		input.StockQuantity = 0
	}
	return input, nil
}

func (r *InMemoryShopRepo) ListProducts() ([]mallmodel.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]mallmodel.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *InMemoryShopRepo) GetProduct(id int64) (mallmodel.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return mallmodel.Product{}, mallerrors.ErrProductNotFound
	}
	return p, nil
}

func (r *InMemoryShopRepo) CreateProduct(input mallmodel.ProductInput) (mallmodel.Product, error) {
	input, err := validateProduct(input)
	if err != nil {
		return mallmodel.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := mallmodel.Product{
		ID:            r.nextProductID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		ImageURL:      input.ImageURL,
	}
	r.nextProductID++
	r.products[p.ID] = p
	return p, nil
}

func (r *InMemoryShopRepo) UpdateProduct(id int64, input mallmodel.ProductInput) (mallmodel.Product, error) {
	input, err := validateProduct(input)
	if err != nil {
		return mallmodel.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return mallmodel.Product{}, mallerrors.ErrProductNotFound
	}
	p := mallmodel.Product{
		ID:            id,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		ImageURL:      input.ImageURL,
	}
	r.products[id] = p
	return p, nil
}

// DeleteProduct removes the product and every cart line that refers to it.
// Past orders keep their copied name and price.
func (r *InMemoryShopRepo) DeleteProduct(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return mallerrors.ErrProductNotFound
	}
	delete(r.products, id)
	for cartID, line := range r.lines {
		if line.productID == id {
			delete(r.lines, cartID)
		}
	}
	return nil
}

func (r *InMemoryShopRepo) CartItems(customerID int64) ([]mallmodel.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []mallmodel.CartItem{}
	for _, line := range r.lines {
		if line.customerID != customerID {
			continue
		}
		p, ok := r.products[line.productID]
		if !ok {
			continue
		}
		items = append(items, mallmodel.CartItem{
			CartID:        line.id,
			ProductID:     p.ID,
			Name:          p.Name,
			Price:         p.Price,
			Quantity:      line.quantity,
			ImageURL:      p.ImageURL,
			StockQuantity: p.StockQuantity,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CartID < items[j].CartID })
	return items, nil
}

func (r *InMemoryShopRepo) AddCartItem(customerID, productID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", mallerrors.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return mallerrors.ErrProductNotFound
	}

	for cartID, line := range r.lines {
		if line.customerID == customerID && line.productID == productID {
			if line.quantity+quantity > p.StockQuantity {
				return mallerrors.ErrInsufficientStock
			}
			line.quantity += quantity
			r.lines[cartID] = line
			return nil
		}
	}

	if quantity > p.StockQuantity {
		return mallerrors.ErrInsufficientStock
	}
	r.lines[r.nextCartID] = cartLine{
		id:         r.nextCartID,
		customerID: customerID,
		productID:  productID,
		quantity:   quantity,
	}
	r.nextCartID++
	return nil
}

func (r *InMemoryShopRepo) UpdateCartQuantity(customerID, cartID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", mallerrors.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.lines[cartID]
	if !ok || line.customerID != customerID {
		return mallerrors.ErrCartItemNotFound
	}
	if p, ok := r.products[line.productID]; ok && quantity > p.StockQuantity {
		return mallerrors.ErrInsufficientStock
	}
	line.quantity = quantity
	r.lines[cartID] = line
	return nil
}

func (r *InMemoryShopRepo) RemoveCartItem(customerID, cartID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.lines[cartID]
	if !ok || line.customerID != customerID {
		return mallerrors.ErrCartItemNotFound
	}
	delete(r.lines, cartID)
	return nil
}

func (r *InMemoryShopRepo) CreateOrder(customerID int64, shippingAddress string, cartIDs []int64, at time.Time) (mallmodel.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" || len(cartIDs) == 0 {
		return mallmodel.Order{}, fmt.Errorf("shipping address and cart items are required: %w", mallerrors.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order := mallmodel.Order{
		ID:              r.nextOrderID,
		CustomerID:      customerID,
		ShippingAddress: shippingAddress,
		OrderStatus:     mallmodel.OrderPending,
		OrderDate:       at,
	}

	// Validate everything before changing anything
	var consumed []int64
	for _, cartID := range cartIDs {
		line, ok := r.lines[cartID]
		if !ok || line.customerID != customerID || slices.Contains(consumed, cartID) {
			continue
		}
		p, ok := r.products[line.productID]
		if !ok {
			continue
		}
		if line.quantity > p.StockQuantity {
			return mallmodel.Order{}, fmt.Errorf("%s: %w", p.Name, mallerrors.ErrInsufficientStock)
		}
		order.Items = append(order.Items, mallmodel.OrderItem{
			OrderID:         order.ID,
			ProductID:       p.ID,
			ProductName:     p.Name,
			PriceAtPurchase: p.Price,
			Quantity:        line.quantity,
		})
		order.TotalAmount += p.Price * float64(line.quantity)
		consumed = append(consumed, cartID)
	}
	if len(order.Items) == 0 {
		return mallmodel.Order{}, fmt.Errorf("selected cart items are invalid: %w", mallerrors.ErrInvalidInput)
	}

	for i := range order.Items {
		order.Items[i].ID = r.nextItemID
		r.nextItemID++

		p := r.products[order.Items[i].ProductID]
		p.StockQuantity -= order.Items[i].Quantity
		r.products[p.ID] = p
	}
	for _, cartID := range consumed {
		delete(r.lines, cartID)
	}

	r.nextOrderID++
	r.orders[order.ID] = order
	return cloneOrder(order), nil
}

func (r *InMemoryShopRepo) OrdersByCustomer(customerID int64) ([]mallmodel.Order, error) {
	return r.filterOrders(func(o mallmodel.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *InMemoryShopRepo) AllOrders() ([]mallmodel.Order, error) {
	return r.filterOrders(func(mallmodel.Order) bool { return true }), nil
}

// filterOrders returns matching orders, newest first
func (r *InMemoryShopRepo) filterOrders(match func(mallmodel.Order) bool) []mallmodel.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []mallmodel.Order{}
	for _, o := range r.orders {
		if match(o) {
			orders = append(orders, cloneOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders
}

func (r *InMemoryShopRepo) GetOrder(id int64) (mallmodel.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return mallmodel.Order{}, mallerrors.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *InMemoryShopRepo) UpdateOrderStatus(id int64, status mallmodel.OrderStatus) error {
	if _, ok := mallmodel.ParseOrderStatus(string(status)); !ok {
		return fmt.Errorf("unknown order status %q: %w", status, mallerrors.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return mallerrors.ErrOrderNotFound
	}
	o.OrderStatus = status
	r.orders[id] = o
	return nil
}

func (r *InMemoryShopRepo) DeleteOrder(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return mallerrors.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func cloneOrder(o mallmodel.Order) mallmodel.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
