package mallmodel

import (
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every known status in lifecycle order
var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled}

// ParseOrderStatus validates a status string, accepting any letter case
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, status := range OrderStatuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}
	return "", false
}

// OrderDraft is the transient order-creation request derived from the cart
type OrderDraft struct {
	ShippingAddress string  `json:"shippingAddress"`
	CartItemIDs     []int64 `json:"cartItemIds"`
}

type OrderItem struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"orderId"`
	ProductID       int64   `json:"productId"`
	ProductName     string  `json:"productName"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
	Quantity        int     `json:"quantity"`
}

type Order struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customerId"`
	CustomerName    string      `json:"customerName,omitempty"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress"`
	OrderStatus     OrderStatus `json:"orderStatus"`
	OrderDate       time.Time   `json:"orderDate"`
	Items           []OrderItem `json:"items"`
}

// UpdateOrderStatusRequest is the body for PUT /order/{id}/status
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
