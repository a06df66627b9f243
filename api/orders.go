package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

type createOrderResponse struct {
	OrderID int64 `json:"orderId"`
}

type ordersResponse struct {
	Orders []mallmodel.Order `json:"orders"`
}

type orderResponse struct {
	Order mallmodel.Order `json:"order"`
}

// CreateOrder submits a draft and returns the new order id. The server
// consumes the cart lines named in the draft.
func (c *Client) CreateOrder(ctx context.Context, draft mallmodel.OrderDraft) (int64, error) {
	var body createOrderResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/order",
		body:     draft,
		auth:     true,
		strict:   true,
		fallback: "failed to create order",
	}, &body)
	if err != nil {
		return 0, err
	}
	return body.OrderID, nil
}

// ListOrders returns the current user's orders
func (c *Client) ListOrders(ctx context.Context) ([]mallmodel.Order, error) {
	return c.listOrders(ctx, "/order")
}

// ListAllOrders returns every order (administrator only)
func (c *Client) ListAllOrders(ctx context.Context) ([]mallmodel.Order, error) {
	return c.listOrders(ctx, "/order/all")
}

func (c *Client) listOrders(ctx context.Context, path string) ([]mallmodel.Order, error) {
	var body ordersResponse
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     path,
		auth:     true,
		fallback: "failed to load orders",
	}, &body)
	if err != nil {
		return nil, err
	}
	return body.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*mallmodel.Order, error) {
	var body orderResponse
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/order/%d", id),
		auth:     true,
		fallback: "failed to load order",
	}, &body)
	if err != nil {
		return nil, err
	}
	return &body.Order, nil
}

// UpdateOrderStatus moves an order to status (administrator only)
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status mallmodel.OrderStatus) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/order/%d/status", id),
		body:     mallmodel.UpdateOrderStatusRequest{Status: status},
		auth:     true,
		strict:   true,
		fallback: "failed to update order status",
	}, nil)
}

// DeleteOrder removes an order (administrator only)
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/order/%d", id),
		auth:     true,
		strict:   true,
		fallback: "failed to delete order",
	}, nil)
}
