package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

// GetCart returns the current user's cart lines
func (c *Client) GetCart(ctx context.Context) ([]mallmodel.CartItem, error) {
	var body dataResponse[[]mallmodel.CartItem]
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/cart",
		auth:     true,
		strict:   true,
		fallback: "failed to fetch cart",
	}, &body)
	if err != nil {
		return nil, err
	}
	if body.Data == nil {
		return []mallmodel.CartItem{}, nil
	}
	return body.Data, nil
}

// AddCartItem adds quantity of a product; an existing line for the product
// has its quantity increased
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/cart",
		body:     mallmodel.AddCartItemRequest{ProductID: productID, Quantity: quantity},
		auth:     true,
		strict:   true,
		fallback: "failed to add item to cart",
	}, nil)
}

func (c *Client) UpdateCartItemQuantity(ctx context.Context, cartID int64, quantity int) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/cart/%d", cartID),
		body:     mallmodel.UpdateQuantityRequest{Quantity: quantity},
		auth:     true,
		strict:   true,
		fallback: "failed to update cart item quantity",
	}, nil)
}

func (c *Client) DeleteCartItem(ctx context.Context, cartID int64) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/cart/%d", cartID),
		auth:     true,
		strict:   true,
		fallback: "failed to remove cart item",
	}, nil)
}
