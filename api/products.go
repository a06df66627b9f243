package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

type dataResponse[T any] struct {
	Data T `json:"data"`
}

// ListProducts returns the public catalog
func (c *Client) ListProducts(ctx context.Context) ([]mallmodel.Product, error) {
	var body dataResponse[[]mallmodel.Product]
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/product",
		fallback: "failed to load products",
	}, &body)
	if err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*mallmodel.Product, error) {
	var body dataResponse[mallmodel.Product]
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/product/%d", id),
		fallback: "product not found",
	}, &body)
	if err != nil {
		return nil, err
	}
	return &body.Data, nil
}

// CreateProduct adds a catalog entry (administrator only)
func (c *Client) CreateProduct(ctx context.Context, input mallmodel.ProductInput) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/product",
		body:     input,
		auth:     true,
		strict:   true,
		fallback: "failed to add product",
	}, nil)
}

// UpdateProduct replaces a catalog entry (administrator only)
func (c *Client) UpdateProduct(ctx context.Context, id int64, input mallmodel.ProductInput) error {
	return c.do(ctx, request{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/product/%d", id),
		body:     input,
		auth:     true,
		strict:   true,
		fallback: "failed to update product",
	}, nil)
}

// DeleteProduct removes a catalog entry (administrator only)
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/product/%d", id),
		auth:     true,
		strict:   true,
		fallback: "failed to delete product",
	}, nil)
}
