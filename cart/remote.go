package cart

import (
	"context"

	"github.com/jrsteele09/go-mall-client/api"
	"github.com/jrsteele09/go-mall-client/mallmodel"
)

// Remote is the slice of the mall API the cart depends on
type Remote interface {
	GetCart(ctx context.Context) ([]mallmodel.CartItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) error
	UpdateCartItemQuantity(ctx context.Context, cartID int64, quantity int) error
	DeleteCartItem(ctx context.Context, cartID int64) error
	CreateOrder(ctx context.Context, draft mallmodel.OrderDraft) (int64, error)
}

var _ Remote = (*api.Client)(nil)
