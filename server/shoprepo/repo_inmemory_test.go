package shoprepo_test

import (
	"testing"
	"time"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/server/shoprepo"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*shoprepo.InMemoryShopRepo, mallmodel.Product, mallmodel.Product) {
	t.Helper()
	repo := shoprepo.NewInMemoryShopRepo()
	pen, err := repo.CreateProduct(mallmodel.ProductInput{Name: "Pen", Price: 1.5, StockQuantity: 10})
	require.NoError(t, err)
	ink, err := repo.CreateProduct(mallmodel.ProductInput{Name: "Ink", Price: 4, StockQuantity: 2})
	require.NoError(t, err)
	return repo, pen, ink
}

func TestCreateProduct_Validation(t *testing.T) {
	repo := shoprepo.NewInMemoryShopRepo()

	_, err := repo.CreateProduct(mallmodel.ProductInput{Name: "  ", Price: 1})
	require.ErrorIs(t, err, mallerrors.ErrInvalidInput)

	p, err := repo.CreateProduct(mallmodel.ProductInput{Name: "Free", Price: -2, StockQuantity: -1})
	require.NoError(t, err)
	require.Zero(t, p.Price)
	require.Zero(t, p.StockQuantity)
}

func TestAddCartItem(t *testing.T) {
	repo, pen, ink := newRepo(t)

	require.NoError(t, repo.AddCartItem(1, pen.ID, 4))
	require.NoError(t, repo.AddCartItem(1, pen.ID, 6))
	require.ErrorIs(t, repo.AddCartItem(1, pen.ID, 1), mallerrors.ErrInsufficientStock)
	require.ErrorIs(t, repo.AddCartItem(1, ink.ID, 3), mallerrors.ErrInsufficientStock)
	require.ErrorIs(t, repo.AddCartItem(1, 99, 1), mallerrors.ErrProductNotFound)
	require.ErrorIs(t, repo.AddCartItem(1, pen.ID, 0), mallerrors.ErrInvalidInput)

	items, err := repo.CartItems(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 10, items[0].Quantity)
	require.Equal(t, "Pen", items[0].Name)

	other, err := repo.CartItems(2)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestCartLinesAreOwned(t *testing.T) {
	repo, pen, _ := newRepo(t)
	require.NoError(t, repo.AddCartItem(1, pen.ID, 1))
	items, err := repo.CartItems(1)
	require.NoError(t, err)

	require.ErrorIs(t, repo.UpdateCartQuantity(2, items[0].CartID, 2), mallerrors.ErrCartItemNotFound)
	require.ErrorIs(t, repo.RemoveCartItem(2, items[0].CartID), mallerrors.ErrCartItemNotFound)
	require.NoError(t, repo.RemoveCartItem(1, items[0].CartID))
}

func TestCreateOrder(t *testing.T) {
	repo, pen, ink := newRepo(t)
	require.NoError(t, repo.AddCartItem(1, pen.ID, 3))
	require.NoError(t, repo.AddCartItem(1, ink.ID, 1))
	require.NoError(t, repo.AddCartItem(2, pen.ID, 1))
	items, err := repo.CartItems(1)
	require.NoError(t, err)
	foreign, err := repo.CartItems(2)
	require.NoError(t, err)

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	order, err := repo.CreateOrder(1, "1 Main St", []int64{items[0].CartID, foreign[0].CartID}, at)
	require.NoError(t, err)
	require.Equal(t, mallmodel.OrderPending, order.OrderStatus)
	require.Equal(t, at, order.OrderDate)
	require.Len(t, order.Items, 1)
	require.InDelta(t, 4.5, order.TotalAmount, 1e-9)

	p, err := repo.GetProduct(pen.ID)
	require.NoError(t, err)
	require.Equal(t, 7, p.StockQuantity)

	left, err := repo.CartItems(1)
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, ink.ID, left[0].ProductID)

	stillForeign, err := repo.CartItems(2)
	require.NoError(t, err)
	require.Len(t, stillForeign, 1, "another customer's line is never consumed")
}

func TestCreateOrder_InsufficientStockChangesNothing(t *testing.T) {
	repo, pen, ink := newRepo(t)
	require.NoError(t, repo.AddCartItem(1, pen.ID, 2))
	require.NoError(t, repo.AddCartItem(1, ink.ID, 2))
	_, err := repo.UpdateProduct(ink.ID, mallmodel.ProductInput{Name: "Ink", Price: 4, StockQuantity: 1})
	require.NoError(t, err)

	items, err := repo.CartItems(1)
	require.NoError(t, err)
	_, err = repo.CreateOrder(1, "1 Main St", []int64{items[0].CartID, items[1].CartID}, time.Now())
	require.ErrorIs(t, err, mallerrors.ErrInsufficientStock)

	p, err := repo.GetProduct(pen.ID)
	require.NoError(t, err)
	require.Equal(t, 10, p.StockQuantity)

	after, err := repo.CartItems(1)
	require.NoError(t, err)
	require.Len(t, after, 2)

	orders, err := repo.AllOrders()
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrder_RequiresAddressAndLines(t *testing.T) {
	repo, _, _ := newRepo(t)
	_, err := repo.CreateOrder(1, " ", []int64{1}, time.Now())
	require.ErrorIs(t, err, mallerrors.ErrInvalidInput)
	_, err = repo.CreateOrder(1, "somewhere", []int64{42}, time.Now())
	require.ErrorIs(t, err, mallerrors.ErrInvalidInput)
}

func TestDeleteProductDropsCartLines(t *testing.T) {
	repo, pen, _ := newRepo(t)
	require.NoError(t, repo.AddCartItem(1, pen.ID, 1))
	require.NoError(t, repo.DeleteProduct(pen.ID))

	items, err := repo.CartItems(1)
	require.NoError(t, err)
	require.Empty(t, items)
	require.ErrorIs(t, repo.DeleteProduct(pen.ID), mallerrors.ErrProductNotFound)
}

func TestOrdersNewestFirst(t *testing.T) {
	repo, pen, _ := newRepo(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddCartItem(1, pen.ID, 1))
		items, err := repo.CartItems(1)
		require.NoError(t, err)
		_, err = repo.CreateOrder(1, "addr", []int64{items[0].CartID}, base.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	orders, err := repo.OrdersByCustomer(1)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, int64(3), orders[0].ID)

	require.NoError(t, repo.UpdateOrderStatus(1, mallmodel.OrderDelivered))
	require.ErrorIs(t, repo.UpdateOrderStatus(1, "LOST"), mallerrors.ErrInvalidInput)
	require.ErrorIs(t, repo.UpdateOrderStatus(9, mallmodel.OrderPaid), mallerrors.ErrOrderNotFound)

	require.NoError(t, repo.DeleteOrder(2))
	_, err = repo.GetOrder(2)
	require.ErrorIs(t, err, mallerrors.ErrOrderNotFound)
}
