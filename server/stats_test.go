package server

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/stretchr/testify/require"
)

func statsOrders() []mallmodel.Order {
	day := func(s string) time.Time {
		t, _ := time.Parse(dateLayout, s)
		return t.Add(10 * time.Hour)
	}
	return []mallmodel.Order{
		{ID: 1, TotalAmount: 10, OrderStatus: mallmodel.OrderPaid, OrderDate: day("2024-03-01"), Items: []mallmodel.OrderItem{
			{ProductID: 1, ProductName: "Mouse", PriceAtPurchase: 5, Quantity: 2},
		}},
		{ID: 2, TotalAmount: 20.01, OrderStatus: mallmodel.OrderPaid, OrderDate: day("2024-03-01"), Items: []mallmodel.OrderItem{
			{ProductID: 2, ProductName: "Keyboard", PriceAtPurchase: 20, Quantity: 1},
		}},
		{ID: 3, TotalAmount: 15, OrderStatus: mallmodel.OrderCancelled, OrderDate: day("2024-04-15"), Items: []mallmodel.OrderItem{
			{ProductID: 1, ProductName: "Mouse", PriceAtPurchase: 5, Quantity: 3},
		}},
	}
}

func TestDailySales(t *testing.T) {
	sales := dailySales(statsOrders(), "2024-03-01", "2024-04-15")
	require.Equal(t, []mallmodel.DailySales{
		{Date: "2024-03-01", Amount: 30.01},
		{Date: "2024-04-15", Amount: 15},
	}, sales)

	require.Empty(t, dailySales(statsOrders(), "2024-03-02", "2024-04-14"))
}

func TestMonthlySales(t *testing.T) {
	require.Equal(t, []mallmodel.MonthlySales{{Month: 3, Amount: 30.01}, {Month: 4, Amount: 15}}, monthlySales(statsOrders(), 2024))
	require.Empty(t, monthlySales(statsOrders(), 2023))
}

func TestTopSellingProducts(t *testing.T) {
	top := topSellingProducts(statsOrders(), 10)
	require.Equal(t, []mallmodel.TopSellingProduct{
		{ProductID: 1, ProductName: "Mouse", TotalQuantity: 5, TotalAmount: 25},
		{ProductID: 2, ProductName: "Keyboard", TotalQuantity: 1, TotalAmount: 20},
	}, top)

	require.Len(t, topSellingProducts(statsOrders(), 1), 1)
}

func TestOrderStatusStats(t *testing.T) {
	require.Equal(t, []mallmodel.OrderStatusStat{
		{Status: mallmodel.OrderPaid, Count: 2, Percentage: 66.67},
		{Status: mallmodel.OrderCancelled, Count: 1, Percentage: 33.33},
	}, orderStatusStats(statsOrders()))

	require.Empty(t, orderStatusStats(nil))
}

func TestClampTopLimit(t *testing.T) {
	require.Equal(t, defaultTopProducts, clampTopLimit(0))
	require.Equal(t, defaultTopProducts, clampTopLimit(-4))
	require.Equal(t, 7, clampTopLimit(7))
	require.Equal(t, maxTopProducts, clampTopLimit(1000))
}
