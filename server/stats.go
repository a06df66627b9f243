package server

import (
	"math"
	"sort"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

const (
	dateLayout          = "2006-01-02"
	defaultTopProducts  = 10
	maxTopProducts      = 100
	overviewDailyWindow = 30
	dailyWindow         = 7
)

// dailySales sums order totals per calendar day between startDate and
// endDate inclusive (YYYY-MM-DD). Days without orders are omitted.
func dailySales(orders []mallmodel.Order, startDate, endDate string) []mallmodel.DailySales {
	totals := map[string]float64{}
	for _, o := range orders {
		day := o.OrderDate.Format(dateLayout)
		if day < startDate || day > endDate {
			continue
		}
		totals[day] += o.TotalAmount
	}

	sales := make([]mallmodel.DailySales, 0, len(totals))
	for day, amount := range totals {
		sales = append(sales, mallmodel.DailySales{Date: day, Amount: roundCents(amount)})
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Date < sales[j].Date })
	return sales
}

func monthlySales(orders []mallmodel.Order, year int) []mallmodel.MonthlySales {
	totals := map[int]float64{}
	for _, o := range orders {
		if o.OrderDate.Year() != year {
			continue
		}
		totals[int(o.OrderDate.Month())] += o.TotalAmount
	}

	sales := make([]mallmodel.MonthlySales, 0, len(totals))
	for month, amount := range totals {
		sales = append(sales, mallmodel.MonthlySales{Month: month, Amount: roundCents(amount)})
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].Month < sales[j].Month })
	return sales
}

// topSellingProducts ranks products by units sold across all orders
func topSellingProducts(orders []mallmodel.Order, limit int) []mallmodel.TopSellingProduct {
	byProduct := map[int64]*mallmodel.TopSellingProduct{}
	for _, o := range orders {
		for _, item := range o.Items {
			p, ok := byProduct[item.ProductID]
			if !ok {
				p = &mallmodel.TopSellingProduct{ProductID: item.ProductID, ProductName: item.ProductName}
				byProduct[item.ProductID] = p
			}
			p.TotalQuantity += item.Quantity
			p.TotalAmount += item.PriceAtPurchase * float64(item.Quantity)
		}
	}

	top := make([]mallmodel.TopSellingProduct, 0, len(byProduct))
	for _, p := range byProduct {
		p.TotalAmount = roundCents(p.TotalAmount)
		top = append(top, *p)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].TotalQuantity == top[j].TotalQuantity {
			return top[i].ProductID < top[j].ProductID
		}
		return top[i].TotalQuantity > top[j].TotalQuantity
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// orderStatusStats counts orders per status in enumeration order. Statuses
// with no orders are omitted.
func orderStatusStats(orders []mallmodel.Order) []mallmodel.OrderStatusStat {
	counts := map[mallmodel.OrderStatus]int{}
	for _, o := range orders {
		counts[o.OrderStatus]++
	}

	stats := []mallmodel.OrderStatusStat{}
	for _, status := range mallmodel.OrderStatuses {
		if counts[status] == 0 {
			continue
		}
		stats = append(stats, mallmodel.OrderStatusStat{
			Status:     status,
			Count:      counts[status],
			Percentage: roundCents(float64(counts[status]) * 100 / float64(len(orders))),
		})
	}
	return stats
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampTopLimit applies the default and ceiling to a requested ranking size
func clampTopLimit(limit int) int {
	if limit <= 0 {
		return defaultTopProducts
	}
	return min(limit, maxTopProducts)
}
