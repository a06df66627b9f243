package mallmodel

// DailySales is the revenue for a single calendar day (date formatted YYYY-MM-DD)
type DailySales struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// MonthlySales is the revenue for a month (1-12) of the requested year
type MonthlySales struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

type TopSellingProduct struct {
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalAmount   float64 `json:"totalAmount"`
}

type OrderStatusStat struct {
	Status     OrderStatus `json:"status"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// StatsOverview is the combined body of GET /stats
type StatsOverview struct {
	DailySales         []DailySales        `json:"dailySales"`
	MonthlySales       []MonthlySales      `json:"monthlySales"`
	TopSellingProducts []TopSellingProduct `json:"topSellingProducts"`
	OrderStatusStats   []OrderStatusStat   `json:"orderStatusStats"`
}
