package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

// StatsOverview returns every statistics collection in one call
func (c *Client) StatsOverview(ctx context.Context) (*mallmodel.StatsOverview, error) {
	var body dataResponse[mallmodel.StatsOverview]
	if err := c.getStats(ctx, "/stats", nil, &body); err != nil {
		return nil, err
	}
	return &body.Data, nil
}

// DailySales returns revenue per day between startDate and endDate
// (YYYY-MM-DD, inclusive). Empty dates let the server pick its default range.
func (c *Client) DailySales(ctx context.Context, startDate, endDate string) ([]mallmodel.DailySales, error) {
	query := url.Values{}
	if startDate != "" && endDate != "" {
		query.Set("startDate", startDate)
		query.Set("endDate", endDate)
	}

	var body dataResponse[[]mallmodel.DailySales]
	if err := c.getStats(ctx, "/stats/daily", query, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// MonthlySales returns revenue per month of year; zero means the current year
func (c *Client) MonthlySales(ctx context.Context, year int) ([]mallmodel.MonthlySales, error) {
	query := url.Values{}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var body dataResponse[[]mallmodel.MonthlySales]
	if err := c.getStats(ctx, "/stats/monthly", query, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) TopProducts(ctx context.Context, limit int) ([]mallmodel.TopSellingProduct, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var body dataResponse[[]mallmodel.TopSellingProduct]
	if err := c.getStats(ctx, "/stats/top-products", query, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) OrderStatusStats(ctx context.Context) ([]mallmodel.OrderStatusStat, error) {
	var body dataResponse[[]mallmodel.OrderStatusStat]
	if err := c.getStats(ctx, "/stats/status", nil, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) getStats(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{
		method:   http.MethodGet,
		path:     path,
		query:    query,
		auth:     true,
		fallback: "failed to load statistics",
	}, out)
}
