package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

func (s *Server) StatsOverviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.shop.AllOrders()
		if err != nil {
			writeDomainError(w, err, "failed to load statistics")
			return
		}
		now := s.now()
		writeSuccess(w, http.StatusOK, "", envelope{"data": mallmodel.StatsOverview{
			DailySales:         dailySales(orders, now.AddDate(0, 0, -(overviewDailyWindow-1)).Format(dateLayout), now.Format(dateLayout)),
			MonthlySales:       monthlySales(orders, now.Year()),
			TopSellingProducts: topSellingProducts(orders, defaultTopProducts),
			OrderStatusStats:   orderStatusStats(orders),
		}})
	}
}

// DailySalesHandler accepts startDate and endDate (YYYY-MM-DD) together, or
// neither for the last seven days
func (s *Server) DailySalesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startDate, endDate := r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate")
		if startDate == "" || endDate == "" {
			now := s.now()
			startDate = now.AddDate(0, 0, -(dailyWindow - 1)).Format(dateLayout)
			endDate = now.Format(dateLayout)
		}
		if _, err := time.Parse(dateLayout, startDate); err != nil {
			writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		if _, err := time.Parse(dateLayout, endDate); err != nil {
			writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}

		orders, err := s.shop.AllOrders()
		if err != nil {
			writeDomainError(w, err, "failed to load statistics")
			return
		}
		writeSuccess(w, http.StatusOK, "", envelope{
			"data":      dailySales(orders, startDate, endDate),
			"startDate": startDate,
			"endDate":   endDate,
		})
	}
}

func (s *Server) MonthlySalesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := s.now().Year()
		if raw := r.URL.Query().Get("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, http.StatusBadRequest, "year must be a positive number")
				return
			}
			year = parsed
		}

		orders, err := s.shop.AllOrders()
		if err != nil {
			writeDomainError(w, err, "failed to load statistics")
			return
		}
		writeSuccess(w, http.StatusOK, "", envelope{
			"data": monthlySales(orders, year),
			"year": year,
		})
	}
}

// TopProductsHandler ignores an unparsable limit and uses the default
func (s *Server) TopProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		limit = clampTopLimit(limit)

		orders, err := s.shop.AllOrders()
		if err != nil {
			writeDomainError(w, err, "failed to load statistics")
			return
		}
		writeSuccess(w, http.StatusOK, "", envelope{
			"data":  topSellingProducts(orders, limit),
			"limit": limit,
		})
	}
}

func (s *Server) OrderStatusStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.shop.AllOrders()
		if err != nil {
			writeDomainError(w, err, "failed to load statistics")
			return
		}
		writeSuccess(w, http.StatusOK, "", envelope{"data": orderStatusStats(orders)})
	}
}
