package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-mall-client/api"
	"github.com/jrsteele09/go-mall-client/internal/output"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type statsFlags struct {
	from  string
	to    string
	year  int
	limit int
}

func (f *statsFlags) bindRange(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first day, YYYY-MM-DD (default: a week ago)")
	cmd.Flags().StringVar(&f.to, "to", "", "last day, YYYY-MM-DD (default: today)")
}

func (f *statsFlags) bindYear(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "calendar year (default: the current year)")
}

func (f *statsFlags) bindLimit(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", 10, "number of products, at most 100")
}

// dateRange checks that --from and --to are given together and in order
func (f *statsFlags) dateRange() (string, string, error) {
	if f.from == "" && f.to == "" {
		return "", "", nil
	}
	if f.from == "" || f.to == "" {
		return "", "", errUsage("--from and --to must be given together")
	}
	start, err := time.Parse(dateLayout, f.from)
	if err != nil {
		return "", "", errUsage("invalid --from date %q, expected YYYY-MM-DD", f.from)
	}
	end, err := time.Parse(dateLayout, f.to)
	if err != nil {
		return "", "", errUsage("invalid --to date %q, expected YYYY-MM-DD", f.to)
	}
	if end.Before(start) {
		return "", "", errUsage("--to is before --from")
	}
	return f.from, f.to, nil
}

func newAdminStatsCmd(a *App) *cobra.Command {
	var flags statsFlags

	cmd := &cobra.Command{
		Use:         "stats",
		Short:       "Sales statistics",
		Annotations: routeOf(navigation.RouteAdminStats),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatsOverview(cmd, a, flags)
		},
	}

	overview := &cobra.Command{
		Use:         "overview",
		Short:       "Every statistic, fetched concurrently",
		Annotations: routeOf(navigation.RouteAdminStats),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatsOverview(cmd, a, flags)
		},
	}
	flags.bindRange(overview)
	flags.bindYear(overview)
	flags.bindLimit(overview)

	daily := &cobra.Command{
		Use:         "daily",
		Short:       "Revenue per day",
		Annotations: routeOf(navigation.RouteAdminStats),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := flags.dateRange()
			if err != nil {
				return err
			}
			rows, err := a.Client.DailySales(cmd.Context(), from, to)
			if err != nil {
				return apiFailure("could not load daily sales", err)
			}
			return renderDaily(a.Printer, rows)
		},
	}
	flags.bindRange(daily)

	monthly := &cobra.Command{
		Use:         "monthly",
		Short:       "Revenue per month",
		Annotations: routeOf(navigation.RouteAdminStats),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.Client.MonthlySales(cmd.Context(), flags.year)
			if err != nil {
				return apiFailure("could not load monthly sales", err)
			}
			return renderMonthly(a.Printer, rows)
		},
	}
	flags.bindYear(monthly)

	top := &cobra.Command{
		Use:         "top",
		Short:       "Best selling products",
		Annotations: routeOf(navigation.RouteAdminStats),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.Client.TopProducts(cmd.Context(), flags.limit)
			if err != nil {
				return apiFailure("could not load top products", err)
			}
			return renderTop(a.Printer, rows)
		},
	}
	flags.bindLimit(top)

	status := &cobra.Command{
		Use:         "status",
		Short:       "Order count per status",
		Annotations: routeOf(navigation.RouteAdminStats),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.Client.OrderStatusStats(cmd.Context())
			if err != nil {
				return apiFailure("could not load order status statistics", err)
			}
			return renderStatus(a.Printer, rows)
		},
	}

	cmd.AddCommand(overview, daily, monthly, top, status)
	return cmd
}

// fetchOverview loads the four statistics collections in parallel. The first
// failure cancels the remaining requests.
func fetchOverview(ctx context.Context, client *api.Client, flags statsFlags) (*mallmodel.StatsOverview, error) {
	from, to, err := flags.dateRange()
	if err != nil {
		return nil, err
	}

	var overview mallmodel.StatsOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := client.DailySales(gctx, from, to)
		if err != nil {
			return apiFailure("could not load daily sales", err)
		}
		overview.DailySales = rows
		return nil
	})
	g.Go(func() error {
		rows, err := client.MonthlySales(gctx, flags.year)
		if err != nil {
			return apiFailure("could not load monthly sales", err)
		}
		overview.MonthlySales = rows
		return nil
	})
	g.Go(func() error {
		rows, err := client.TopProducts(gctx, flags.limit)
		if err != nil {
			return apiFailure("could not load top products", err)
		}
		overview.TopSellingProducts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := client.OrderStatusStats(gctx)
		if err != nil {
			return apiFailure("could not load order status statistics", err)
		}
		overview.OrderStatusStats = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}

func showStatsOverview(cmd *cobra.Command, a *App, flags statsFlags) error {
	started := time.Now()
	overview, err := fetchOverview(cmd.Context(), a.Client, flags)
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(started)).Msg("statistics loaded")
	return renderOverview(a.Printer, overview)
}

// showDashboard uses the combined endpoint, which picks its own ranges
func showDashboard(cmd *cobra.Command, a *App) error {
	overview, err := a.Client.StatsOverview(cmd.Context())
	if err != nil {
		return apiFailure("could not load dashboard", err)
	}

	p := a.Printer
	var revenue float64
	for _, m := range overview.MonthlySales {
		revenue += m.Amount
	}
	var orders int
	for _, s := range overview.OrderStatusStats {
		orders += s.Count
	}
	p.Header("Dashboard")
	p.Print("orders:            %d", orders)
	p.Print("revenue this year: %s", p.Bold(output.Money(revenue)))
	if len(overview.TopSellingProducts) > 0 {
		best := overview.TopSellingProducts[0]
		p.Print("best seller:       %s (%d sold)", best.ProductName, best.TotalQuantity)
	}
	return renderOverview(p, overview)
}

func renderOverview(p *output.Printer, o *mallmodel.StatsOverview) error {
	p.Header("Daily sales")
	if err := renderDaily(p, o.DailySales); err != nil {
		return err
	}
	p.Header("Monthly sales")
	if err := renderMonthly(p, o.MonthlySales); err != nil {
		return err
	}
	p.Header("Top products")
	if err := renderTop(p, o.TopSellingProducts); err != nil {
		return err
	}
	p.Header("Orders by status")
	return renderStatus(p, o.OrderStatusStats)
}

func renderDaily(p *output.Printer, rows []mallmodel.DailySales) error {
	table := p.NewTable("date", "amount")
	var total float64
	for _, r := range rows {
		table.AddRow(r.Date, output.Money(r.Amount))
		total += r.Amount
	}
	if err := table.Render(); err != nil {
		return err
	}
	p.Print("total: %s", output.Money(total))
	return nil
}

func renderMonthly(p *output.Printer, rows []mallmodel.MonthlySales) error {
	table := p.NewTable("month", "amount")
	for _, r := range rows {
		name := fmt.Sprint(r.Month)
		if r.Month >= 1 && r.Month <= 12 {
			name = time.Month(r.Month).String()
		}
		table.AddRow(name, output.Money(r.Amount))
	}
	return table.Render()
}

func renderTop(p *output.Printer, rows []mallmodel.TopSellingProduct) error {
	if len(rows) == 0 {
		p.Info("no sales yet")
		return nil
	}
	table := p.NewTable("#", "product", "name", "sold", "revenue")
	for i, r := range rows {
		table.AddRow(fmt.Sprint(i+1), itoa(r.ProductID), r.ProductName, fmt.Sprint(r.TotalQuantity), output.Money(r.TotalAmount))
	}
	return table.Render()
}

func renderStatus(p *output.Printer, rows []mallmodel.OrderStatusStat) error {
	if len(rows) == 0 {
		p.Info("no orders yet")
		return nil
	}
	table := p.NewTable("status", "count", "share")
	for _, r := range rows {
		table.AddRow(p.StatusBadge(r.Status), fmt.Sprint(r.Count), fmt.Sprintf("%.2f%%", r.Percentage))
	}
	return table.Render()
}
