package cli

import (
	"time"

	"github.com/jrsteele09/go-mall-client/internal/output"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/spf13/cobra"
)

func newOrdersCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "orders",
		Aliases:     []string{"order"},
		Short:       "Review your orders",
		Annotations: routeOf(navigation.RouteOrders),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMyOrders(cmd, a)
		},
	}

	list := &cobra.Command{
		Use:         "list",
		Short:       "List your orders, newest first",
		Annotations: routeOf(navigation.RouteOrders),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMyOrders(cmd, a)
		},
	}

	show := &cobra.Command{
		Use:         "show <order-id>",
		Short:       "Show an order and its items",
		Annotations: routeOf(navigation.RouteOrders),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showOrder(cmd, a, args[0])
		},
	}

	del := &cobra.Command{
		Use:         "delete <order-id>",
		Short:       "Delete one of your orders",
		Annotations: routeOf(navigation.RouteOrders),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteOrder(cmd, a, args[0])
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}

func listMyOrders(cmd *cobra.Command, a *App) error {
	orders, err := a.Client.ListOrders(cmd.Context())
	if err != nil {
		return apiFailure("could not load orders", err)
	}
	return renderOrders(a.Printer, orders, false)
}

func renderOrders(p *output.Printer, orders []mallmodel.Order, withCustomer bool) error {
	if len(orders) == 0 {
		p.Info("no orders yet")
		return nil
	}

	headers := []string{"id", "date", "status", "items", "total"}
	if withCustomer {
		headers = append(headers, "customer")
	}
	table := p.NewTable(headers...)
	for _, o := range orders {
		row := []string{
			itoa(o.ID),
			o.OrderDate.Local().Format(time.DateTime),
			p.StatusBadge(o.OrderStatus),
			itoa(int64(len(o.Items))),
			output.Money(o.TotalAmount),
		}
		if withCustomer {
			row = append(row, orDash(o.CustomerName))
		}
		table.AddRow(row...)
	}
	return table.Render()
}

func showOrder(cmd *cobra.Command, a *App, arg string) error {
	id, err := parseID(arg, "order")
	if err != nil {
		return err
	}
	order, err := a.Client.GetOrder(cmd.Context(), id)
	if err != nil {
		return apiFailure("could not load order", err)
	}

	p := a.Printer
	p.Header("Order " + itoa(order.ID))
	p.Print("status:   %s", p.StatusBadge(order.OrderStatus))
	p.Print("placed:   %s", order.OrderDate.Local().Format(time.DateTime))
	p.Print("ship to:  %s", orDash(order.ShippingAddress))
	if order.CustomerName != "" {
		p.Print("customer: %s", order.CustomerName)
	}

	table := p.NewTable("product", "name", "price", "qty", "subtotal")
	for _, item := range order.Items {
		table.AddRow(
			itoa(item.ProductID),
			item.ProductName,
			output.Money(item.PriceAtPurchase),
			itoa(int64(item.Quantity)),
			output.Money(item.PriceAtPurchase*float64(item.Quantity)),
		)
	}
	if err := table.Render(); err != nil {
		return err
	}
	p.Print("total: %s", p.Bold(output.Money(order.TotalAmount)))
	return nil
}

func deleteOrder(cmd *cobra.Command, a *App, arg string) error {
	id, err := parseID(arg, "order")
	if err != nil {
		return err
	}
	if err := a.Client.DeleteOrder(cmd.Context(), id); err != nil {
		return apiFailure("could not delete order", err)
	}
	a.Printer.Success("order %d deleted", id)
	return nil
}
