package cli

import (
	"strings"

	"github.com/jrsteele09/go-mall-client/internal/output"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/spf13/cobra"
)

func newCartCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "cart",
		Short:       "Manage the shopping cart",
		Annotations: routeOf(navigation.RouteCart),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCart(cmd, a)
		},
	}

	show := &cobra.Command{
		Use:         "show",
		Short:       "Show the cart lines and totals",
		Annotations: routeOf(navigation.RouteCart),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCart(cmd, a)
		},
	}

	var qty int
	add := &cobra.Command{
		Use:         "add <product-id>",
		Short:       "Add a product to the cart",
		Annotations: routeOf(navigation.RouteCart),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			if qty < 1 {
				return errUsage("--qty must be at least 1")
			}
			if !a.Cart.AddToCart(cmd.Context(), productID, qty) {
				return a.cartFailure("could not add to cart")
			}
			a.Printer.Success("added %d of product %d, the cart now holds %d item(s)", qty, productID, a.Cart.TotalItems())
			return nil
		},
	}
	add.Flags().IntVarP(&qty, "qty", "n", 1, "quantity to add")

	update := &cobra.Command{
		Use:         "update <cart-id> <quantity>",
		Short:       "Change the quantity of a cart line",
		Annotations: routeOf(navigation.RouteCart),
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cartID, err := parseID(args[0], "cart line")
			if err != nil {
				return err
			}
			quantity, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			if !a.Cart.UpdateCartItemQuantity(cmd.Context(), cartID, quantity) {
				return a.cartFailure("could not update cart line")
			}
			a.Printer.Success("cart line %d set to %d", cartID, quantity)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:         "remove <cart-id>...",
		Aliases:     []string{"rm"},
		Short:       "Remove cart lines",
		Annotations: routeOf(navigation.RouteCart),
		Args:        cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "cart line")
			if err != nil {
				return err
			}
			for _, id := range ids {
				if !a.Cart.RemoveCartItem(cmd.Context(), id) {
					return a.cartFailure("could not remove cart line " + itoa(id))
				}
				a.Printer.Success("removed cart line %d", id)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:         "clear",
		Short:       "Remove every cart line",
		Annotations: routeOf(navigation.RouteCart),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.Cart.FetchCartItems(cmd.Context()) {
				return a.cartFailure("could not load cart")
			}
			if len(a.Cart.Items()) == 0 {
				a.Printer.Info("the cart is already empty")
				return nil
			}
			remaining, ok := a.Cart.ClearCart(cmd.Context())
			if !ok {
				cerr := a.cartFailure("could not clear cart")
				if len(remaining) > 0 {
					cerr.Suggestion = "still in the cart: " + joinIDs(remaining)
				}
				return cerr
			}
			a.Printer.Success("cart cleared")
			return nil
		},
	}

	var address string
	checkout := &cobra.Command{
		Use:         "checkout",
		Short:       "Order everything in the cart",
		Annotations: routeOf(navigation.RouteCart),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			address = strings.TrimSpace(address)
			if address == "" {
				return errUsage("--address is required")
			}
			if !a.Cart.FetchCartItems(cmd.Context()) {
				return a.cartFailure("could not load cart")
			}
			if len(a.Cart.Items()) == 0 {
				return errUsage("the cart is empty")
			}
			total := a.Cart.TotalPrice()

			outcome, ok := a.Cart.CreateOrder(cmd.Context(), address)
			if !ok {
				return a.cartFailure("could not place order")
			}
			a.Printer.Success("order %d placed, total %s", outcome.OrderID, output.Money(total))
			if len(outcome.Remaining) > 0 {
				a.Printer.Warning("some ordered lines are still in the cart: %s", joinIDs(outcome.Remaining))
			}
			return nil
		},
	}
	checkout.Flags().StringVar(&address, "address", "", "shipping address")

	cmd.AddCommand(show, add, update, remove, clearCmd, checkout)
	return cmd
}

func showCart(cmd *cobra.Command, a *App) error {
	if !a.Cart.FetchCartItems(cmd.Context()) {
		return a.cartFailure("could not load cart")
	}
	items := a.Cart.Items()
	if len(items) == 0 {
		a.Printer.Info("the cart is empty")
		return nil
	}

	table := a.Printer.NewTable("line", "product", "name", "price", "qty", "stock", "subtotal")
	for _, item := range items {
		table.AddRow(
			itoa(item.CartID),
			itoa(item.ProductID),
			item.Name,
			output.Money(item.Price),
			itoa(int64(item.Quantity)),
			a.Printer.StockBadge(item.StockQuantity, item.Quantity),
			output.Money(item.Subtotal()),
		)
	}
	if err := table.Render(); err != nil {
		return err
	}
	a.Printer.Print("%s item(s), total %s", a.Printer.Bold(itoa(int64(a.Cart.TotalItems()))), a.Printer.Bold(output.Money(a.Cart.TotalPrice())))
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = itoa(id)
	}
	return strings.Join(parts, ", ")
}
