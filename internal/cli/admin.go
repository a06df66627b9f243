package cli

import (
	"strings"

	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/spf13/cobra"
)

func newAdminCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator pages: catalog, orders and statistics",
		Long: `Administrator pages. Every subcommand requires a session with
administrator privileges.

Example usage:
  mallctl admin                          # Dashboard
  mallctl admin products add --name Mug --price 4.5 --stock 20
  mallctl admin orders status 12 shipped
  mallctl admin stats daily --from 2026-10-01 --to 2026-10-07`,
		Annotations: routeOf(navigation.RouteAdminDashboard),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDashboard(cmd, a)
		},
	}

	dashboard := &cobra.Command{
		Use:         "dashboard",
		Short:       "Show the sales dashboard",
		Annotations: routeOf(navigation.RouteAdminDashboard),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDashboard(cmd, a)
		},
	}

	cmd.AddCommand(dashboard, newAdminProductsCmd(a), newAdminOrdersCmd(a), newAdminStatsCmd(a))
	return cmd
}

func newAdminProductsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "products",
		Short:       "Manage the catalog",
		Annotations: routeOf(navigation.RouteAdminProducts),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProducts(cmd, a)
		},
	}

	list := &cobra.Command{
		Use:         "list",
		Short:       "List every product",
		Annotations: routeOf(navigation.RouteAdminProducts),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProducts(cmd, a)
		},
	}

	var input mallmodel.ProductInput
	add := &cobra.Command{
		Use:         "add",
		Short:       "Add a product",
		Annotations: routeOf(navigation.RouteAdminProductAdd),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkProductInput(a, input); err != nil {
				return err
			}
			if err := a.Client.CreateProduct(cmd.Context(), input); err != nil {
				return apiFailure("could not add product", err)
			}
			a.Printer.Success("product %q added", input.Name)
			return nil
		},
	}
	productFlags(add, &input)
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("price")

	var changes mallmodel.ProductInput
	edit := &cobra.Command{
		Use:         "edit <product-id>",
		Short:       "Change a product; only the given flags are updated",
		Annotations: routeOf(navigation.RouteAdminProductEdit),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			current, err := a.Client.GetProduct(cmd.Context(), id)
			if err != nil {
				return apiFailure("could not load product", err)
			}

			updated := mergeProduct(cmd, *current, changes)
			if err := checkProductInput(a, updated); err != nil {
				return err
			}
			if err := a.Client.UpdateProduct(cmd.Context(), id, updated); err != nil {
				return apiFailure("could not update product", err)
			}
			a.Printer.Success("product %d updated", id)
			return nil
		},
	}
	productFlags(edit, &changes)

	del := &cobra.Command{
		Use:         "delete <product-id>",
		Short:       "Remove a product from the catalog",
		Annotations: routeOf(navigation.RouteAdminProducts),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			if err := a.Client.DeleteProduct(cmd.Context(), id); err != nil {
				return apiFailure("could not delete product", err)
			}
			a.Printer.Success("product %d deleted", id)
			return nil
		},
	}

	cmd.AddCommand(list, add, edit, del)
	return cmd
}

func productFlags(cmd *cobra.Command, in *mallmodel.ProductInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "product description")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "unit price")
	cmd.Flags().IntVar(&in.StockQuantity, "stock", 0, "stock quantity")
	cmd.Flags().StringVar(&in.ImageURL, "image", "", "absolute http(s) image URL")
}

// mergeProduct applies the flags set on cmd over the current product
func mergeProduct(cmd *cobra.Command, current mallmodel.Product, changes mallmodel.ProductInput) mallmodel.ProductInput {
	in := mallmodel.ProductInput{
		Name:          current.Name,
		Description:   current.Description,
		Price:         current.Price,
		StockQuantity: current.StockQuantity,
		ImageURL:      current.ImageURL,
	}
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = changes.Name
	}
	if flags.Changed("description") {
		in.Description = changes.Description
	}
	if flags.Changed("price") {
		in.Price = changes.Price
	}
	if flags.Changed("stock") {
		in.StockQuantity = changes.StockQuantity
	}
	if flags.Changed("image") {
		in.ImageURL = changes.ImageURL
	}
	return in
}

func checkProductInput(a *App, in mallmodel.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return errUsage("product name is required")
	}
	if in.Price < 0 {
		return errUsage("price cannot be negative")
	}
	if in.StockQuantity < 0 {
		return errUsage("stock cannot be negative")
	}
	if in.ImageURL == "" {
		return nil
	}

	image := mallmodel.ValidateImageURL(in.ImageURL)
	if !image.Valid {
		return errUsage("image: %s", image.Error)
	}
	if !image.LikelyImage {
		a.Printer.Warning("%s does not look like an image URL", in.ImageURL)
	}
	return nil
}

func newAdminOrdersCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "orders",
		Short:       "Manage every customer's orders",
		Annotations: routeOf(navigation.RouteAdminOrders),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAllOrders(cmd, a, "")
		},
	}

	var status string
	list := &cobra.Command{
		Use:         "list",
		Short:       "List every order, newest first",
		Annotations: routeOf(navigation.RouteAdminOrders),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAllOrders(cmd, a, status)
		},
	}
	list.Flags().StringVar(&status, "status", "", "only show orders with this status")

	show := &cobra.Command{
		Use:         "show <order-id>",
		Short:       "Show any order",
		Annotations: routeOf(navigation.RouteAdminOrderDetail),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showOrder(cmd, a, args[0])
		},
	}

	setStatus := &cobra.Command{
		Use:         "status <order-id> <status>",
		Short:       "Move an order to a new status",
		Long:        "Move an order to a new status: " + statusNames() + ".",
		Annotations: routeOf(navigation.RouteAdminOrderDetail),
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			next, ok := mallmodel.ParseOrderStatus(args[1])
			if !ok {
				return errUsage("unknown status %q, expected one of %s", args[1], statusNames())
			}
			if err := a.Client.UpdateOrderStatus(cmd.Context(), id, next); err != nil {
				return apiFailure("could not update order status", err)
			}
			a.Printer.Success("order %d is now %s", id, a.Printer.StatusBadge(next))
			return nil
		},
	}

	del := &cobra.Command{
		Use:         "delete <order-id>",
		Short:       "Delete any order",
		Annotations: routeOf(navigation.RouteAdminOrderDetail),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteOrder(cmd, a, args[0])
		},
	}

	cmd.AddCommand(list, show, setStatus, del)
	return cmd
}

func listAllOrders(cmd *cobra.Command, a *App, status string) error {
	var want mallmodel.OrderStatus
	if status != "" {
		parsed, ok := mallmodel.ParseOrderStatus(status)
		if !ok {
			return errUsage("unknown status %q, expected one of %s", status, statusNames())
		}
		want = parsed
	}

	orders, err := a.Client.ListAllOrders(cmd.Context())
	if err != nil {
		return apiFailure("could not load orders", err)
	}
	if want != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.OrderStatus == want {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	return renderOrders(a.Printer, orders, true)
}

func statusNames() string {
	names := make([]string, len(mallmodel.OrderStatuses))
	for i, s := range mallmodel.OrderStatuses {
		names[i] = strings.ToLower(string(s))
	}
	return strings.Join(names, ", ")
}
