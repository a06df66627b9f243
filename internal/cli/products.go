package cli

import (
	"strconv"

	"github.com/jrsteele09/go-mall-client/internal/output"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/spf13/cobra"
)

func newProductsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "products",
		Aliases:     []string{"product"},
		Short:       "Browse the catalog",
		Annotations: routeOf(navigation.RouteHome),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProducts(cmd, a)
		},
	}

	list := &cobra.Command{
		Use:         "list",
		Short:       "List every product",
		Annotations: routeOf(navigation.RouteHome),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProducts(cmd, a)
		},
	}

	show := &cobra.Command{
		Use:         "show <product-id>",
		Short:       "Show one product",
		Annotations: routeOf(navigation.RouteHome),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}
			p, err := a.Client.GetProduct(cmd.Context(), id)
			if err != nil {
				return apiFailure("could not load product", err)
			}
			printProduct(a.Printer, p)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func listProducts(cmd *cobra.Command, a *App) error {
	products, err := a.Client.ListProducts(cmd.Context())
	if err != nil {
		return apiFailure("could not load products", err)
	}
	if len(products) == 0 {
		a.Printer.Info("the catalog is empty")
		return nil
	}

	table := a.Printer.NewTable("id", "name", "price", "stock")
	for _, p := range products {
		table.AddRow(itoa(p.ID), p.Name, output.Money(p.Price), a.Printer.StockBadge(p.StockQuantity, 1))
	}
	return table.Render()
}

func printProduct(p *output.Printer, product *mallmodel.Product) {
	p.Header(product.Name)
	p.Print("id:          %d", product.ID)
	p.Print("price:       %s", output.Money(product.Price))
	p.Print("stock:       %s", p.StockBadge(product.StockQuantity, 1))
	p.Print("description: %s", orDash(product.Description))

	image := mallmodel.ValidateImageURL(product.ImageURL)
	switch {
	case image.Valid && image.LikelyImage:
		p.Print("image:       %s", image.URL)
	case image.Valid:
		p.Print("image:       %s %s", image.URL, p.Dim("(may not be an image)"))
	default:
		p.Print("image:       %s", p.Dim("none"))
	}
}

func parseQuantity(raw string) (int, error) {
	q, err := strconv.Atoi(raw)
	if err != nil || q < 1 {
		return 0, errUsage("quantity must be a positive whole number, got %q", raw)
	}
	return q, nil
}
