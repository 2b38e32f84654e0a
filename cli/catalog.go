package cli

import (
	"fmt"
	"os"

	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/spreadsheet"
	"github.com/spf13/cobra"
)

func (a *app) productsCmd() *cobra.Command {
	var q gateway.ProductQuery
	var minPrice, maxPrice float64
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := a.gateway(gateway.NewMemoryTokenStore(""))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-price") {
				q.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				q.MaxPrice = &maxPrice
			}
			products, err := gw.ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "match name or description")
	cmd.Flags().StringVar(&q.Category, "category", "", "only this category")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "lowest price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "highest price")
	cmd.Flags().StringVar(&q.SortBy, "sort", "created_at", "created_at, price or name")
	cmd.Flags().StringVar(&q.Order, "order", "desc", "asc or desc")
	return cmd
}

func (a *app) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := a.gateway(gateway.NewMemoryTokenStore(""))
			if err != nil {
				return err
			}
			product, err := gw.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProduct(cmd.OutOrStdout(), product)
			return nil
		},
	}
}

func (a *app) catalogCmd() *cobra.Command {
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the product catalog",
	}
	catalog.AddCommand(&cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Create or update products from a spreadsheet",
		Long: `Reads the first sheet of an .xlsx workbook with the columns
ID, Name, Description, Price, ImageURL, Category. Rows with an ID that exists
update that product; every other row creates one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			products, skipped, err := spreadsheet.ReadProducts(f, info.Size())
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			gw, err := a.gateway(gateway.NewMemoryTokenStore(""))
			if err != nil {
				return err
			}
			created, updated, err := gw.SaveProducts(cmd.Context(), products)
			if err != nil {
				return err
			}
			printf(cmd, "Import completed: %d created, %d updated, %d skipped\n", created, updated, skipped)
			return nil
		},
	})
	return catalog
}
