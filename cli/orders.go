package cli

import (
	"os"

	"github.com/junaidrashid-git/storefront/pricing"
	"github.com/junaidrashid-git/storefront/spreadsheet"
	"github.com/spf13/cobra"
)

func (a *app) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in your cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			order, err := st.Checkout.PlaceOrder(cmd.Context())
			if err != nil {
				return describe(err)
			}
			printf(cmd, "Order %s placed: %d items, total %s\n", order.ID, len(order.Items), pricing.Format(order.TotalAmount))
			return nil
		},
	}
}

func (a *app) ordersCmd() *cobra.Command {
	orders := &cobra.Command{
		Use:   "orders",
		Short: "List your orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, gw, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			id, _ := st.Session.UserID()
			list, err := gw.ListOrders(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOrders(cmd.OutOrStdout(), list)
			return nil
		},
	}

	orders.AddCommand(&cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write your order history to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, gw, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			id, _ := st.Session.UserID()
			list, err := gw.ListOrders(cmd.Context(), id)
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := spreadsheet.ExportOrders(f, list); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printf(cmd, "Exported %d orders to %s\n", len(list), args[0])
			return nil
		},
	})
	return orders
}
