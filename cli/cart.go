package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *app) cartCmd() *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Show your cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Cart.FetchCart(cmd.Context()); err != nil {
				return describe(err)
			}
			printCart(cmd.OutOrStdout(), st.Cart)
			return nil
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product, merging with an existing line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Cart.AddToCart(cmd.Context(), args[0], qty); err != nil {
				return describe(err)
			}
			printCart(cmd.OutOrStdout(), st.Cart)
			return nil
		},
	}
	add.Flags().IntVarP(&qty, "quantity", "q", 1, "units to add")

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			st, _, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Cart.UpdateQuantity(cmd.Context(), args[0], n); err != nil {
				return describe(err)
			}
			printCart(cmd.OutOrStdout(), st.Cart)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Cart.RemoveFromCart(cmd.Context(), args[0]); err != nil {
				return describe(err)
			}
			printCart(cmd.OutOrStdout(), st.Cart)
			return nil
		},
	}

	cart.AddCommand(add, set, remove)
	return cart
}
