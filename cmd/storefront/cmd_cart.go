// cmd/storefront/cmd_cart.go
package main

import (
	"context"
	"fmt"
	"storefront/internal/storefront"
	"strconv"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and change your cart",
	Args:  cobra.NoArgs,
	RunE:  showCart,
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart and its order details",
	Args:  cobra.NoArgs,
	RunE:  showCart,
}

var cartAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: cartAction(func(ctx context.Context, c *storefront.Controller, args []string) error {
		return c.AddToCart(ctx, args[0])
	}),
}

var cartIncCmd = &cobra.Command{
	Use:   "inc [product-id]",
	Short: "Increase a product's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE: cartAction(func(ctx context.Context, c *storefront.Controller, args []string) error {
		return c.Increment(ctx, args[0])
	}),
}

var cartDecCmd = &cobra.Command{
	Use:   "dec [product-id]",
	Short: "Decrease a product's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE: cartAction(func(ctx context.Context, c *storefront.Controller, args []string) error {
		return c.Decrement(ctx, args[0])
	}),
}

var cartSetCmd = &cobra.Command{
	Use:   "set [product-id] [qty]",
	Short: "Set a product's quantity",
	Args:  cobra.ExactArgs(2),
	RunE: cartAction(func(ctx context.Context, c *storefront.Controller, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("qty %q is not a number", args[1])
		}
		return c.SetQuantity(ctx, args[0], qty)
	}),
}

var cartRemoveCmd = &cobra.Command{
	Use:     "rm [product-id]",
	Aliases: []string{"remove"},
	Short:   "Remove a product from the cart",
	Args:    cobra.ExactArgs(1),
	RunE: cartAction(func(ctx context.Context, c *storefront.Controller, args []string) error {
		return c.Remove(ctx, args[0])
	}),
}

func init() {
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartIncCmd, cartDecCmd, cartSetCmd, cartRemoveCmd)
	rootCmd.AddCommand(cartCmd)
}

func showCart(cmd *cobra.Command, args []string) error {
	c, err := newController(cmd.Context(), storefront.Config{})
	if err != nil {
		return failure(cmd, err)
	}
	defer c.Close()

	if !c.LoggedIn() {
		cmd.PrintErrln("You are not logged in. Run \"storefront login\" to see your cart.")
	}
	out := cmd.OutOrStdout()
	renderCart(out, c.Cart())
	fmt.Fprintln(out)
	renderSummary(out, c.Summary())
	return nil
}

// cartAction loads the page state, applies fn and prints the resulting cart.
func cartAction(fn func(context.Context, *storefront.Controller, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newController(cmd.Context(), storefront.Config{})
		if err != nil {
			return failure(cmd, err)
		}
		defer c.Close()

		if err := fn(cmd.Context(), c, args); err != nil {
			return failure(cmd, err)
		}
		renderCart(cmd.OutOrStdout(), c.Cart())
		return nil
	}
}
