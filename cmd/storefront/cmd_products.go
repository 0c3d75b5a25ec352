// cmd/storefront/cmd_products.go
package main

import (
	"storefront/internal/clients"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List every product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := clients.NewCatalogClient(endpoint, clientOptions()).FetchAll(cmd.Context())
		if err != nil {
			return failure(cmd, err)
		}
		renderProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search products by name or category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := clients.NewCatalogClient(endpoint, clientOptions()).Search(cmd.Context(), args[0])
		if err != nil {
			return failure(cmd, err)
		}
		renderProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd, searchCmd)
}

// reportedError has already been shown to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// failure prints err for the user and returns it so the exit code is set.
func failure(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(describe(err))
	logger.Debug("command failed", zap.Error(err))
	return reportedError{err}
}
