// cmd/storefront/cmd_browse.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"storefront/internal/catalog"
	"storefront/internal/storefront"
	"strings"
	"sync"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive product browser",
	Long: `Reads commands from stdin, one per line. Any plain text is a search:
searches are debounced, so lines typed in quick succession only send the
last one. An empty line sends the pending search at once.

  :add ID    add a product to the cart
  :inc ID    increase a product's quantity
  :dec ID    decrease a product's quantity
  :rm ID     remove a product
  :cart      show the cart
  :quit      leave`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// lockedWriter serializes output from the search callbacks and the input
// loop.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (l *lockedWriter) do(fn func(io.Writer)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.w)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	out := &lockedWriter{w: cmd.OutOrStdout()}
	ctx := cmd.Context()

	c, err := newController(ctx, storefront.Config{
		OnCatalog: func(products []catalog.Product) {
			out.do(func(w io.Writer) { renderProducts(w, products) })
		},
		OnSearchError: func(query string, err error) {
			out.do(func(w io.Writer) { fmt.Fprintf(w, "search %q: %s\n", query, describe(err)) })
		},
	})
	if err != nil {
		return failure(cmd, err)
	}
	defer c.Close()

	out.do(func(w io.Writer) { renderProducts(w, c.Catalog()) })

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			c.FlushSearch()
			continue
		}
		if !strings.HasPrefix(line, ":") {
			c.OnSearchInput(line)
			continue
		}

		verb, arg, _ := strings.Cut(line[1:], " ")
		arg = strings.TrimSpace(arg)
		var actionErr error
		switch verb {
		case "quit", "q":
			return nil
		case "cart":
			out.do(func(w io.Writer) {
				renderCart(w, c.Cart())
				fmt.Fprintln(w)
				renderSummary(w, c.Summary())
			})
			continue
		case "add":
			actionErr = c.AddToCart(ctx, arg)
		case "inc":
			actionErr = c.Increment(ctx, arg)
		case "dec":
			actionErr = c.Decrement(ctx, arg)
		case "rm":
			actionErr = c.Remove(ctx, arg)
		default:
			fmt.Fprintf(out, "unknown command %q\n", verb)
			continue
		}

		if actionErr != nil {
			fmt.Fprintln(out, describe(actionErr))
			continue
		}
		out.do(func(w io.Writer) { renderCart(w, c.Cart()) })
	}
	// Let a search typed just before EOF finish.
	c.FlushSearch()
	return scanner.Err()
}
