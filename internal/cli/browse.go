package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"arenacustoms/internal/services"
	"arenacustoms/internal/storefront"
	"arenacustoms/internal/validate"
)

var (
	browseAPI      string
	browseSnapshot string
	browseTimeout  time.Duration
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Load the catalog the way the storefront does",
	Long: `Load products from a running server's /api/products, falling back to
its bundled snapshot, and print what a shopper would see.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseAPI, "api", "http://127.0.0.1:8081/api/products", "live catalog endpoint")
	browseCmd.Flags().StringVar(&browseSnapshot, "snapshot", "http://127.0.0.1:8081/products.json", "fallback snapshot URL")
	browseCmd.Flags().DurationVar(&browseTimeout, "timeout", 8*time.Second, "per-request timeout")
	browseCmd.Flags().StringVarP(&tagFlag, "team", "t", "", "only show products tagged with this team")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	team, ok := validate.Tag(tagFlag)
	if !ok {
		return fmt.Errorf("invalid team %q", tagFlag)
	}
	view := storefront.NewLoader(browseAPI, browseSnapshot, browseTimeout).Start(cmd.Context())
	if view.State() == storefront.Loading {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("Loading products…"))
	}
	view.Wait()

	products := services.FilterByTag(view.Products(), team)
	heading := "Catalog"
	if team != "" {
		heading += " — " + team
	}
	fmt.Println(titleStyle.Render(heading))
	switch view.State() {
	case storefront.ReadyFallback:
		fmt.Println(warningStyle.Render("Live catalog unavailable; showing the bundled snapshot."))
	case storefront.Ready:
		if view.Err() != nil {
			fmt.Println(errorStyle.Render("Catalog unavailable."))
		}
	}
	if len(products) == 0 {
		if team != "" {
			fmt.Println("No products found for this team.")
		} else {
			fmt.Println("No products found.")
		}
		return nil
	}
	fmt.Println(productTable(products))
	return nil
}
