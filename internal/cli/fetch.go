package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arenacustoms/internal/domain"
	"arenacustoms/internal/notion"
	"arenacustoms/internal/services"
)

var fetchJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the live catalog from Notion",
	Long:  "Fetch every publishable product from the Notion database and print it, optionally filtered by team.",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&tagFlag, "team", "t", "", "only show products tagged with this team")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print JSON instead of a table")
}

func fetchLive(ctx context.Context) ([]domain.Product, error) {
	svc := services.NewCatalogService(store, notion.NewClient(store, nil), nil)
	snap, err := svc.FetchCatalog(ctx)
	if err != nil {
		if services.IsConfiguration(err) {
			return nil, fmt.Errorf("%w (set them in the environment or .env)", err)
		}
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return snap.Products, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	products, err := fetchLive(cmd.Context())
	if err != nil {
		return err
	}
	products = services.FilterByTag(products, tagFlag)
	if fetchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"products": products})
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("Live catalog (%d products)", len(products))))
	fmt.Println(productTable(products))
	return nil
}
