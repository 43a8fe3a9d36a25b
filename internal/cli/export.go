package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"

	"arenacustoms/internal/domain"
	"arenacustoms/internal/services"
	"arenacustoms/internal/snapshot"
)

var (
	exportFormat string
	exportOut    string
	exportFrom   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as CSV or JSON",
	Long:  "Export the live catalog, or a snapshot file with --from, as CSV or JSON.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "read products from this snapshot file instead of Notion")
	exportCmd.Flags().StringVarP(&tagFlag, "team", "t", "", "only export products tagged with this team")
}

// exportRow flattens a product for spreadsheets.
type exportRow struct {
	ID         string  `csv:"id"`
	Name       string  `csv:"name"`
	Price      float64 `csv:"price"`
	Tagline    string  `csv:"tagline"`
	Image      string  `csv:"image"`
	StripeLink string  `csv:"stripe_link"`
	SquareLink string  `csv:"square_link"`
	Team       string  `csv:"team"`
	Status     string  `csv:"status,omitempty"`
}

func toRows(products []domain.Product) []exportRow {
	rows := make([]exportRow, 0, len(products))
	for _, p := range products {
		r := exportRow{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Tagline:    p.Tagline,
			Image:      p.Image,
			StripeLink: p.StripeLink,
			SquareLink: p.SquareLink,
			Team:       strings.Join(p.Team, ";"),
		}
		if p.Status != nil {
			r.Status = *p.Status
		}
		rows = append(rows, r)
	}
	return rows
}

func writeExport(w io.Writer, format string, products []domain.Product) error {
	switch format {
	case "csv":
		b, err := csvutil.Marshal(toRows(products))
		if err != nil {
			return fmt.Errorf("failed to encode CSV: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"products": products})
	}
	return fmt.Errorf("unknown format %q (want csv or json)", format)
}

func runExport(cmd *cobra.Command, args []string) error {
	var products []domain.Product
	if exportFrom != "" {
		doc, err := snapshot.ReadFile(exportFrom)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		products = doc.Products
	} else {
		var err error
		if products, err = fetchLive(cmd.Context()); err != nil {
			return err
		}
	}
	products = services.FilterByTag(products, tagFlag)

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeExport(w, exportFormat, products)
}
