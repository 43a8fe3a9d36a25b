package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	applog "arenacustoms/internal/log"
	"arenacustoms/internal/snapshot"
)

var (
	snapshotOut        string
	snapshotAllowEmpty bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Refresh the bundled fallback snapshot from Notion",
	Long: `Fetch the live catalog and write it to the static snapshot the
storefront falls back to when Notion is unreachable.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "web/static/products.json", "snapshot file to write")
	snapshotCmd.Flags().BoolVar(&snapshotAllowEmpty, "allow-empty", false, "write the snapshot even if the catalog is empty")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	products, err := fetchLive(cmd.Context())
	if err != nil {
		return err
	}
	if len(products) == 0 && !snapshotAllowEmpty {
		return errors.New("live catalog is empty; refusing to replace the snapshot (use --allow-empty)")
	}

	prev, perr := snapshot.ReadFile(snapshotOut)
	doc, err := snapshot.New(products, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}
	if perr == nil && prev.Version == doc.Version {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("Snapshot %s already current (%d products)", doc.Version, len(products))))
		return nil
	}
	if err := snapshot.WriteFile(snapshotOut, doc); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	applog.Audit(nil, "snapshot.write", map[string]any{"version": doc.Version, "count": len(products), "path": snapshotOut})
	fmt.Println(successStyle.Render(fmt.Sprintf("Snapshot %s written to %s", doc.Version, snapshotOut)))
	return nil
}
