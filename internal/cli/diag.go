package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"arenacustoms/internal/repos"
)

var diagDB string

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Show which store settings are present and recent fetches",
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().StringVar(&diagDB, "db", "", "fetch log database (DB_DSN of the server)")
}

func yesNo(b bool) string {
	if b {
		return successStyle.Render("yes")
	}
	return errorStyle.Render("no")
}

func runDiag(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("Store configuration"))
	fmt.Printf("  token present:       %s\n", yesNo(store.Token != ""))
	fmt.Printf("  database id present: %s\n", yesNo(store.DatabaseID != ""))
	fmt.Printf("  status pushdown:     %t\n", store.StatusFilter)

	if diagDB == "" {
		return nil
	}
	db, err := repos.OpenDB(diagDB)
	if err != nil {
		return fmt.Errorf("failed to open fetch log: %w", err)
	}
	defer db.Close()
	recent, err := repos.NewFetchLogRepo(db).Recent(10)
	if err != nil {
		return fmt.Errorf("failed to read fetch log: %w", err)
	}
	fmt.Println(titleStyle.Render("Recent fetches"))
	if len(recent) == 0 {
		fmt.Println(mutedStyle.Render("  none recorded"))
	}
	for _, r := range recent {
		status := successStyle.Render("ok")
		if !r.OK {
			status = errorStyle.Render("fail")
		}
		fmt.Printf("  %s  %-8s %-4s %3d products %5dms %s\n",
			r.At.Local().Format("2006-01-02 15:04:05"), r.Source, status, r.Count, r.LatencyMs, mutedStyle.Render(r.Err))
	}
	return nil
}
