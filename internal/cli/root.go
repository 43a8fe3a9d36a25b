package cli

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"arenacustoms/internal/config"
	"arenacustoms/internal/notion"
)

var (
	store   notion.Config
	tagFlag string
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Operate the Arena Customs product catalog",
	Long: `catalogctl pulls the product catalog from the Notion database the
storefront reads, and manages the bundled fallback snapshot.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(diagCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("No .env file loaded: %v", err)
	}
	store = config.StoreFromEnv()
}
