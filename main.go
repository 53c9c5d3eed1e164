package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xiaot623/adgenie/internal/config"
)

// v holds the merged configuration: flags, environment, .env and defaults.
var v *viper.Viper

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "adgenie",
	Short:         "AdGenie chat backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	v = config.New()

	serveCmd.Flags().Int("port", 8000, "HTTP listen port (HTTP_PORT)")
	rootCmd.PersistentFlags().String("database-url", "", "database DSN; postgres:// selects PostgreSQL (DATABASE_URL)")

	_ = v.BindPFlag(config.KeyHTTPPort, serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag(config.KeyDatabaseURL, rootCmd.PersistentFlags().Lookup("database-url"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
