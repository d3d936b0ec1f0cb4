package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazuruo/flowdex/internal/cli"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

// BuiltBy is set at build time using ldflags
var BuiltBy = "unknown"

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowdex",
		Short: "Workflow index builder for n8n workflow collections",
		Long: `flowdex scans a directory tree of n8n workflow JSON files, classifies
each workflow against a keyword taxonomy, and emits a single aggregated
index document ready to serve as a static site artifact.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(cli.NewInitCommand())
	rootCmd.AddCommand(cli.NewBuildCommand())
	rootCmd.AddCommand(cli.NewSearchCommand())
	rootCmd.AddCommand(cli.NewBrowseCommand())
	rootCmd.AddCommand(cli.NewCategoriesCommand())
	rootCmd.AddCommand(cli.NewExportCommand())
	rootCmd.AddCommand(cli.NewVersionCommand(Version, Commit, Date, BuiltBy))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
