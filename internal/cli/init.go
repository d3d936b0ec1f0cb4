// Package cli provides Cobra command definitions for flowdex.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chazuruo/flowdex/internal/config"
)

// InitOptions contains the options for the init command.
type InitOptions struct {
	ConfigPath string

	// Scriptable/flag options for --no-tui mode
	Root         string
	OutputDir    string
	OutputFile   string
	Workers      int
	TaxonomyPath string
	Force        bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize flowdex configuration",
		Long: `Initialize a flowdex configuration file.

The init command guides you through setting up your configuration:
- Choose the directory tree to scan for workflow files
- Choose where the index is written
- Set the worker count for parallel builds

Use --no-tui with flags for scripted setup. The config is written to
./flowdex.toml unless --config points elsewhere.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.Root, "root", "", "directory tree to scan")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "index output directory")
	cmd.Flags().StringVar(&opts.OutputFile, "output-file", "", "index file name")
	cmd.Flags().IntVar(&opts.Workers, "workers", -1, "concurrent record builders (0 = one per CPU)")
	cmd.Flags().StringVar(&opts.TaxonomyPath, "taxonomy", "", "YAML taxonomy override file")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(opts *InitOptions) error {
	if IsNoTUI() {
		return runInitNonInteractive(opts)
	}
	return runInitInteractive(opts)
}

// runInitInteractive runs the init wizard with a form.
func runInitInteractive(opts *InitOptions) error {
	cfg := config.DefaultConfig()

	var (
		root       = cfg.Scan.Root
		outputDir  = cfg.Output.Dir
		outputFile = cfg.Output.File
		workersStr = strconv.Itoa(cfg.Build.Workers)
		tuiEnabled = cfg.TUI.Enabled
	)

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Scan root").
				Description("Directory tree to scan for workflow JSON files").
				Value(&root).Placeholder("."),
			huh.NewInput().
				Title("Output directory").
				Description("Directory the index is written to").
				Value(&outputDir).Placeholder("public"),
			huh.NewInput().
				Title("Index file name").
				Value(&outputFile).Placeholder("workflows.json"),
			huh.NewInput().
				Title("Workers").
				Description("Concurrent record builders (0 = one per CPU)").
				Value(&workersStr),
			huh.NewConfirm().
				Title("Enable TUI commands?").
				Value(&tuiEnabled),
		),
	).Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	workers, err := strconv.Atoi(workersStr)
	if err != nil {
		return fmt.Errorf("invalid worker count %q", workersStr)
	}

	cfg.Scan.Root = root
	cfg.Output.Dir = outputDir
	cfg.Output.File = outputFile
	cfg.Build.Workers = workers
	cfg.TUI.Enabled = tuiEnabled

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	configPath, err := writeConfig(opts, cfg)
	if err != nil {
		return err
	}

	fmt.Println("\n✓ Configuration written successfully!")
	fmt.Printf("  Config: %s\n", configPath)
	fmt.Printf("  Scan root: %s\n", cfg.Scan.Root)
	fmt.Printf("  Index: %s\n", cfg.IndexPath())
	fmt.Println("\nYou're ready to go! Try 'flowdex build'.")

	return nil
}

// runInitNonInteractive runs init in non-TUI mode using flags.
func runInitNonInteractive(opts *InitOptions) error {
	cfg := config.DefaultConfig()

	if opts.Root != "" {
		cfg.Scan.Root = opts.Root
	}
	if opts.OutputDir != "" {
		cfg.Output.Dir = opts.OutputDir
	}
	if opts.OutputFile != "" {
		cfg.Output.File = opts.OutputFile
	}
	if opts.Workers >= 0 {
		cfg.Build.Workers = opts.Workers
	}
	if opts.TaxonomyPath != "" {
		cfg.Taxonomy.Path = opts.TaxonomyPath
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	configPath, err := writeConfig(opts, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Configuration written to: %s\n", configPath)
	return nil
}

// writeConfig writes the config, refusing to clobber an existing file
// unless --force is set.
func writeConfig(opts *InitOptions, cfg *config.Config) (string, error) {
	configPath := getConfigPath(opts.ConfigPath)

	if !opts.Force {
		if _, err := os.Stat(configPath); err == nil {
			return "", fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := config.Write(configPath, cfg); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}

	return configPath, nil
}

// getConfigPath returns the config file path.
func getConfigPath(override string) string {
	if override != "" {
		return override
	}
	return "flowdex.toml"
}
