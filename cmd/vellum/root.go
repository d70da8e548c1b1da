package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/vellum/pkg/docs"
	"github.com/aretw0/vellum/pkg/manifest"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	schemaPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vellum",
	Short: "A declarative document model for plain-text files with typed headers",
	Long: `Vellum reads and writes plain-text documents whose headers are declared
up front in a schema. It decodes header values into typed fields, validates
them, and rewrites files in a single canonical form.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadSchema reads the field declarations every subcommand works against.
func loadSchema() *docs.Schema {
	schema, err := manifest.Load(schemaPath)
	if err != nil {
		fatal("Failed to load schema", err)
	}
	return schema
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schema.yaml", "Path to the schema manifest")
}
