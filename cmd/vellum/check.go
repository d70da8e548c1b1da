package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/vellum/pkg/docs"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [files]",
	Short: "Validate documents against the schema",
	Long: `Open each file with the schema and run every field validator.
Problems are printed one per line as "FILE: FIELD: MESSAGE". The command
exits non-zero when any file fails to open or validate.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		schema := loadSchema()

		failed := false
		for _, path := range args {
			doc, err := schema.Open(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed = true
				continue
			}

			err = doc.Validate()
			if err == nil {
				continue
			}
			failed = true

			var invalid *docs.InvalidDocument
			if !errors.As(err, &invalid) {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				continue
			}
			for _, p := range invalid.Problems {
				fmt.Printf("%s: %s\n", path, p.Error())
			}
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
