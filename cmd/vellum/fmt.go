package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt [files]",
	Short: "Rewrite documents in canonical form",
	Long: `Open each file and save it back in place. Headers come out in
declaration order, long values are re-folded, and pre-save fields such
as timestamps are refreshed. Each rewritten path is printed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		schema := loadSchema()

		for _, path := range args {
			doc, err := schema.Open(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := doc.Save(""); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println(path)
		}
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}
