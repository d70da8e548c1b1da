package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/vellum/pkg/docs"
	"github.com/spf13/cobra"
)

var (
	setFlags []string
	newBody  string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [file]",
	Short: "Create a document from the schema",
	Long: `Create a new document, bind the given field values, validate it and
write it to the given path. Values are decoded by each field's kind, so
"--set count=3" stores an integer when count is declared as one.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		schema := loadSchema()

		values := make(docs.Values, len(setFlags))
		for _, assign := range setFlags {
			name, raw, ok := strings.Cut(assign, "=")
			if !ok {
				fatal("Invalid --set flag", fmt.Errorf("expected name=value, got %q", assign))
			}
			value := any(raw)
			if f, ok := schema.Field(name); ok {
				decoded, err := f.Kind().Decode(raw)
				if err != nil {
					fatal(fmt.Sprintf("Invalid value for field %s", name), err)
				}
				value = decoded
			}
			// Unknown names pass through so construction reports them all.
			values[name] = value
		}

		doc, err := schema.New(nil, values)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if newBody != "" {
			doc.Write(newBody)
		}

		if err := doc.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := doc.Save(args[0]); err != nil {
			fatal("Failed to save document", err)
		}

		fmt.Printf("Created %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringArrayVar(&setFlags, "set", nil, "Set a field as name=value (repeatable)")
	newCmd.Flags().StringVar(&newBody, "body", "", "Document body text")
}
