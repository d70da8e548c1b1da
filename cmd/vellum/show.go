package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/vellum/pkg/headers"
	"github.com/spf13/cobra"
)

var (
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a document with its resolved field values",
	Long: `Open a document and print it in canonical form with every field
resolved, including computed defaults that are not stored in the file.
With --json the fields and body are emitted as a JSON object instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		schema := loadSchema()

		doc, err := schema.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		body, err := doc.Read()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading body: %v\n", err)
			os.Exit(1)
		}

		if showJSON {
			fields := make(map[string]any, schema.Len())
			for _, f := range schema.Fields() {
				if v := doc.Get(f.Name()); v != nil {
					fields[f.Name()] = v
				}
			}
			out := struct {
				Path   string         `json:"path"`
				Fields map[string]any `json:"fields"`
				Body   string         `json:"body"`
			}{doc.Path(), fields, body}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(out); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		hs := make([]headers.Header, 0, schema.Len())
		for _, f := range schema.Fields() {
			v := doc.Get(f.Name())
			if v == nil {
				continue
			}
			encoded, err := f.Kind().Encode(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding field %s: %v\n", f.Name(), err)
				os.Exit(1)
			}
			hs = append(hs, headers.Header{Name: f.Name(), Value: encoded})
		}
		os.Stdout.Write(headers.Encode(hs, body))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
