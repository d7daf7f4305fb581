package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tangle-engine/internal/inventory"
	"github.com/pdiddy/tangle-engine/internal/scan"
)

var listCmd = &cobra.Command{
	Use:   "list [document]",
	Short: "Print the files, snippets, and references a document defines",
	Long: `List scans the document and prints its inventory: every output file
and snippet with line counts and the snippet references each one makes.
References are reported as written, whether or not they resolve.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	doc := args[0]

	lines, err := scan.ReadDocument(doc)
	if err != nil {
		return err
	}

	store, err := scan.Scan(lines, io.Discard)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", doc, err)
	}

	report := inventory.Build(doc, store)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "":
		return inventory.WriteText(os.Stdout, report)
	case "json":
		return inventory.WriteJSON(os.Stdout, report)
	case "yaml":
		return inventory.WriteYAML(os.Stdout, report)
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}
}

func init() {
	listCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(listCmd)
}
