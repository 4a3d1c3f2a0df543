package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-forager/internal/platform/spectate"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the spectator snapshot JSON schema",
	Long: `Prints the JSON schema of the snapshots streamed by 'forager play --spectate'.

Examples:
  forager schema
  forager schema --out snapshot.schema.json`,
	Args: cobra.NoArgs,
	Run:  runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Write the schema to this file instead of stdout")
}

func runSchema(_ *cobra.Command, _ []string) {
	data, err := spectate.SchemaJSON()
	if err != nil {
		fail("%v", err)
	}
	if flagSchemaOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(flagSchemaOut, data, 0o644); err != nil {
		fail("writing schema: %v", err)
	}
	fmt.Printf("Schema written to %s\n", flagSchemaOut)
}
