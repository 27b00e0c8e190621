package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/galaxy4x/engine/internal/data"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the JSON schemas to")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schemas := map[string]*jsonschema.Schema{
		"galaxy_list.schema.json": buildSchema([]data.SystemEntry{},
			"galaxy4x Galaxy", "Star systems and bodies loaded at game start from galaxy_list.yaml"),
		"ship_list.schema.json": buildSchema([]data.BlueprintEntry{},
			"galaxy4x Ship Designs", "Ship blueprints loaded from ship_list.yaml"),
	}
	for name, schema := range schemas {
		if err := writeSchema(filepath.Join(outDir, name), schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
			os.Exit(1)
		}
	}
}

func buildSchema(v any, title, description string) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(v)
	schema.Title = title
	schema.Description = description
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	raw, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
