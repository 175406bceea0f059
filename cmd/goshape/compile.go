package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/goshape/dsl"
	js "github.com/reoring/goshape/jsonschema"
	"github.com/reoring/goshape/openapi"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Emit JSON Schema, OpenAPI components or type signatures",
	Long: `Compile declarations and write one artifact.

Emitters:
  jsonschema  draft-07 bundle; with --shape the shape is the root
  openapi     OpenAPI 3.0 document with component schemas
  types       one structural type signature per shape

Examples:
  goshape compile -f shapes.yaml --emit types
  goshape compile -f shapes.yaml --emit openapi -o api.json`,
	RunE: runCompile,
}

var (
	compileEmit    string
	compileOut     string
	compileShape   string
	compileTitle   string
	compileVersion string
)

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&compileEmit, "emit", "jsonschema", "output kind: jsonschema, openapi or types")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "output file (default stdout)")
	compileCmd.Flags().StringVar(&compileShape, "shape", "", "root shape for jsonschema output")
	compileCmd.Flags().StringVar(&compileTitle, "title", "goshape", "OpenAPI info title")
	compileCmd.Flags().StringVar(&compileVersion, "api-version", "0.0.1", "OpenAPI info version")
}

func runCompile(cmd *cobra.Command, args []string) error {
	logger := setupLoggerFromEnv()
	cat, defs, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	var data []byte
	switch compileEmit {
	case "jsonschema":
		data, err = emitJSONSchema(cat, defs)
	case "openapi":
		data, err = json.MarshalIndent(openapi.Document(compileTitle, compileVersion, defs...), "", "  ")
	case "types":
		data = emitTypes(defs)
	default:
		return fmt.Errorf("unknown emitter %q", compileEmit)
	}
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if compileOut != "" {
		f, err := os.Create(compileOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	logger.Info().Str("emit", compileEmit).Int("shapes", len(defs)).Str("out", compileOut).Msg("compiled")
	return nil
}

func emitJSONSchema(cat *dsl.Catalog, defs []*dsl.Definition) ([]byte, error) {
	if compileShape != "" {
		doc, err := cat.Document(compileShape)
		if err != nil {
			return nil, err
		}
		return js.MarshalIndent(doc)
	}
	doc := js.Document{Definitions: make(map[string]*js.Node, len(defs))}
	for _, d := range defs {
		doc.Definitions[d.Title] = d.Schema()
	}
	return js.MarshalIndent(doc)
}

func emitTypes(defs []*dsl.Definition) []byte {
	var b bytes.Buffer
	for i, d := range defs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Signature().String())
	}
	return b.Bytes()
}
