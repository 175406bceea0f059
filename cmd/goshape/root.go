package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/goshape/decl"
	"github.com/reoring/goshape/dsl"
)

// Environment variables read by the logger.
const (
	EnvLogLevel  = "GOSHAPE_LOG_LEVEL"
	EnvLogFormat = "GOSHAPE_LOG_FORMAT"
)

var (
	// Global flags
	inputFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "goshape",
	Short: "Compile shape declarations into schemas and type signatures",
	Long: `goshape reads shape declarations (YAML or JSON) and derives, for every
shape, a JSON Schema validation tree and a structural type signature.

Examples:
  goshape check -f shapes.yaml
  goshape compile -f shapes.yaml --emit types
  goshape compile -f shapes.yaml --emit jsonschema --shape Employee -o employee.json`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&inputFiles, "file", "f", nil, "declaration file (repeatable; .json files are read as JSON)")
}

func setupLoggerFromEnv() zerolog.Logger {
	levelStr := os.Getenv(EnvLogLevel)
	if levelStr == "" {
		levelStr = "warn"
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.WarnLevel
	}

	if os.Getenv(EnvLogFormat) == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// loadCatalog parses every input file and defines its shapes in one catalog.
func loadCatalog(logger zerolog.Logger) (*dsl.Catalog, []*dsl.Definition, error) {
	if len(inputFiles) == 0 {
		return nil, nil, errNoInput
	}
	var docs []decl.Document
	for _, f := range inputFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, nil, err
		}
		var parsed []decl.Document
		if strings.EqualFold(filepath.Ext(f), ".json") {
			parsed, err = decl.ParseJSON(data)
		} else {
			parsed, err = decl.Parse(data)
		}
		if err != nil {
			return nil, nil, wrapFile(f, err)
		}
		logger.Debug().Str("file", f).Int("shapes", len(parsed)).Msg("declarations parsed")
		docs = append(docs, parsed...)
	}
	cat := dsl.NewCatalog(dsl.WithLogger(logger))
	defs, err := decl.Load(cat, docs)
	if err != nil {
		return nil, nil, err
	}
	return cat, defs, nil
}
