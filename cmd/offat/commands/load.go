package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/beac0n5/OFFAT/internal/envconfig"
	"github.com/beac0n5/OFFAT/internal/report"
	"github.com/beac0n5/OFFAT/loader"
)

// LoadFlags contains flags for the load command
type LoadFlags struct {
	Format      string
	Output      string
	As          string
	MaxFileSize int64
}

// SetupLoadFlags creates and configures a FlagSet for the load command.
// Returns the FlagSet and a LoadFlags struct with bound flag variables.
func SetupLoadFlags(cfg *envconfig.Config) (*flag.FlagSet, *LoadFlags) {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	flags := &LoadFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "o", "", "write the document or error record to this file (YAML with --format yaml, JSON otherwise)")
	fs.StringVar(&flags.As, "as", "", "decode with the decoder for this extension instead of the file's own")
	fs.Int64Var(&flags.MaxFileSize, "max-file-size", cfg.MaxFileSize, "largest file to read in bytes, 0 for no limit")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: offat load [flags] <file>\n\n")
		Writef(output, "Load an OpenAPI or Swagger document and report its format or load error.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  offat load openapi.yaml\n")
		Writef(output, "  offat load --format json swagger.json\n")
		Writef(output, "  offat load --as yaml -o doc.json api.yml\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Document loaded\n")
		Writef(output, "  1    Document could not be loaded\n")
	}

	return fs, flags
}

// HandleLoad executes the load command
func HandleLoad(args []string) error {
	cfg := envconfig.Load()
	fs, flags := SetupLoadFlags(cfg)
	if done, err := parseArgs(fs, args); done || err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("load command requires exactly one file path")
	}
	format, err := formatOrDefault(flags.Format)
	if err != nil {
		return err
	}

	specPath := fs.Arg(0)
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, specPath); err != nil {
			return err
		}
	}

	logger := newLogger(cfg)
	l, err := loader.New(loader.WithLogger(logger), loader.WithMaxFileSize(flags.MaxFileSize))
	if err != nil {
		return err
	}

	var doc *loader.Document
	if flags.As != "" {
		doc, err = l.LoadAs(specPath, flags.As)
	} else {
		doc, err = l.Load(specPath)
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", specPath, err)
	}

	if flags.Output != "" {
		if err := report.Write(flags.Output, doc.Record(), reportFormat(format), logger); err != nil {
			return err
		}
	}

	switch format {
	case FormatText:
		outputLoadSummary(doc)
	default:
		if err := OutputStructured(doc.Record(), format); err != nil {
			return err
		}
	}

	if doc.Failed() {
		return fmt.Errorf("loading %s: %s", specPath, doc.Err.Message())
	}
	return nil
}

func outputLoadSummary(doc *loader.Document) {
	Writef(stdout, "Specification: %s\n", doc.Path)
	if doc.Failed() {
		Writef(stdout, "Error: %s\n", doc.Err.Message())
		return
	}
	Writef(stdout, "Format: %s\n", doc.Format)
	Writef(stdout, "Size: %d bytes\n", doc.Size)
	if root, ok := doc.Map(); ok {
		switch {
		case root["openapi"] != nil:
			Writef(stdout, "OpenAPI: %v\n", root["openapi"])
		case root["swagger"] != nil:
			Writef(stdout, "Swagger: %v\n", root["swagger"])
		}
		if paths, ok := root["paths"].(map[string]any); ok {
			Writef(stdout, "Paths: %d\n", len(paths))
		}
	}
}
