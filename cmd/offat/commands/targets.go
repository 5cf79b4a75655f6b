package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/beac0n5/OFFAT/internal/envconfig"
	"github.com/beac0n5/OFFAT/internal/report"
	"github.com/beac0n5/OFFAT/loader"
	"github.com/beac0n5/OFFAT/targets"
)

// TargetsFlags contains flags for the targets command
type TargetsFlags struct {
	Server       string
	CheckURLs    bool
	RemovePrefix string
	Format       string
	Output       string
	MaxFileSize  int64
}

// SetupTargetsFlags creates and configures a FlagSet for the targets command.
// Defaults come from cfg so OFFAT_* variables apply unless a flag is given.
func SetupTargetsFlags(cfg *envconfig.Config) (*flag.FlagSet, *TargetsFlags) {
	fs := flag.NewFlagSet("targets", flag.ContinueOnError)
	flags := &TargetsFlags{}

	fs.StringVar(&flags.Server, "server", "", "target this server URL instead of the declared servers")
	fs.BoolVar(&flags.CheckURLs, "check-urls", cfg.CheckURLs, "skip servers that do not look like http(s) URLs")
	fs.StringVar(&flags.RemovePrefix, "remove-prefix", cfg.RemovePrefix, "prefix stripped from each URI segment before joining")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "o", "", "write the plan to this file (YAML with --format yaml, JSON otherwise)")
	fs.Int64Var(&flags.MaxFileSize, "max-file-size", cfg.MaxFileSize, "largest file to read in bytes, 0 for no limit")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: offat targets [flags] <file>\n\n")
		Writef(output, "List the request targets for every server and operation of a specification.\n")
		Writef(output, "Servers that cannot be parsed are skipped and reported on stderr.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  offat targets openapi.yaml\n")
		Writef(output, "  offat targets --server http://localhost:8080 openapi.yaml\n")
		Writef(output, "  offat targets --format json -o plan.json swagger.json\n")
		Writef(output, "\nEnvironment:\n")
		Writef(output, "  %s, %s, %s\n", envconfig.EnvCheckURLs, envconfig.EnvRemovePrefix, envconfig.EnvMaxFileSize)
	}

	return fs, flags
}

// HandleTargets executes the targets command
func HandleTargets(args []string) error {
	cfg := envconfig.Load()
	fs, flags := SetupTargetsFlags(cfg)
	if done, err := parseArgs(fs, args); done || err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("targets command requires exactly one file path")
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
	doc, err := loader.Load(specPath, loader.WithLogger(logger), loader.WithMaxFileSize(flags.MaxFileSize))
	if err != nil {
		return fmt.Errorf("loading %s: %w", specPath, err)
	}

	opts := []targets.Option{
		targets.WithLogger(logger),
		targets.WithURLCheck(flags.CheckURLs),
		targets.WithRemovePrefix(flags.RemovePrefix),
	}
	if flags.Server != "" {
		opts = append(opts, targets.WithServerOverride(flags.Server))
	}
	planner, err := targets.New(opts...)
	if err != nil {
		return err
	}
	plan, err := planner.Plan(doc)
	if err != nil {
		return err
	}

	if flags.Output != "" {
		if err := report.Write(flags.Output, plan, reportFormat(format), logger); err != nil {
			return err
		}
	}

	if format != FormatText {
		return OutputStructured(plan, format)
	}

	for _, t := range plan.Targets {
		Writef(stdout, "%-7s %s\n", strings.ToUpper(t.Method), t.URL)
	}
	for _, s := range plan.Skipped {
		Writef(stderr, "skipped %s: %s\n", s.URL, s.Reason)
	}
	Writef(stderr, "%d targets across %d servers\n", len(plan.Targets), len(plan.Servers))
	return nil
}
