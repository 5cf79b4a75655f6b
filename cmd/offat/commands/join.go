package commands

import (
	"errors"
	"flag"

	"github.com/beac0n5/OFFAT/internal/envconfig"
	"github.com/beac0n5/OFFAT/urlutil"
)

// JoinFlags contains flags for the join command
type JoinFlags struct {
	RemovePrefix string
}

// SetupJoinFlags creates and configures a FlagSet for the join command.
func SetupJoinFlags(cfg *envconfig.Config) (*flag.FlagSet, *JoinFlags) {
	fs := flag.NewFlagSet("join", flag.ContinueOnError)
	flags := &JoinFlags{}

	fs.StringVar(&flags.RemovePrefix, "remove-prefix", cfg.RemovePrefix, "prefix stripped from each segment before joining")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: offat join [flags] <base> [segment...]\n\n")
		Writef(output, "Join a base URL with path segments. The remove-prefix is stripped from\n")
		Writef(output, "each segment so it extends the current path instead of replacing it.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  offat join https://example.com /v2/ /pet/findByStatus/\n")
		Writef(output, "  offat join --remove-prefix /api https://example.com/v1 /api/users\n")
	}

	return fs, flags
}

// HandleJoin executes the join command
func HandleJoin(args []string) error {
	fs, flags := SetupJoinFlags(envconfig.Load())
	if done, err := parseArgs(fs, args); done || err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("join command requires a base URL")
	}

	u, err := urlutil.JoinWithPrefix(flags.RemovePrefix, fs.Arg(0), fs.Args()[1:]...)
	if err != nil {
		return err
	}
	Writef(stdout, "%s\n", u)
	return nil
}
