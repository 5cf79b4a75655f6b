package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/beac0n5/OFFAT/urlutil"
)

// SetupCheckURLFlags creates the FlagSet for the check-url command.
func SetupCheckURLFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("check-url", flag.ContinueOnError)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: offat check-url <string>\n\n")
		Writef(output, "Report whether a string looks like an http or https URL.\n")
		Writef(output, "This is a quick heuristic, not a full validator.\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Looks like a URL\n")
		Writef(output, "  1    Does not look like a URL\n")
	}

	return fs
}

// HandleCheckURL executes the check-url command
func HandleCheckURL(args []string) error {
	fs := SetupCheckURLFlags()
	if done, err := parseArgs(fs, args); done || err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("check-url command requires exactly one argument")
	}

	s := fs.Arg(0)
	if !urlutil.IsValidURL(s) {
		Writef(stdout, "invalid\n")
		return fmt.Errorf("%q does not look like an http(s) URL", s)
	}
	Writef(stdout, "valid\n")
	return nil
}
