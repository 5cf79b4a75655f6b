package commands

import (
	"errors"
	"flag"

	"github.com/beac0n5/OFFAT/internal/envconfig"
	"github.com/beac0n5/OFFAT/serverurl"
)

// ServerFlags contains flags for the server command
type ServerFlags struct {
	Format string
}

// serverURLOutput is the structured form of a parsed server URL.
type serverURLOutput struct {
	Scheme   string `json:"scheme" yaml:"scheme"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	BasePath string `json:"basePath" yaml:"basePath"`
	Origin   string `json:"origin" yaml:"origin"`
}

// SetupServerFlags creates and configures a FlagSet for the server command.
func SetupServerFlags() (*flag.FlagSet, *ServerFlags) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	flags := &ServerFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: offat server [flags] <url>\n\n")
		Writef(output, "Split a server URL into scheme, host, port and base path.\n")
		Writef(output, "Only http and https are accepted. An invalid port falls back to the\n")
		Writef(output, "scheme default and is logged.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  offat server https://api.example.com/v1\n")
		Writef(output, "  offat server --format json http://localhost:8080\n")
	}

	return fs, flags
}

// HandleServer executes the server command
func HandleServer(args []string) error {
	fs, flags := SetupServerFlags()
	if done, err := parseArgs(fs, args); done || err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("server command requires exactly one URL")
	}
	format, err := formatOrDefault(flags.Format)
	if err != nil {
		return err
	}

	s, err := serverurl.Parse(fs.Arg(0), serverurl.WithLogger(newLogger(envconfig.Load())))
	if err != nil {
		return err
	}

	if format == FormatText {
		Writef(stdout, "Scheme: %s\n", s.Scheme)
		Writef(stdout, "Host: %s\n", s.Host)
		Writef(stdout, "Port: %d\n", s.Port)
		Writef(stdout, "Base Path: %s\n", s.BasePath)
		return nil
	}
	return OutputStructured(serverURLOutput{
		Scheme:   s.Scheme,
		Host:     s.Host,
		Port:     s.Port,
		BasePath: s.BasePath,
		Origin:   s.Origin(),
	}, format)
}
