package cli

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdfprint/internal/concat"
	"github.com/kpauljoseph/pdfprint/internal/config"
	"github.com/kpauljoseph/pdfprint/internal/pdf"
)

const DefaultPath = "./"

// ErrHelp is returned by ParseArgs after help output was requested.
var ErrHelp = errors.New("help requested")

// UsageError is a command line that could not be turned into an Invocation.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Invocation is one parsed command: BudgetArgs, ConcatArgs or VersionArgs.
type Invocation interface {
	invocation()
}

// GlobalArgs are the options shared by every command, already merged with the config file.
type GlobalArgs struct {
	Exclude   *regexp.Regexp
	Verbose   bool
	Debug     bool
	Color     bool
	Reader    string
	OpenLimit int
	Viewer    []string
}

type BudgetArgs struct {
	GlobalArgs
	Path  string
	Price float64
}

type ConcatArgs struct {
	GlobalArgs
	Path   string
	Output string
	Open   bool
}

type VersionArgs struct {
	GlobalArgs
}

func (BudgetArgs) invocation()  {}
func (ConcatArgs) invocation()  {}
func (VersionArgs) invocation() {}

type globalFlags struct {
	exclude    string
	configPath string
	verbose    bool
	debug      bool
	noColor    bool
}

type parser struct {
	root  *cobra.Command
	flags globalFlags
	inv   Invocation
}

// ParseArgs turns command line arguments, without the program name, into an Invocation.
func ParseArgs(args []string) (Invocation, error) {
	return newParser(io.Discard, io.Discard).parse(args)
}

func newParser(stdout, stderr io.Writer) *parser {
	p := &parser{}

	p.root = &cobra.Command{
		Use:           "pdfprint",
		Short:         "Budget and merge the A4 PDF documents of a directory tree",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return &UsageError{Err: errors.New("missing command")}
		},
	}
	p.root.SetOut(stdout)
	p.root.SetErr(stderr)

	pf := p.root.PersistentFlags()
	pf.StringVar(&p.flags.exclude, "exclude", "", "regex `pattern` to exclude documents")
	pf.StringVar(&p.flags.configPath, "config", "", "path to config file (default "+config.DefaultPath+")")
	pf.BoolVar(&p.flags.verbose, "verbose", false, "enable verbose logging")
	pf.BoolVar(&p.flags.debug, "debug", false, "enable trace logging")
	pf.BoolVar(&p.flags.noColor, "no-color", false, "disable coloured output")

	p.root.AddCommand(p.budgetCommand(), p.concatCommand(), p.versionCommand())
	return p
}

func (p *parser) parse(args []string) (Invocation, error) {
	// cobra falls back to os.Args on a nil slice
	if args == nil {
		args = []string{}
	}
	p.root.SetArgs(args)
	if err := p.root.Execute(); err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			return nil, usageErr
		}
		return nil, &UsageError{Err: err}
	}
	if p.inv == nil {
		return nil, ErrHelp
	}
	return p.inv, nil
}

func (p *parser) usage() string {
	return p.root.UsageString()
}

func (p *parser) budgetCommand() *cobra.Command {
	var (
		path  string
		price float64
	)

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Print the printing cost of every A4 document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, globals, err := p.globals(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("price") {
				price = cfg.PricePerSheet
			}
			if price < 0 {
				return &UsageError{Err: fmt.Errorf("price must not be negative, got %v", price)}
			}
			p.inv = BudgetArgs{GlobalArgs: globals, Path: path, Price: price}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", DefaultPath, "directory to scan")
	cmd.Flags().Float64Var(&price, "price", config.Default().PricePerSheet, "price per sheet")
	return cmd
}

func (p *parser) concatCommand() *cobra.Command {
	var (
		path   string
		output string
		noOpen bool
	)

	cmd := &cobra.Command{
		Use:   "concat",
		Short: "Merge every A4 document into one file ready for duplex printing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, globals, err := p.globals(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.Output
			}
			p.inv = ConcatArgs{
				GlobalArgs: globals,
				Path:       path,
				Output:     concat.OutputName(output),
				Open:       !noOpen,
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", DefaultPath, "directory to scan")
	cmd.Flags().StringVar(&output, "output", config.Default().Output, "merged output file")
	cmd.Flags().BoolVar(&noOpen, "no_open", false, "do not open the rejected documents")
	return cmd
}

func (p *parser) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, globals, err := p.globals(cmd)
			if err != nil {
				return err
			}
			p.inv = VersionArgs{GlobalArgs: globals}
			return nil
		},
	}
}

// globals loads the config file and lets explicitly set flags override it.
func (p *parser) globals(cmd *cobra.Command) (*config.Config, GlobalArgs, error) {
	cfg, err := config.Resolve(p.flags.configPath)
	if err != nil {
		return nil, GlobalArgs{}, &UsageError{Err: fmt.Errorf("error loading config: %w", err)}
	}

	pattern := cfg.Exclude
	if cmd.Flags().Changed("exclude") {
		pattern = p.flags.exclude
	}

	var exclude *regexp.Regexp
	if pattern != "" {
		exclude, err = regexp.Compile(pattern)
		if err != nil {
			return nil, GlobalArgs{}, &UsageError{Err: fmt.Errorf("invalid exclude pattern: %w", err)}
		}
	}

	if _, err := pdf.NewPageReader(cfg.Reader); err != nil {
		return nil, GlobalArgs{}, &UsageError{Err: err}
	}

	globals := GlobalArgs{
		Exclude:   exclude,
		Verbose:   p.flags.verbose || cfg.Verbose,
		Debug:     p.flags.debug,
		Color:     cfg.Color && !p.flags.noColor,
		Reader:    cfg.Reader,
		OpenLimit: cfg.OpenLimit,
		Viewer:    cfg.Viewer,
	}
	return cfg, globals, nil
}
