package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/pdfprint/internal/budget"
	"github.com/kpauljoseph/pdfprint/internal/concat"
	"github.com/kpauljoseph/pdfprint/internal/console"
	"github.com/kpauljoseph/pdfprint/internal/pdf"
	"github.com/kpauljoseph/pdfprint/internal/scanner"
	"github.com/kpauljoseph/pdfprint/internal/viewer"
	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/version"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App runs one pdfprint command line.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	// Start launches the viewer. Nil uses the operating system.
	Start viewer.StartFunc
}

// Execute runs args with a default App and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &App{Stdout: stdout, Stderr: stderr}
	return app.Run(ctx, args)
}

func (a *App) Run(ctx context.Context, args []string) int {
	p := newParser(a.Stdout, a.Stderr)
	inv, err := p.parse(args)
	if errors.Is(err, ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		fmt.Fprint(a.Stderr, p.usage())
		return ExitUsage
	}

	api.DisableConfigDir()

	switch in := inv.(type) {
	case VersionArgs:
		fmt.Fprint(a.Stdout, version.GetDetailedVersionInfo())
		return ExitOK
	case BudgetArgs:
		err = a.runBudget(ctx, in)
	case ConcatArgs:
		err = a.runConcat(ctx, in)
	default:
		err = fmt.Errorf("unhandled invocation %T", inv)
	}

	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitFailure
	}
	return ExitOK
}

func (a *App) newLogger(globals GlobalArgs) *logger.Logger {
	log := logger.New(
		logger.WithOutput(a.Stderr),
		logger.WithPrefix("[pdfprint] "),
	)
	log.SetVerbose(globals.Verbose || globals.Debug)
	if globals.Debug {
		log.SetLevel(logger.LevelTrace)
	}
	log.Debug("Running %s", version.GetVersionInfo())
	return log
}

func (a *App) newScanner(globals GlobalArgs, log *logger.Logger) (*scanner.DirectoryScanner, error) {
	reader, err := pdf.NewPageReader(globals.Reader)
	if err != nil {
		return nil, err
	}
	log.Debug("Using %s page reader", globals.Reader)
	return scanner.New(pdf.NewLoader(reader, log), log), nil
}

func (a *App) runBudget(ctx context.Context, args BudgetArgs) error {
	log := a.newLogger(args.GlobalArgs)

	s, err := a.newScanner(args.GlobalArgs, log)
	if err != nil {
		return err
	}

	report, rejected, err := budget.NewBuilder(s, log).Build(ctx, args.Path, args.Price, args.Exclude)
	if err != nil {
		return fmt.Errorf("budget failed: %w", err)
	}

	printer := console.NewPrinter(a.Stdout, console.Options{Color: args.Color})
	printer.BudgetResult(report, rejected)
	return nil
}

func (a *App) runConcat(ctx context.Context, args ConcatArgs) error {
	log := a.newLogger(args.GlobalArgs)

	s, err := a.newScanner(args.GlobalArgs, log)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "pdfprint-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	merger, err := pdf.NewMerger(tempDir, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := merger.Cleanup(); err != nil {
			log.Warn("Failed to clean up %s: %v", tempDir, err)
		}
	}()

	result, err := concat.NewEngine(s, merger, log).Run(ctx, args.Path, args.Output, args.Exclude)
	if err != nil {
		return fmt.Errorf("concat failed: %w", err)
	}

	printer := console.NewPrinter(a.Stdout, console.Options{Color: args.Color})
	printer.ConcatResult(result, args.Output)

	if args.Open && len(result.Failed) > 0 {
		options := []viewer.Option{
			viewer.WithCommand(args.Viewer),
			viewer.WithLimit(args.OpenLimit),
		}
		if a.Start != nil {
			options = append(options, viewer.WithStart(a.Start))
		}
		viewer.New(log, options...).OpenAll(result.Failed)
	}

	return nil
}
