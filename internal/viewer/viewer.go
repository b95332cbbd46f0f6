// Package viewer opens documents in an external program.
package viewer

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/kpauljoseph/pdfprint/pkg/logger"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

const DefaultLimit = 5

// StartFunc launches name with args and does not wait for it to exit.
type StartFunc func(name string, args ...string) error

type Launcher struct {
	command []string
	limit   int
	start   StartFunc
	logger  *logger.Logger
}

type Option func(*Launcher)

// WithCommand replaces the platform opener. The document path is appended to command.
func WithCommand(command []string) Option {
	return func(l *Launcher) {
		if len(command) > 0 {
			l.command = command
		}
	}
}

func WithLimit(limit int) Option {
	return func(l *Launcher) {
		l.limit = limit
	}
}

func WithStart(start StartFunc) Option {
	return func(l *Launcher) {
		l.start = start
	}
}

func New(logger *logger.Logger, options ...Option) *Launcher {
	l := &Launcher{
		command: PlatformCommand(runtime.GOOS),
		limit:   DefaultLimit,
		start:   startProcess,
		logger:  logger,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

// PlatformCommand returns the default opener for goos.
func PlatformCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// OpenAll opens the first documents up to the limit and returns how many were
// started. Launch failures are logged and skipped.
func (l *Launcher) OpenAll(docs []models.Document) int {
	if len(docs) > l.limit {
		l.logger.Info("Opening the first %d of %d failed documents", l.limit, len(docs))
		docs = docs[:l.limit]
	}

	opened := 0
	for _, doc := range docs {
		if err := l.Open(doc.Path); err != nil {
			l.logger.Warn("%v", err)
			continue
		}
		opened++
	}
	return opened
}

func (l *Launcher) Open(path string) error {
	args := append(append([]string{}, l.command[1:]...), path)
	if err := l.start(l.command[0], args...); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", path, l.command[0], err)
	}
	return nil
}

func startProcess(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
