// Package shared holds the context passed to all CLI commands.
package shared

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-ports/sebas/internal/config"
	"github.com/go-ports/sebas/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the sebas home directory.
	// When empty, resolution falls through to SEBAS_HOME env var → persisted config → ~/.sebas-rs.
	Home string
	// Dir is where store-root discovery starts. Empty means the working directory.
	Dir string
	// Debug forces debug logging regardless of log_level.
	Debug bool
}

// ResolveHome returns the effective home and where it came from.
func (c *Context) ResolveHome() (home, source string) {
	if c.Home != "" {
		return c.Home, "flag"
	}
	return config.ResolveHome()
}

// Service opens a Service for this invocation. Callers must Close it.
func (c *Context) Service() (*service.Service, error) {
	home, _ := c.ResolveHome()
	return service.New(service.Options{Home: home, Dir: c.Dir})
}

// SetupLogging installs a charmbracelet logger as the slog default. The level
// comes from log_level in the home config; Debug overrides it.
func (c *Context) SetupLogging(w io.Writer) {
	level := log.WarnLevel
	home, _ := c.ResolveHome()
	if cfg, err := config.Load(filepath.Join(home, "config.yaml")); err == nil {
		if l, err := log.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "sebas",
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
}

// IsTerminal reports whether r is an interactive terminal. Readers that are
// not files (tests, pipes wrapped in buffers) never are.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Stdin returns the command's input as a file when it is one.
func Stdin(cmd *cobra.Command) *os.File {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return f
	}
	return nil
}
