// Package setup installs and uninstalls sebas integrations: the Ctrl-G shell
// widget for bash and zsh, and the MCP server entry for coding agents.
package setup

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed widget.bash
var bashWidget string

//go:embed widget.zsh
var zshWidget string

// Markers delimit the block sebas owns inside a shell rc file.
const (
	BeginMarker = "# >>> sebas >>>"
	EndMarker   = "# <<< sebas <<<"
)

// ErrUnknownShell is returned for shells without a bundled widget.
var ErrUnknownShell = errors.New("unsupported shell (expected bash or zsh)")

// Result is the return value from all Setup/Uninstall functions.
type Result struct {
	Status  string // always "ok"
	Message string
}

func ok(msg string) Result          { return Result{Status: "ok", Message: msg} }
func okf(f string, a ...any) Result { return ok(fmt.Sprintf(f, a...)) }

// ---------------------------------------------------------------------------
// Shell widget
// ---------------------------------------------------------------------------

// Widget returns the marked rc block for shell.
func Widget(shell string) (string, error) {
	var body string
	switch shell {
	case "bash":
		body = bashWidget
	case "zsh":
		body = zshWidget
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShell, shell)
	}
	return BeginMarker + "\n" + strings.TrimRight(body, "\n") + "\n" + EndMarker + "\n", nil
}

// DefaultRCFile returns ~/.bashrc or ~/.zshrc.
func DefaultRCFile(shell string) (string, error) {
	if _, err := Widget(shell); err != nil {
		return "", err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+shell+"rc"), nil
}

// SetupShell appends the widget block for shell to rcFile, creating the file
// when needed. An existing block is left untouched. rcFile defaults to
// DefaultRCFile(shell) when empty.
func SetupShell(shell, rcFile string) (Result, error) {
	block, err := Widget(shell)
	if err != nil {
		return Result{}, err
	}
	if rcFile == "" {
		if rcFile, err = DefaultRCFile(shell); err != nil {
			return Result{}, err
		}
	}

	data, err := os.ReadFile(rcFile)
	if err != nil && !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("setup.SetupShell: %w", err)
	}
	content := string(data)
	if strings.Contains(content, BeginMarker) {
		return ok("Already installed"), nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content += "\n"
	}
	content += block

	if err := os.MkdirAll(filepath.Dir(rcFile), 0o755); err != nil {
		return Result{}, fmt.Errorf("setup.SetupShell: %w", err)
	}
	if err := os.WriteFile(rcFile, []byte(content), 0o644); err != nil { // #nosec G306 -- shell rc files are world-readable by convention
		return Result{}, fmt.Errorf("setup.SetupShell: %w", err)
	}
	return okf("Installed: Ctrl-G widget in %s (restart your shell)", rcFile), nil
}

// UninstallShell removes the widget block from rcFile.
func UninstallShell(shell, rcFile string) (Result, error) {
	if _, err := Widget(shell); err != nil {
		return Result{}, err
	}
	if rcFile == "" {
		var err error
		if rcFile, err = DefaultRCFile(shell); err != nil {
			return Result{}, err
		}
	}

	data, err := os.ReadFile(rcFile)
	if os.IsNotExist(err) {
		return ok("Nothing to remove"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("setup.UninstallShell: %w", err)
	}

	cleaned, removed := removeBlock(string(data))
	if !removed {
		return ok("Nothing to remove"), nil
	}
	if err := os.WriteFile(rcFile, []byte(cleaned), 0o644); err != nil { // #nosec G306 -- shell rc files are world-readable by convention
		return Result{}, fmt.Errorf("setup.UninstallShell: %w", err)
	}
	return okf("Removed: Ctrl-G widget from %s", rcFile), nil
}

// removeBlock drops every line from BeginMarker through EndMarker along with
// the blank line SetupShell put in front of it. An unterminated block runs to
// end of file.
func removeBlock(content string) (string, bool) {
	if !strings.Contains(content, BeginMarker) {
		return content, false
	}
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == BeginMarker:
			inBlock = true
			if n := len(result); n > 0 && strings.TrimSpace(result[n-1]) == "" {
				result = result[:n-1]
			}
		case inBlock && trimmed == EndMarker:
			inBlock = false
		case !inBlock:
			result = append(result, line)
		}
	}
	cleaned := strings.TrimRight(strings.Join(result, "\n"), "\n")
	if cleaned == "" {
		return "", true
	}
	return cleaned + "\n", true
}
