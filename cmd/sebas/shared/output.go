package shared

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-ports/sebas/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	hashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// Label names a group the way listings and the picker do: "<project>/<group>".
func Label(e models.ResolvedCommand) string {
	return filepath.Base(filepath.Dir(e.StoreRoot)) + "/" + e.Group
}

// Header renders a section heading.
func Header(s string) string { return headerStyle.Render(s) }

// Hash renders a command hash.
func Hash(s string) string { return hashStyle.Render(s) }

// Dim renders secondary text.
func Dim(s string) string { return dimStyle.Render(s) }

// Warnings prints one line per warning.
func Warnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, warnStyle.Render("Warning: "+msg))
	}
}

// Entry prints one listing line, with the comment underneath when set.
// verbose adds the hash, creation time and pick count when non-zero.
//
//revive:disable:flag-parameter
func Entry(w io.Writer, e models.ResolvedCommand, verbose bool, picks int) {
	line := fmt.Sprintf("%3d. %s", e.Index, e.Command.Command)
	if verbose {
		line += "  " + Hash(e.Command.Hash) + " " + Dim(e.Command.CreatedAt)
		if picks > 0 {
			line += " " + Dim(fmt.Sprintf("(%dx)", picks))
		}
	}
	fmt.Fprintln(w, line)
	if e.Command.Comment != "" {
		fmt.Fprintln(w, Dim("     # "+e.Command.Comment))
	}
}

//revive:enable:flag-parameter
