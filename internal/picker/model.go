// Package picker implements the interactive terminal list used to choose one
// bookmarked command from the merged listing.
package picker

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-ports/sebas/internal/models"
)

// Outcome is how a picker session terminated.
type Outcome int

const (
	// Cancelled means the user quit without choosing.
	Cancelled Outcome = iota
	// Selected means the user chose an entry.
	Selected
	// Failed means the terminal could not be driven; Result.Err says why.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Failed:
		return "failed"
	default:
		return "cancelled"
	}
}

// Result is the terminal state reported to the caller.
type Result struct {
	Outcome Outcome
	Entry   models.ResolvedCommand
	Err     error
}

// row is one rendered line: either a group header or a selectable entry.
type row struct {
	header string
	entry  *models.ResolvedCommand
}

func (r row) selectable() bool { return r.entry != nil }

// chrome is the number of lines used by the title and footer.
const chrome = 4

// Model is the picker state machine. It is driven one key at a time through
// Update and rendered in full by View after every transition.
type Model struct {
	rows   []row
	total  int
	cursor int // index into rows; -1 when nothing is selectable
	offset int
	width  int
	height int

	done   bool
	result Result
}

// NewModel builds a picker over entries in their merge order, inserting a
// header row whenever the store root or group changes. The cursor starts on
// the first selectable row.
func NewModel(entries []models.ResolvedCommand) Model {
	m := Model{total: len(entries), cursor: -1}
	var lastRoot, lastGroup string
	for i := range entries {
		e := entries[i]
		if i == 0 || e.StoreRoot != lastRoot || e.Group != lastGroup {
			m.rows = append(m.rows, row{header: headerLabel(e)})
			lastRoot, lastGroup = e.StoreRoot, e.Group
		}
		m.rows = append(m.rows, row{entry: &e})
	}
	m.cursor = m.first()
	return m
}

func headerLabel(e models.ResolvedCommand) string {
	owner := filepath.Base(filepath.Dir(e.StoreRoot))
	return owner + "/" + e.Group
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			m.result = Result{Outcome: Cancelled}
			return m, tea.Quit

		case "down", "j":
			m.cursor = m.step(1)

		case "up", "k":
			m.cursor = m.step(-1)

		case "home", "g":
			m.cursor = m.first()

		case "end", "G":
			m.cursor = m.last()

		case "enter":
			if e, ok := m.Current(); ok {
				m.done = true
				m.result = Result{Outcome: Selected, Entry: e}
				return m, tea.Quit
			}
		}
		m.clampOffset()
	}
	return m, nil
}

// Current returns the entry under the cursor.
func (m Model) Current() (models.ResolvedCommand, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || !m.rows[m.cursor].selectable() {
		return models.ResolvedCommand{}, false
	}
	return *m.rows[m.cursor].entry, true
}

// Done reports whether the model reached a terminal state.
func (m Model) Done() bool { return m.done }

// Result returns the terminal state. It is only meaningful once Done.
func (m Model) Result() Result { return m.result }

// step moves the cursor to the next selectable row in direction dir (+1 or
// -1), wrapping around. With one selectable row the cursor stays put.
func (m Model) step(dir int) int {
	n := len(m.rows)
	if m.cursor < 0 || n == 0 {
		return m.cursor
	}
	for i := 1; i < n; i++ {
		idx := ((m.cursor+dir*i)%n + n) % n
		if m.rows[idx].selectable() {
			return idx
		}
	}
	return m.cursor
}

func (m Model) first() int {
	for i, r := range m.rows {
		if r.selectable() {
			return i
		}
	}
	return -1
}

func (m Model) last() int {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].selectable() {
			return i
		}
	}
	return -1
}

// visibleRows is the number of list rows that fit, or every row when the
// window size is still unknown.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return len(m.rows)
	}
	return max(1, m.height-chrome)
}

func (m *Model) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < 0 {
		m.offset = 0
		return
	}
	// keep the header above the first entry of a group in view
	top := m.cursor
	if top > 0 && !m.rows[top-1].selectable() {
		top--
	}
	if top < m.offset {
		m.offset = top
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	m.offset = max(0, min(m.offset, max(0, len(m.rows)-visible)))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Stored Commands"))
	sb.WriteString("\n\n")

	if len(m.rows) == 0 {
		sb.WriteString(dimStyle.Render("  No commands saved."))
		sb.WriteString("\n")
	}

	end := min(len(m.rows), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if !r.selectable() {
			sb.WriteString(headerStyle.Render(r.header))
			sb.WriteString("\n")
			continue
		}
		line := fmt.Sprintf("%3d. %s", r.entry.Index, r.entry.Command.Command)
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString(normalStyle.Render("  " + line))
		}
		if r.entry.Command.Comment != "" {
			sb.WriteString(dimStyle.Render("  # " + r.entry.Command.Comment))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(countStyle.Render(fmt.Sprintf("%d", m.total)))
	sb.WriteString(" total commands  ")
	sb.WriteString(hintStyle.Render("↑/↓ or j/k navigate · enter select · q quit"))
	return sb.String()
}
