package picker_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	qt "github.com/frankban/quicktest"

	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/picker"
)

func entries() []models.ResolvedCommand {
	mk := func(text, group, root string, idx int) models.ResolvedCommand {
		return models.ResolvedCommand{
			Command:   models.NewCommand(text, ""),
			Group:     group,
			StoreRoot: root,
			Index:     idx,
		}
	}
	return []models.ResolvedCommand{
		mk("git pull", "dev", "/work/app/.sebas", 1),
		mk("git status", "dev", "/work/app/.sebas", 2),
		mk("kubectl get pods", "ops", "/work/.sebas", 3),
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m picker.Model, keys ...string) (picker.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(picker.Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModel_CursorStartsOnFirstEntry(t *testing.T) {
	c := qt.New(t)
	m := picker.NewModel(entries())
	cur, ok := m.Current()
	c.Assert(ok, qt.IsTrue)
	c.Assert(cur.Index, qt.Equals, 1)
	c.Assert(m.Done(), qt.IsFalse)
}

func TestUpdate_Navigation(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name      string
		keys      []string
		wantIndex int
	}{
		{name: "down moves to next entry", keys: []string{"down"}, wantIndex: 2},
		{name: "j moves to next entry", keys: []string{"j"}, wantIndex: 2},
		{name: "down skips group header", keys: []string{"down", "down"}, wantIndex: 3},
		{name: "down wraps to first", keys: []string{"j", "j", "j"}, wantIndex: 1},
		{name: "up from first wraps to last", keys: []string{"up"}, wantIndex: 3},
		{name: "k moves back", keys: []string{"j", "j", "k"}, wantIndex: 2},
		{name: "G jumps to last", keys: []string{"G"}, wantIndex: 3},
		{name: "end jumps to last", keys: []string{"end"}, wantIndex: 3},
		{name: "g jumps to first", keys: []string{"j", "j", "g"}, wantIndex: 1},
		{name: "home jumps to first", keys: []string{"G", "home"}, wantIndex: 1},
		{name: "unbound key is ignored", keys: []string{"x"}, wantIndex: 1},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			m, cmd := press(picker.NewModel(entries()), tt.keys...)
			c.Assert(isQuit(cmd), qt.IsFalse)
			cur, ok := m.Current()
			c.Assert(ok, qt.IsTrue)
			c.Assert(cur.Index, qt.Equals, tt.wantIndex)
		})
	}
}

func TestUpdate_SingleEntryStaysPut(t *testing.T) {
	c := qt.New(t)
	m, _ := press(picker.NewModel(entries()[:1]), "down", "up", "j")
	cur, ok := m.Current()
	c.Assert(ok, qt.IsTrue)
	c.Assert(cur.Command.Command, qt.Equals, "git pull")
}

func TestUpdate_Enter_Selects(t *testing.T) {
	c := qt.New(t)
	m, cmd := press(picker.NewModel(entries()), "down", "down", "enter")
	c.Assert(isQuit(cmd), qt.IsTrue)
	c.Assert(m.Done(), qt.IsTrue)

	res := m.Result()
	c.Assert(res.Outcome, qt.Equals, picker.Selected)
	c.Assert(res.Entry.Command.Command, qt.Equals, "kubectl get pods")
	c.Assert(res.Entry.Group, qt.Equals, "ops")
	c.Assert(res.Entry.StoreRoot, qt.Equals, "/work/.sebas")
}

func TestUpdate_Cancel(t *testing.T) {
	c := qt.New(t)
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		c.Run(k, func(c *qt.C) {
			m, cmd := press(picker.NewModel(entries()), "down", k)
			c.Assert(isQuit(cmd), qt.IsTrue)
			c.Assert(m.Done(), qt.IsTrue)
			c.Assert(m.Result().Outcome, qt.Equals, picker.Cancelled)
		})
	}
}

func TestUpdate_KeysIgnoredAfterDone(t *testing.T) {
	c := qt.New(t)
	m, _ := press(picker.NewModel(entries()), "enter", "down", "q")
	c.Assert(m.Result().Outcome, qt.Equals, picker.Selected)
	c.Assert(m.Result().Entry.Index, qt.Equals, 1)
}

func TestUpdate_EmptyList(t *testing.T) {
	c := qt.New(t)
	m, cmd := press(picker.NewModel(nil), "down", "enter")
	c.Assert(isQuit(cmd), qt.IsFalse)
	_, ok := m.Current()
	c.Assert(ok, qt.IsFalse)

	m, cmd = press(m, "q")
	c.Assert(isQuit(cmd), qt.IsTrue)
	c.Assert(m.Result().Outcome, qt.Equals, picker.Cancelled)
}

func TestView_RendersHeadersEntriesAndFooter(t *testing.T) {
	c := qt.New(t)
	out := picker.NewModel(entries()).View()

	c.Assert(out, qt.Contains, "Stored Commands")
	c.Assert(out, qt.Contains, "app/dev")
	c.Assert(out, qt.Contains, "work/ops")
	c.Assert(out, qt.Contains, "git status")
	c.Assert(out, qt.Contains, "kubectl get pods")
	c.Assert(out, qt.Contains, "total commands")
	c.Assert(out, qt.Contains, "q quit")
}

func TestView_ScrollsToKeepCursorVisible(t *testing.T) {
	c := qt.New(t)

	var list []models.ResolvedCommand
	for i := 1; i <= 20; i++ {
		list = append(list, models.ResolvedCommand{
			Command:   models.NewCommand("echo "+strings.Repeat("x", i), ""),
			Group:     "long",
			StoreRoot: "/work/.sebas",
			Index:     i,
		})
	}

	next, _ := picker.NewModel(list).Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m := next.(picker.Model)
	c.Assert(m.View(), qt.Not(qt.Contains), "echo "+strings.Repeat("x", 20))

	m, _ = press(m, "G")
	out := m.View()
	c.Assert(out, qt.Contains, "echo "+strings.Repeat("x", 20))
	c.Assert(out, qt.Not(qt.Contains), "work/long")
}

func TestRun_SelectsFromInput(t *testing.T) {
	c := qt.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := picker.Run(ctx, entries(),
		picker.WithInput(strings.NewReader("j\r")),
		picker.WithOutput(&strings.Builder{}),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Outcome, qt.Equals, picker.Selected)
	c.Assert(res.Entry.Command.Command, qt.Equals, "git status")
}

func TestRun_CancelledFromInput(t *testing.T) {
	c := qt.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := picker.Run(ctx, entries(),
		picker.WithInput(strings.NewReader("q")),
		picker.WithOutput(&strings.Builder{}),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Outcome, qt.Equals, picker.Cancelled)
}
