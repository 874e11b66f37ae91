package mcp

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/go-ports/sebas/internal/models"
)

func TestRoundTwo(t *testing.T) {
	c := qt.New(t)
	c.Assert(roundTwo(0.123456), qt.Equals, 0.12)
	c.Assert(roundTwo(0.7), qt.Equals, 0.7)
	c.Assert(roundTwo(0.999), qt.Equals, 1.0)
}

func TestEntryMap_OmitsEmptyFields(t *testing.T) {
	c := qt.New(t)

	e := models.ResolvedCommand{
		Command:   models.NewCommand("ls -la", ""),
		Group:     "misc",
		StoreRoot: "/work/.sebas",
	}
	m := entryMap(e)
	c.Assert(m["hash"], qt.Equals, "1de700c2")
	_, hasIndex := m["index"]
	c.Assert(hasIndex, qt.IsFalse)
	_, hasComment := m["comment"]
	c.Assert(hasComment, qt.IsFalse)

	e.Index = 4
	e.Command.Comment = "long listing"
	m = entryMap(e)
	c.Assert(m["index"], qt.Equals, 4)
	c.Assert(m["comment"], qt.Equals, "long listing")
}

func TestToolError_Hints(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not found", err: fmt.Errorf("resolve: %w", models.ErrNotFound), want: "sebas_list"},
		{name: "no store root", err: models.ErrNoStoreRoot, want: "sebas init"},
		{name: "other", err: models.ErrEmptyCommand, want: models.ErrEmptyCommand.Error()},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			res := toolError(tt.err)
			c.Assert(res.IsError, qt.IsTrue)
			tc, ok := mcp.AsTextContent(res.Content[0])
			c.Assert(ok, qt.IsTrue)
			c.Assert(tc.Text, qt.Contains, tt.want)
		})
	}
}
