// Package mcpcmd implements the `sebas mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
	internalmcp "github.com/go-ports/sebas/internal/mcp"
	"github.com/go-ports/sebas/internal/service"
)

// Command implements `sebas mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the sebas MCP server (stdio transport)",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	home, _ := c.ctx.ResolveHome()
	return internalmcp.Serve(cmd.Context(), service.Options{Home: home, Dir: c.ctx.Dir})
}
