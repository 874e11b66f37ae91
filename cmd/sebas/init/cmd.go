// Package initcmd implements the `sebas init` command.
package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
)

// Command implements `sebas init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Create a store root in path (default: the current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	defer svc.Close()

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	root, created, err := svc.Init(path)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized store root at %s\n", root)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Store root already exists at %s\n", root)
	}
	return nil
}
