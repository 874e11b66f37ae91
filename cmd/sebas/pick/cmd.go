// Package pickcmd implements the `sebas pick` command.
package pickcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
)

// Command implements `sebas pick`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	printOnly bool
}

// New creates the pick command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "pick",
		Aliases: []string{"p"},
		Short:   "Choose a bookmarked command interactively",
		Args:    cobra.NoArgs,
		RunE:    c.run,
	}
	c.cmd.Flags().BoolVar(&c.printOnly, "print", false, "Write the choice to stdout (used by the shell widget)")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	defer svc.Close()

	e, ok, err := shared.Choose(cmd, svc, c.printOnly)
	if err != nil || !ok {
		return err
	}
	return shared.Deliver(cmd, svc, e, c.printOnly)
}
