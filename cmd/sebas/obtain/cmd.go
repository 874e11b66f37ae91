// Package obtaincmd implements the `sebas obtain` command.
package obtaincmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
	"github.com/go-ports/sebas/internal/models"
)

// Command implements `sebas obtain`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	printOnly bool
}

// New creates the obtain command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "obtain [id]",
		Aliases: []string{"o", "get"},
		Short:   "Put a bookmarked command on the prompt",
		Long: `Put a bookmarked command on the prompt.

[id] is an index from 'sebas list' or a hash prefix. Without it the
interactive picker opens. The command is pushed into the terminal input
(inject: auto | tiocsti in config) or printed (inject: print, --print).`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}
	c.cmd.Flags().BoolVar(&c.printOnly, "print", false, "Write the command to stdout instead of the terminal input")
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

	var e models.ResolvedCommand
	if len(args) == 1 {
		if e, err = svc.Resolve(args[0]); err != nil {
			return err
		}
	} else {
		var ok bool
		if e, ok, err = shared.Choose(cmd, svc, c.printOnly); err != nil || !ok {
			return err
		}
	}
	return shared.Deliver(cmd, svc, e, c.printOnly)
}
