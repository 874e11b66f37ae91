// Package synccmd implements the `sebas sync` command.
package synccmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
)

// Command implements `sebas sync`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the sync command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "sync",
		Aliases: []string{"roots"},
		Short:   "Show the store roots visible from here, nearest first",
		Args:    cobra.NoArgs,
		RunE:    c.run,
	}
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

	stats, err := svc.RootStats()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintf(out, "No store roots found from %s. Run 'sebas init' to create one.\n", svc.Dir)
		return nil
	}
	total := 0
	for _, r := range stats {
		fmt.Fprintf(out, "%s  %s\n", r.Root, shared.Dim(fmt.Sprintf("%d groups, %d commands", r.Groups, r.Commands)))
		total += r.Commands
	}
	fmt.Fprintf(out, "\n%d roots, %d total commands\n", len(stats), total)
	return nil
}
