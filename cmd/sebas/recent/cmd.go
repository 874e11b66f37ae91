// Package recentcmd implements the `sebas recent` command.
package recentcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
)

// Command implements `sebas recent`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	limit int
}

// New creates the recent command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "recent",
		Short: "Show recently obtained commands, newest first",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().IntVarP(&c.limit, "limit", "n", 10, "Maximum number of commands")
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

	picks, err := svc.Recent(c.limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(picks) == 0 {
		fmt.Fprintln(out, "Nothing obtained yet.")
		return nil
	}
	for _, p := range picks {
		fmt.Fprintf(out, "%s %s %s\n",
			shared.Hash(p.Hash), p.Command,
			shared.Dim(fmt.Sprintf("(%s, %dx, %s)", p.Group, p.Count, p.PickedAt.Local().Format("2006-01-02 15:04"))))
	}
	return nil
}
