// Package listcmd implements the `sebas list` command.
package listcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
)

// Command implements `sebas list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	group   string
	verbose bool
	plain   bool
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the commands of every store root from here up",
		Args:    cobra.NoArgs,
		RunE:    c.run,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.group, "group", "g", "", "Only list this group")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "Show hashes, creation times and pick counts")
	f.BoolVarP(&c.plain, "plain", "p", false, "Tab-separated index, hash, group and command; no headings")

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

	entries, err := svc.List(c.group)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if c.plain {
		for _, e := range entries {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", e.Index, e.Command.Hash, e.Group, e.Command.Command)
		}
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No commands saved.")
		return nil
	}

	var counts map[string]int
	if c.verbose {
		counts = svc.PickCounts()
	}

	var last string
	for _, e := range entries {
		if key := e.StoreRoot + "/" + e.Group; key != last {
			if last != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, shared.Header(shared.Label(e)))
			last = key
		}
		shared.Entry(out, e, c.verbose, counts[e.Command.Hash])
	}
	fmt.Fprintf(out, "\n%d total commands\n", len(entries))
	return nil
}
