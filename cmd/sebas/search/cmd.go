// Package searchcmd implements the `sebas search` command.
package searchcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
)

// Command implements `sebas search`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	limit int
}

// New creates the search command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "search <query...>",
		Short: "Search bookmarked commands by text and comment",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.run,
	}
	c.cmd.Flags().IntVarP(&c.limit, "limit", "n", 10, "Maximum number of results (0 for all)")
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

	query := strings.Join(args, " ")
	results, err := svc.Search(query, c.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No matches for %q.\n", query)
		return nil
	}
	for _, r := range results {
		shared.Entry(out, r.Entry, false, 0)
	}
	return nil
}
