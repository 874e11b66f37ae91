// Package exportcmd implements the `sebas export` command.
package exportcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
)

// Command implements `sebas export`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	output string
}

// New creates the export command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "export",
		Short: "Render every visible command as a Markdown cheat sheet",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVarP(&c.output, "output", "o", "", "Write to this file instead of stdout")
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

	if c.output != "" {
		if err := svc.ExportFile(c.output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", c.output)
		return nil
	}
	doc, err := svc.Export()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), doc)
	return nil
}
