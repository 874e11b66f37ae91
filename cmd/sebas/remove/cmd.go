// Package removecmd implements the `sebas remove` command.
package removecmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
	"github.com/go-ports/sebas/internal/service"
)

// Command implements `sebas remove`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	yes bool
}

// New creates the remove command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a bookmarked command by index or hash prefix",
		Args:    cobra.ExactArgs(1),
		RunE:    c.run,
	}
	c.cmd.Flags().BoolVarP(&c.yes, "yes", "y", false, "Do not ask for confirmation")
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

	e, err := svc.Resolve(args[0])
	if err != nil {
		return err
	}
	ok, err := shared.Approved(cmd, c.yes, svc.Config.Confirm,
		fmt.Sprintf("Remove %s %s?", e.Command.Hash, e.Command.Command))
	if err != nil {
		return err
	}
	if !ok {
		shared.Cancelled(cmd)
		return nil
	}

	if _, err := svc.Remove(strconv.Itoa(e.Index)); err != nil {
		return err
	}
	if _, err := svc.Forget(e.Command.Hash); err != nil && !errors.Is(err, service.ErrUsageDisabled) {
		slog.Warn("failed to forget usage history", "hash", e.Command.Hash, "err", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", shared.Hash(e.Command.Hash), e.Command.Command)
	return nil
}
