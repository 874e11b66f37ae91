// Package editcmd implements the `sebas edit` command.
package editcmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
	"github.com/go-ports/sebas/internal/service"
)

// Command implements `sebas edit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	command string
	group   string
	comment string
	yes     bool
}

// New creates the edit command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "edit <id>",
		Aliases: []string{"e"},
		Short:   "Change the text, group or comment of a bookmarked command",
		Long: `Change the text, group or comment of a bookmarked command.

<id> is an index from 'sebas list' or a hash prefix. Changing the text gives
the command a new hash. The command stays in its own store root.`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.command, "command", "", "New command text")
	f.StringVar(&c.group, "group", "", "Move to this group")
	f.StringVar(&c.comment, "comment", "", "New comment (empty clears it)")
	f.BoolVarP(&c.yes, "yes", "y", false, "Do not ask for confirmation")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	var in service.EditInput
	f := cmd.Flags()
	if f.Changed("command") {
		in.Command = &c.command
	}
	if f.Changed("group") {
		in.Group = &c.group
	}
	if f.Changed("comment") {
		in.Comment = &c.comment
	}
	if in.Command == nil && in.Group == nil && in.Comment == nil {
		return errors.New("edit: nothing to change (use --command, --group or --comment)")
	}

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
		fmt.Sprintf("Edit %s %s?", e.Command.Hash, e.Command.Command))
	if err != nil {
		return err
	}
	if !ok {
		shared.Cancelled(cmd)
		return nil
	}

	res, err := svc.Edit(strconv.Itoa(e.Index), in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Updated %s %s\n", shared.Hash(res.After.Command.Hash), res.After.Command.Command)
	if res.After.Group != res.Before.Group {
		fmt.Fprintf(out, "Moved: %s -> %s\n", res.Before.Group, res.After.Group)
	}
	shared.Warnings(out, res.Warnings)
	return nil
}
