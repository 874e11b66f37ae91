// Package addcmd implements the `sebas add` command.
package addcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/service"
)

// Command implements `sebas add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	group   string
	comment string
	yes     bool
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "add [command...]",
		Aliases: []string{"a"},
		Short:   "Bookmark a command in the nearest store root",
		Long: `Bookmark a command in the nearest store root.

The command text is taken from the arguments, or read from stdin when no
arguments are given and stdin is not a terminal:

  history | tail -n 1 | cut -c 8- | sebas add -g git`,
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.group, "group", "g", "", "Group to add to (default: default_group from config)")
	f.StringVarP(&c.comment, "comment", "c", "", "What the command does")
	f.BoolVarP(&c.yes, "yes", "y", false, "Create a missing group without asking")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" && !shared.IsTerminal(cmd.InOrStdin()) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("add: read stdin: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}
	if strings.TrimSpace(text) == "" {
		return models.ErrEmptyCommand
	}

	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	defer svc.Close()

	group, err := svc.TargetGroup(c.group)
	if err != nil {
		return err
	}
	exists, err := svc.GroupExists(group)
	if err != nil {
		return err
	}
	if !exists {
		ok, err := shared.Approved(cmd, c.yes, svc.Config.Confirm,
			fmt.Sprintf("Group %q does not exist. Create it?", group))
		if err != nil {
			return err
		}
		if !ok {
			shared.Cancelled(cmd)
			return nil
		}
	}

	res, err := svc.Add(service.AddInput{Command: text, Group: group, Comment: c.comment})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %s %s\n", shared.Hash(res.Entry.Command.Hash), res.Entry.Command.Command)
	fmt.Fprintf(out, "Group: %s (%s)\n", res.Entry.Group, res.Entry.StoreRoot)
	shared.Warnings(out, res.Warnings)
	return nil
}
