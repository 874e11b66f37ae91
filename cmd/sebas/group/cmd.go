// Package groupcmd implements the `sebas group` command group.
package groupcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
	"github.com/go-ports/sebas/internal/models"
)

// Command implements `sebas group`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the group command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "group",
		Aliases: []string{"g"},
		Short:   "List, create, rename or delete groups",
		RunE:    func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newList(ctx, "list", "ls"),
		newAdd(ctx, "add"),
		newMove(ctx, "move", "mv", "rename"),
		newRemove(ctx, "remove", "rm"),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// Shortcuts returns the top-level lsg, addg, mvg and rmg commands.
func Shortcuts(ctx *shared.Context) []*cobra.Command {
	cmds := []*cobra.Command{
		newList(ctx, "lsg"),
		newAdd(ctx, "addg"),
		newMove(ctx, "mvg"),
		newRemove(ctx, "rmg"),
	}
	for _, cmd := range cmds {
		cmd.Hidden = true
	}
	return cmds
}

// ---------------------------------------------------------------------------
// group list
// ---------------------------------------------------------------------------

func newList(ctx *shared.Context, name string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     name,
		Aliases: aliases,
		Short:   "List the groups of every store root from here up",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			defer svc.Close()

			groups, err := svc.Groups()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No groups.")
				return nil
			}
			var last string
			for _, g := range groups {
				if g.StoreRoot != last {
					fmt.Fprintln(out, shared.Header(g.StoreRoot))
					last = g.StoreRoot
				}
				fmt.Fprintf(out, "  %s %s\n", g.Name, shared.Dim(fmt.Sprintf("(%d)", g.Commands)))
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// group add
// ---------------------------------------------------------------------------

func newAdd(ctx *shared.Context, name string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <name>",
		Aliases: aliases,
		Short:   "Create an empty group in the nearest store root",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			defer svc.Close()

			clean, err := svc.AddGroup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s\n", clean)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// group move
// ---------------------------------------------------------------------------

func newMove(ctx *shared.Context, name string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <old> <new>",
		Aliases: aliases,
		Short:   "Rename a group of the nearest store root",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			defer svc.Close()

			to, err := svc.RenameGroup(args[0], args[1])
			if err != nil {
				return err
			}
			from, _ := models.SanitizeGroupName(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed group %s -> %s\n", from, to)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// group remove
// ---------------------------------------------------------------------------

func newRemove(ctx *shared.Context, name string, aliases ...string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     name + " <name>",
		Aliases: aliases,
		Short:   "Delete a group of the nearest store root with all its commands",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			defer svc.Close()

			ok, err := shared.Approved(cmd, yes, svc.Config.Confirm,
				fmt.Sprintf("Remove group %q and all its commands?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				shared.Cancelled(cmd)
				return nil
			}
			n, err := svc.RemoveGroup(args[0])
			if err != nil {
				return err
			}
			clean, _ := models.SanitizeGroupName(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed group %s (%d commands)\n", clean, n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
