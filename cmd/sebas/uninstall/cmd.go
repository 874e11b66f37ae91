// Package uninstallcmd implements the `sebas uninstall` command group.
package uninstallcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	setupcmd "github.com/go-ports/sebas/cmd/sebas/setup"
	"github.com/go-ports/sebas/cmd/sebas/shared"
	"github.com/go-ports/sebas/internal/setup"
)

// Command implements `sebas uninstall`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the uninstall command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the shell key binding or an agent registration",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newUninstallShell("bash"),
		newUninstallShell("zsh"),
		newUninstallClaudeCode(),
		newUninstallCursor(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newUninstallShell(shell string) *cobra.Command {
	var rcFile string
	cmd := &cobra.Command{
		Use:   shell,
		Short: fmt.Sprintf("Remove the sebas key binding from %s", shell),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setup.UninstallShell(shell, rcFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&rcFile, "rc-file", "", fmt.Sprintf("Shell rc file to edit (default: ~/.%src)", shell))
	return cmd
}

func newUninstallClaudeCode() *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "claude-code",
		Short: "Remove sebas from Claude Code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := setupcmd.ResolveConfigDir(".claude", configDir, project)
			result, err := setup.Unregister(setup.ClaudeCode(target, project))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .claude directory")
	cmd.Flags().BoolVar(&project, "project", false, "Uninstall from current project instead of globally")
	return cmd
}

func newUninstallCursor() *cobra.Command {
	var configDir string
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Remove sebas from Cursor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := setupcmd.ResolveConfigDir(".cursor", configDir, false)
			result, err := setup.Unregister(setup.Cursor(target))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .cursor directory")
	return cmd
}
