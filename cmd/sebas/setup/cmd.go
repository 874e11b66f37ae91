// Package setupcmd implements the `sebas setup` command group.
package setupcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/cmd/sebas/shared"
	"github.com/go-ports/sebas/internal/setup"
)

// Command implements `sebas setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Install the shell key binding or register sebas with an agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newSetupShell("bash"),
		newSetupShell("zsh"),
		newSetupClaudeCode(),
		newSetupCursor(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// setup bash / setup zsh
// ---------------------------------------------------------------------------

func newSetupShell(shell string) *cobra.Command {
	var rcFile string
	cmd := &cobra.Command{
		Use:   shell,
		Short: fmt.Sprintf("Bind Ctrl-G to the sebas picker in %s", shell),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setup.SetupShell(shell, rcFile)
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

// ---------------------------------------------------------------------------
// setup claude-code
// ---------------------------------------------------------------------------

func newSetupClaudeCode() *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "claude-code",
		Short: "Register the sebas MCP server with Claude Code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := ResolveConfigDir(".claude", configDir, project)
			result, err := setup.Register(setup.ClaudeCode(target, project))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .claude directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	return cmd
}

// ---------------------------------------------------------------------------
// setup cursor
// ---------------------------------------------------------------------------

func newSetupCursor() *cobra.Command {
	var configDir string
	var project bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Register the sebas MCP server with Cursor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := ResolveConfigDir(".cursor", configDir, project)
			result, err := setup.Register(setup.Cursor(target))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Path to .cursor directory")
	cmd.Flags().BoolVar(&project, "project", false, "Install in current project instead of globally")
	return cmd
}

// ---------------------------------------------------------------------------
// Helper
// ---------------------------------------------------------------------------

// ResolveConfigDir picks an agent config directory: configDir when set,
// otherwise dotDir under the working directory (project) or the user home.
//
//revive:disable:flag-parameter
func ResolveConfigDir(dotDir, configDir string, project bool) string {
	if configDir != "" {
		return configDir
	}
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, dotDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dotDir)
}

//revive:enable:flag-parameter
