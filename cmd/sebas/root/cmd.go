// Package rootcmd wires the root cobra.Command for the sebas CLI binary.
package rootcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/sebas/cmd/sebas/add"
	configcmd "github.com/go-ports/sebas/cmd/sebas/config"
	editcmd "github.com/go-ports/sebas/cmd/sebas/edit"
	exportcmd "github.com/go-ports/sebas/cmd/sebas/export"
	groupcmd "github.com/go-ports/sebas/cmd/sebas/group"
	initcmd "github.com/go-ports/sebas/cmd/sebas/init"
	listcmd "github.com/go-ports/sebas/cmd/sebas/list"
	mcpcmd "github.com/go-ports/sebas/cmd/sebas/mcp"
	obtaincmd "github.com/go-ports/sebas/cmd/sebas/obtain"
	pickcmd "github.com/go-ports/sebas/cmd/sebas/pick"
	recentcmd "github.com/go-ports/sebas/cmd/sebas/recent"
	removecmd "github.com/go-ports/sebas/cmd/sebas/remove"
	searchcmd "github.com/go-ports/sebas/cmd/sebas/search"
	setupcmd "github.com/go-ports/sebas/cmd/sebas/setup"
	"github.com/go-ports/sebas/cmd/sebas/shared"
	synccmd "github.com/go-ports/sebas/cmd/sebas/sync"
	uninstallcmd "github.com/go-ports/sebas/cmd/sebas/uninstall"
	"github.com/go-ports/sebas/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the sebas CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "sebas",
		Short:         "Bookmark shell commands per directory tree and put them back on your prompt",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctx.SetupLogging(cmd.ErrOrStderr())
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sebas %s (commit %s, built %s)\n",
		buildinfo.Version, buildinfo.GitCommit, buildinfo.BuildDate))

	pf := root.PersistentFlags()
	pf.StringVar(
		&ctx.Home, "home", "",
		"Override sebas home directory (default: $SEBAS_HOME env → persisted config → ~/.sebas-rs)",
	)
	pf.StringVarP(&ctx.Dir, "dir", "C", "", "Discover store roots from this directory instead of the working directory")
	pf.BoolVar(&ctx.Debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		editcmd.New(ctx).Cmd(),
		removecmd.New(ctx).Cmd(),
		searchcmd.New(ctx).Cmd(),
		obtaincmd.New(ctx).Cmd(),
		pickcmd.New(ctx).Cmd(),
		groupcmd.New(ctx).Cmd(),
		synccmd.New(ctx).Cmd(),
		recentcmd.New(ctx).Cmd(),
		exportcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		uninstallcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)
	root.AddCommand(groupcmd.Shortcuts(ctx)...)

	return root
}
