package shared

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/picker"
	"github.com/go-ports/sebas/internal/service"
	"github.com/go-ports/sebas/internal/shell"
)

// Choose opens the picker over the merged listing. ok is false when the list
// is empty or the user cancelled; both are reported on stderr. With
// printOnly the picker draws on stderr so stdout carries only the command.
//
//revive:disable:flag-parameter
func Choose(cmd *cobra.Command, svc *service.Service, printOnly bool) (models.ResolvedCommand, bool, error) {
	entries, err := svc.List("")
	if err != nil {
		return models.ResolvedCommand{}, false, err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No commands saved.")
		return models.ResolvedCommand{}, false, nil
	}

	var opts []picker.Option
	if printOnly {
		opts = append(opts, picker.WithOutput(cmd.ErrOrStderr()))
	}
	res, err := picker.Run(cmd.Context(), entries, opts...)
	if err != nil {
		return models.ResolvedCommand{}, false, err
	}
	if res.Outcome != picker.Selected {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return models.ResolvedCommand{}, false, nil
	}
	return res.Entry, true, nil
}

// Deliver records e in the usage log and hands its text to the injector
// chosen by config, or prints it when printOnly is set.
func Deliver(cmd *cobra.Command, svc *service.Service, e models.ResolvedCommand, printOnly bool) error {
	e = svc.Obtain(e)

	out := cmd.OutOrStdout()
	var inj shell.Injector = shell.PrintInjector{W: out}
	if !printOnly {
		tty := Stdin(cmd)
		if tty == nil {
			tty = os.Stdin
		}
		inj = shell.New(svc.Config.Inject, tty, out)
		if e.Command.Comment != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), Dim("# "+e.Command.Comment))
		}
	}
	return inj.Inject(e.Command.Command)
}

//revive:enable:flag-parameter
