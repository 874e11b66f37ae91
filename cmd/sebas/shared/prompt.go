package shared

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Confirm asks a yes/no question on the command's streams. Anything but
// "y" or "yes" (including EOF) is a no.
func Confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(cmd.OutOrStdout())
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Approved reports whether a guarded operation may go ahead: yes was passed,
// confirmations are disabled in config, or the user agreed.
//
//revive:disable:flag-parameter
func Approved(cmd *cobra.Command, yes, confirmEnabled bool, question string) (bool, error) {
	if yes || !confirmEnabled {
		return true, nil
	}
	return Confirm(cmd, question)
}

//revive:enable:flag-parameter

// Cancelled reports a declined prompt.
func Cancelled(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
}
