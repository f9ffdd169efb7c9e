package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/beeper/profilehub/pkg/profile"
	"github.com/beeper/profilehub/pkg/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view <id>[/<sub>][?edit]",
	Short: "Open a profile in the terminal",
	Long: `Open a profile page in an interactive terminal view.

The argument is a location below the profile root, for example
"alice", "alice/all-skills" or "alice?edit".`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func profileLocation(arg string) string {
	if strings.HasPrefix(arg, profile.ProfileRoot) {
		return arg
	}
	return profile.ProfileRoot + strings.TrimPrefix(arg, "/")
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	location := profileLocation(args[0])
	if _, err := profile.ParseLocation(location); err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs are only kept with --verbose.
	logOut := io.Discard
	if verbose {
		logOut = colorable.NewColorableStderr()
	}
	pc, err := startConnector(ctx, logOut)
	if err != nil {
		return err
	}
	page := pc.NewPage()
	defer page.Close()

	program := tea.NewProgram(tui.NewModel(ctx, page, pc.Config, location), tea.WithAltScreen(), tea.WithContext(ctx))
	pc.AddEventListener(func(evt any) {
		program.Send(tui.EventMsg{Event: evt})
	})
	if _, err = program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
