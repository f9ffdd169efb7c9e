package main

import (
	"encoding/json"
	"errors"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the user behind the configured session cookies",
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := startConnector(cmd.Context(), colorable.NewColorableStderr())
		if err != nil {
			return err
		}
		user := pc.Session.User()
		if user == nil {
			return errors.New("not logged in, pass --cookies or set cookies in the config")
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"id":          user.ID,
			"displayname": pc.Config.FormatDisplayname(user.FirstName, user.LastName),
			"user":        user,
		})
	},
}
