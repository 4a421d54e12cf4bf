package main

import (
	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the import template with an example row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.WriteTemplate(cmd.OutOrStdout())
	},
}
