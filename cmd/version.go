package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tidalsec/entradump/internal/message"
	"github.com/tidalsec/entradump/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of entradump",
	Run: func(cmd *cobra.Command, args []string) {
		message.Info("%s", version.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
