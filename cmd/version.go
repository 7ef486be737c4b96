package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jaycalderwood/KQL/internal/message"
	"github.com/jaycalderwood/KQL/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of the console",
	Run: func(cmd *cobra.Command, args []string) {
		message.Info(version.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
