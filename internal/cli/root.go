// Package cli implements the ogs-notify commands.
package cli

import (
	"log"

	"github.com/spf13/cobra"
)

var (
	configFile string
	noTray     bool
)

var rootCmd = &cobra.Command{
	Use:   "ogs-notify",
	Short: "Desktop notifications when it's your move on online-go.com",
	Long: `ogs-notify polls online-go.com for games awaiting your move.
It raises a desktop notification for each new one and shows the overall
status as a tray icon. The first run asks for your OGS credentials and
keeps the session for later runs.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetPrefix("[ogs-notify] ")
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	},
	RunE: runNotifier,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config-file", "c", "", "alternate config file (.yaml or .toml)")
	rootCmd.Flags().BoolVar(&noTray, "no-tray", false, "run without the tray icon")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(versionCmd)
}
