package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ogs-notify/ogs-notify/internal/config"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running notifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		running, info, err := config.IsInstanceRunning()
		if err != nil {
			return fmt.Errorf("failed to check notifier status: %w", err)
		}
		if !running || info == nil {
			fmt.Println("Notifier is not running.")
			return nil
		}

		process, err := os.FindProcess(info.PID)
		if err != nil {
			return fmt.Errorf("failed to find notifier process: %w", err)
		}
		if err := process.Signal(syscall.SIGTERM); err != nil {
			return fmt.Errorf("failed to send stop signal: %w", err)
		}

		// Poll for shutdown (max 5 seconds)
		for i := 0; i < 50; i++ {
			time.Sleep(100 * time.Millisecond)
			stillRunning, _, err := config.IsInstanceRunning()
			if err == nil && !stillRunning {
				fmt.Println(styleSuccess.Render("Notifier stopped."))
				return nil
			}
		}
		return fmt.Errorf("notifier did not stop within timeout")
	},
}
