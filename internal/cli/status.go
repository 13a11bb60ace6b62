package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/ogs-notify/ogs-notify/internal/config"
	"github.com/ogs-notify/ogs-notify/internal/models"
)

const maxNameWidth = 24

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the games awaiting your move",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, paths, err := loadSettings()
		if err != nil {
			return err
		}

		client, err := acquireClient(cmd.Context(), paths)
		if err != nil {
			return err
		}
		user, err := client.CurrentUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch current user: %w", err)
		}
		games, err := client.ActiveGames(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch active games: %w", err)
		}

		printStatus(os.Stdout, user, games)
		printNotifierState(os.Stdout)
		return nil
	},
}

func printStatus(w io.Writer, user models.User, games []models.Game) {
	awaiting := models.AwaitingMove(games, user)

	fmt.Fprintf(w, "%s %s\n", styleLabel.Render("Logged in as"), styleValue.Render(user.Username))
	fmt.Fprintf(w, "%s %d\n\n", styleLabel.Render("Active games:"), len(games))

	if len(awaiting) == 0 {
		fmt.Fprintln(w, styleHint.Render("No games awaiting your move."))
		return
	}

	fmt.Fprintln(w, styleWarning.Render(fmt.Sprintf("Awaiting your move (%d):", len(awaiting))))
	for _, g := range awaiting {
		opponent := ansi.Truncate(g.OtherUser(user).Username, maxNameWidth, "…")
		fmt.Fprintf(w, "  %s %s %s\n",
			styleBrand.Render("●"),
			styleValue.Render(opponent),
			styleHint.Render(fmt.Sprintf("(game %d)", g.ID)))
	}
}

func printNotifierState(w io.Writer) {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		fmt.Fprintf(w, "\n%s %v\n", styleError.Render("Could not read notifier state:"), err)
		return
	}
	if !running || info == nil {
		fmt.Fprintf(w, "\n%s\n", styleHint.Render("Notifier is not running."))
		return
	}
	uptime := time.Since(info.StartedAt).Truncate(time.Second)
	fmt.Fprintf(w, "\n%s (PID %d, up %s)\n", styleSuccess.Render("Notifier is running"), info.PID, uptime)
}
