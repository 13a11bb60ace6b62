package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogs-notify/ogs-notify/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in again, replacing the saved session once the login succeeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, paths, err := loadSettings()
		if err != nil {
			return err
		}

		client, err := session.Relogin(cmd.Context(), paths.SessionFile, session.Options{Prompter: credentialPrompter()})
		if err != nil {
			return fmt.Errorf("failed to log in: %w", err)
		}
		user, err := client.CurrentUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to verify session: %w", err)
		}

		fmt.Printf("%s Logged in as %s\n", styleSuccess.Render("✓"), styleValue.Render(user.Username))
		fmt.Println(styleHint.Render("  Session saved to " + paths.SessionFile))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, paths, err := loadSettings()
		if err != nil {
			return err
		}
		if err := session.Forget(paths.SessionFile); err != nil {
			return err
		}
		fmt.Printf("%s Session removed (%s)\n", styleSuccess.Render("✓"), paths.SessionFile)
		return nil
	},
}
