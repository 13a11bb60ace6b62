package cli

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ogs-notify/ogs-notify/internal/config"
	"github.com/ogs-notify/ogs-notify/internal/models"
	"github.com/ogs-notify/ogs-notify/internal/ogs"
	"github.com/ogs-notify/ogs-notify/internal/session"
	"github.com/ogs-notify/ogs-notify/internal/tui"
)

// loadSettings loads the config file from --config-file or the data directory
// and resolves the paths it points at.
func loadSettings() (*models.Settings, config.Paths, error) {
	settings, err := config.LoadSettings(configFile)
	if err != nil {
		return nil, config.Paths{}, fmt.Errorf("failed to load config: %w", err)
	}
	paths, err := config.ResolvePaths(settings.Paths)
	if err != nil {
		return nil, config.Paths{}, fmt.Errorf("failed to resolve paths: %w", err)
	}
	return settings, paths, nil
}

// credentialPrompter picks the masked form for terminals and plain line
// reads for piped input.
func credentialPrompter() session.Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return tui.LoginPrompter{}
	}
	return session.ReaderPrompter{In: os.Stdin, Out: os.Stderr}
}

func acquireClient(ctx context.Context, paths config.Paths) (*ogs.Client, error) {
	client, err := session.Acquire(ctx, paths.SessionFile, session.Options{Prompter: credentialPrompter()})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}
	return client, nil
}
