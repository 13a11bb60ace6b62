package cli

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ogs-notify/ogs-notify/internal/assets"
	"github.com/ogs-notify/ogs-notify/internal/config"
	"github.com/ogs-notify/ogs-notify/internal/models"
	"github.com/ogs-notify/ogs-notify/internal/notify"
	"github.com/ogs-notify/ogs-notify/internal/poller"
	"github.com/ogs-notify/ogs-notify/internal/tray"
)

func runNotifier(cmd *cobra.Command, args []string) error {
	settings, paths, err := loadSettings()
	if err != nil {
		return err
	}
	interval, err := settings.Interval()
	if err != nil {
		return err
	}

	if err := config.AcquireInstance(); err != nil {
		return err
	}
	defer func() {
		if err := config.ReleaseInstance(); err != nil {
			log.Printf("Failed to remove instance info: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := assets.InstallIcons(filepath.Dir(paths.IdleIcon)); err != nil {
		log.Printf("Failed to install icons: %v", err)
	}

	client, err := acquireClient(ctx, paths)
	if err != nil {
		return err
	}

	loop := poller.New(client, notify.Desktop{}, nil, poller.Config{
		Interval:        interval,
		Summary:         settings.NotificationSummary(),
		Icon:            paths.IdleIcon,
		AbortOnFailures: settings.AbortOnNotifyFailure(),
	})

	state, err := loop.Bootstrap(ctx)
	if err != nil {
		return err
	}

	reload, stopWatch := watchSettings()
	defer stopWatch()

	if noTray || !settings.Tray.Enabled {
		log.Printf("Polling every %s (no tray)", interval)
		return loop.Run(ctx, state, reload)
	}

	icons, err := tray.LoadIcons(paths.IdleIcon, paths.AwaitingIcon)
	if err != nil {
		return err
	}

	log.Printf("Polling every %s", interval)
	return runWithTray(ctx, cancel, loop, state, icons, reload)
}

// runWithTray runs the tray on the main goroutine and the poll loop beside it.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(ctx context.Context, cancel context.CancelFunc, loop *poller.Loop, state poller.State, icons tray.Icons, reload <-chan *models.Settings) error {
	errCh := make(chan error, 1)
	started := make(chan struct{})

	onStart := func(h *tray.Handle) {
		loop.AttachTray(h)
		close(started)

		go func() {
			errCh <- loop.Run(ctx, state, reload)
			tray.Quit()
		}()

		// Quit the tray on SIGINT/SIGTERM
		go func() {
			<-ctx.Done()
			tray.Quit()
		}()
	}

	onExit := func() {
		cancel()
	}

	// This blocks the main goroutine until the tray exits.
	tray.Run(len(state.Awaiting), icons, onStart, onExit)
	cancel()

	select {
	case <-started:
		return <-errCh
	default:
		return nil
	}
}

// watchSettings reloads the config file on change. Without a watchable file
// the returned channel never fires.
func watchSettings() (<-chan *models.Settings, func()) {
	path, err := config.SettingsPath(configFile)
	if err != nil {
		log.Printf("[config] Not watching config: %v", err)
		return nil, func() {}
	}
	w, err := config.WatchSettings(path)
	if err != nil {
		log.Printf("[config] Not watching %s: %v", path, err)
		return nil, func() {}
	}
	return w.Updates(), w.Stop
}
