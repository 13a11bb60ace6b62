// Package poller fetches the active games at a fixed interval and raises a
// notification for every game that newly awaits the user's move.
package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ogs-notify/ogs-notify/internal/models"
	"github.com/ogs-notify/ogs-notify/internal/notify"
	"github.com/ogs-notify/ogs-notify/internal/ogs"
	"github.com/ogs-notify/ogs-notify/internal/tray"
)

// Config holds the loop's tunables. Zero values fall back to defaults.
type Config struct {
	Interval        time.Duration
	Summary         string
	Icon            string // attached to every notification
	AbortOnFailures bool   // stop the loop when a notification can't be delivered
}

// Loop owns the poll state and drives notifications and the tray.
type Loop struct {
	source   ogs.GameSource
	notifier notify.Notifier
	tray     tray.Sink
	cfg      Config
}

// New creates a loop. A nil sink means no tray is attached.
func New(source ogs.GameSource, notifier notify.Notifier, sink tray.Sink, cfg Config) *Loop {
	if sink == nil {
		sink = tray.Nop{}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = models.DefaultPollInterval
	}
	if cfg.Summary == "" {
		cfg.Summary = models.DefaultSummary
	}
	return &Loop{source: source, notifier: notifier, tray: sink, cfg: cfg}
}

// AttachTray replaces the tray sink. Call before Run.
func (l *Loop) AttachTray(sink tray.Sink) {
	if sink == nil {
		sink = tray.Nop{}
	}
	l.tray = sink
}

// Bootstrap fetches the user and their games and notifies for every game
// already awaiting a move. Nothing is known from before the process started,
// so all of them count as new.
func (l *Loop) Bootstrap(ctx context.Context) (State, error) {
	user, err := l.source.CurrentUser(ctx)
	if err != nil {
		return State{}, fmt.Errorf("failed to fetch current user: %w", err)
	}
	active, err := l.source.ActiveGames(ctx)
	if err != nil {
		return State{}, fmt.Errorf("failed to fetch active games: %w", err)
	}

	state := NewState(user, active)
	log.Printf("[poll] Logged in as %s (id %d), %d of %d games awaiting your move",
		user.Username, user.ID, len(state.Awaiting), len(active))

	if err := l.notifyAll(state.User, state.Awaiting); err != nil {
		return State{}, err
	}
	return state, nil
}

// Cycle runs one fetch-and-diff iteration and returns the state that replaces prev.
func (l *Loop) Cycle(ctx context.Context, prev State) (State, error) {
	active, err := l.source.ActiveGames(ctx)
	if err != nil {
		return prev, fmt.Errorf("failed to fetch active games: %w", err)
	}

	next := prev.Next(active)
	fresh := prev.NewlyAwaiting(next)
	if len(fresh) > 0 {
		log.Printf("[poll] %d new game(s) awaiting your move", len(fresh))
	}
	if err := l.notifyAll(next.User, fresh); err != nil {
		return prev, err
	}

	l.tray.SetAwaiting(len(next.Awaiting))
	return next, nil
}

// Run cycles every interval until ctx is cancelled or a cycle fails.
// Settings received on reload take effect from the next cycle.
// Cancellation is a clean stop and returns nil.
func (l *Loop) Run(ctx context.Context, state State, reload <-chan *models.Settings) error {
	l.tray.SetAwaiting(len(state.Awaiting))

	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-reload:
			l.apply(s, ticker)
		case <-ticker.C:
			next, err := l.Cycle(ctx, state)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			state = next
		}
	}
}

func (l *Loop) apply(s *models.Settings, ticker *time.Ticker) {
	if s == nil {
		return
	}
	if interval, err := s.Interval(); err == nil && interval != l.cfg.Interval {
		log.Printf("[poll] Poll interval changed from %s to %s", l.cfg.Interval, interval)
		l.cfg.Interval = interval
		ticker.Reset(interval)
	}
	l.cfg.AbortOnFailures = s.AbortOnNotifyFailure()
	l.cfg.Summary = s.NotificationSummary()
}

func (l *Loop) notifyAll(me models.User, games []models.Game) error {
	for _, g := range games {
		msg := notify.MovePending(l.cfg.Summary, g, me, l.cfg.Icon)
		if err := notify.Send(l.notifier, msg); err != nil {
			if l.cfg.AbortOnFailures {
				return fmt.Errorf("failed to notify for game %d: %w", g.ID, err)
			}
			log.Printf("[poll] Failed to notify for game %d: %v", g.ID, err)
		}
	}
	return nil
}
