// Package notify raises desktop notifications for games awaiting a move.
package notify

import (
	"errors"
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/ogs-notify/ogs-notify/internal/models"
)

// ErrNotify wraps every failure to deliver a notification.
var ErrNotify = errors.New("notification failed")

// Notifier delivers one desktop notification.
type Notifier interface {
	Notify(summary, body, iconPath string) error
}

// Desktop sends notifications through the OS notification service.
type Desktop struct{}

// Ensure Desktop implements Notifier at compile time.
var _ Notifier = Desktop{}

// Notify shows summary and body with the icon at iconPath.
func (Desktop) Notify(summary, body, iconPath string) error {
	if err := beeep.Notify(summary, body, iconPath); err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}

// Message is a notification ready to send.
type Message struct {
	Summary string
	Body    string
	Icon    string
}

// MovePending builds the notification for a game where it is me's turn.
func MovePending(summary string, game models.Game, me models.User, icon string) Message {
	return Message{
		Summary: summary,
		Body:    fmt.Sprintf("It's your move against %s", game.OtherUser(me).Username),
		Icon:    icon,
	}
}

// Send delivers m through n.
func Send(n Notifier, m Message) error {
	return n.Notify(m.Summary, m.Body, m.Icon)
}
