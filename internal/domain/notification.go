package domain

import (
	"context"
	"time"
)

// NotificationLevel selects the style and title of a notification.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// DefaultDismissAfter is how long a notification stays visible.
const DefaultDismissAfter = 3 * time.Second

// Title returns the heading shown above the message.
func (l NotificationLevel) Title() string {
	switch l {
	case LevelError:
		return "Error"
	case LevelInfo:
		return "Info"
	default:
		return "Success"
	}
}

// Notification is a transient message shown after an action.
type Notification struct {
	Level        NotificationLevel
	Message      string
	DismissAfter time.Duration
}

// Notifier receives notifications emitted by controller actions.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }
