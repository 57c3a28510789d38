// Package notify delivers short user-facing notifications ("toasts").
//
// Notifications are fire-and-forget: Notify never returns an error and never
// blocks the caller on a failing sink. Sinks log their own delivery failures.
package notify

import "context"

// Variant selects how a notification is rendered.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is a transient notification with a title and a description.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Success builds a default-variant toast.
func Success(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDefault}
}

// Failure builds a destructive-variant toast.
func Failure(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDestructive}
}

// IsDestructive reports whether the toast signals a failure.
func (t Toast) IsDestructive() bool {
	return t.Variant == VariantDestructive
}

// Notifier raises notifications.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, t Toast)

func (f NotifierFunc) Notify(ctx context.Context, t Toast) { f(ctx, t) }

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(context.Context, Toast) {})

// Fanout delivers each notification to every sink in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, t Toast) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, t)
		}
	}
}

// Counter is satisfied by the platform metrics.
type Counter interface {
	IncNotification(variant string)
}

// Counted wraps n so every notification is also counted by variant.
func Counted(n Notifier, c Counter) Notifier {
	return NotifierFunc(func(ctx context.Context, t Toast) {
		if c != nil {
			c.IncNotification(string(t.Variant))
		}
		n.Notify(ctx, t)
	})
}
