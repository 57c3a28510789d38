package notify

import "context"

type listenerKey struct{}

// WithListener returns a context whose notifications are also delivered to l
// by notifiers built with Scoped.
func WithListener(ctx context.Context, l Notifier) context.Context {
	return context.WithValue(ctx, listenerKey{}, l)
}

func listenerFrom(ctx context.Context) Notifier {
	l, _ := ctx.Value(listenerKey{}).(Notifier)
	return l
}

// Scoped wraps n so each notification also reaches the listener attached to
// the call's context, if any.
func Scoped(n Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, t Toast) {
		if n != nil {
			n.Notify(ctx, t)
		}
		if l := listenerFrom(ctx); l != nil {
			l.Notify(ctx, t)
		}
	})
}
