package storagegroup

import (
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Option configures a Group.
type Option func(*Group)

// WithLimits bounds the group's HLU range. Defaults to DefaultLimits.
func WithLimits(l *Limits) Option {
	return func(g *Group) {
		g.limits = l
	}
}

// WithPickPolicy sets how a free HLU is chosen. Defaults to PickLowest.
func WithPickPolicy(p PickPolicy) Option {
	return func(g *Group) {
		g.pick = p
	}
}

// WithLogger sets the group's logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Group) {
		g.logger = l
	}
}

// WithBackOff sets the delay between attach attempts after an HLU conflict.
// The function is called once per Attach.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(g *Group) {
		g.newBackOff = fn
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	// attempts are bounded by the retry limit, not by time
	b.MaxElapsedTime = 0
	return b
}
