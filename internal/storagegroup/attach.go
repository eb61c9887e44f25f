package storagegroup

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/vnx-tools/vnxctl/internal/errors"
	"github.com/vnx-tools/vnxctl/internal/metrics"
)

// Attach maps dev into the group and returns its HLU.
//
// When the array reports the chosen HLU as already in use, the group is
// reloaded and the attach retried with another HLU. retryLimit caps the
// number of attempts; zero or less retries until ctx is done. If the reload
// shows dev was attached meanwhile, its HLU is returned.
func (g *Group) Attach(ctx context.Context, dev Device, retryLimit int) (int, error) {
	alu, err := dev.ResolveALU(ctx)
	if err != nil {
		return 0, err
	}

	log := g.log().With("group", g.name, "alu", alu, "op", uuid.NewString())
	bo := g.newBackOff()
	bo.Reset()

	for attempt := 1; ; attempt++ {
		hlu, err := g.AllocateHLU(alu)
		if err != nil {
			if errors.HasCode(err, errors.ExitNoHLUAvailable) {
				metrics.RecordAttach(g.name, metrics.ResultNoHLU)
			} else {
				metrics.RecordAttach(g.name, metrics.ResultFailed)
			}
			return 0, err
		}

		log.Debug("adding hlu", "hlu", hlu, "attempt", attempt)
		err = g.backend.AddHLU(ctx, g.name, hlu, alu)
		if err == nil {
			metrics.RecordAttach(g.name, metrics.ResultSuccess)
			g.publishFree()
			log.Info("attached", "hlu", hlu, "attempts", attempt)
			return hlu, nil
		}

		if !errors.HasCode(err, errors.ExitALUNumberInUse) {
			g.ReleaseHLU(alu)
			metrics.RecordAttach(g.name, metrics.ResultFailed)
			return 0, errors.AttachFailed(g.name, alu, err)
		}

		metrics.RecordConflict(g.name)
		if retryLimit > 0 && attempt >= retryLimit {
			g.ReleaseHLU(alu)
			metrics.RecordAttach(g.name, metrics.ResultRetryExhausted)
			return 0, errors.ConflictRetryExceeded(g.name, alu, attempt, err)
		}

		log.Warn("hlu already in use on the array, reloading storage group", "hlu", hlu, "attempt", attempt)
		if rerr := g.Refresh(ctx); rerr != nil {
			g.ReleaseHLU(alu)
			metrics.RecordAttach(g.name, metrics.ResultFailed)
			return 0, rerr
		}
		if existing, ok := g.HLU(alu); ok {
			metrics.RecordAttach(g.name, metrics.ResultSuccess)
			log.Info("already attached on the array", "hlu", existing)
			return existing, nil
		}

		delay := bo.NextBackOff()
		if delay == backoff.Stop {
			metrics.RecordAttach(g.name, metrics.ResultRetryExhausted)
			return 0, errors.ConflictRetryExceeded(g.name, alu, attempt, fmt.Errorf("backoff stopped: %w", err))
		}
		if err := sleep(ctx, delay); err != nil {
			metrics.RecordAttach(g.name, metrics.ResultFailed)
			return 0, err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
