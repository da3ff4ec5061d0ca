package storage

import (
	"context"
	"time"

	"api"

	"github.com/rs/zerolog"
)

// There is no two-phase commit between postgres and the object store.
// Services delete metadata rows first, inside a transaction, and park the
// blob keys in a redis set before attempting the storage remove. Keys are
// cleared from the set once the remove succeeds, so a crash in between
// leaves a retried orphan, never a metadata row pointing at a missing blob.

const pendingDeleteSet = "blobs:pending-delete"

// MarkPendingDelete records keys that must eventually disappear from the
// object store.
func MarkPendingDelete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	return api.Redis.SAdd(ctx, pendingDeleteSet, members...).Err()
}

// ClearPendingDelete removes keys after a successful storage remove.
func ClearPendingDelete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	return api.Redis.SRem(ctx, pendingDeleteSet, members...).Err()
}

type Reconciler struct {
	store    *ObjectStore
	interval time.Duration
	logger   zerolog.Logger
}

func NewReconciler(store *ObjectStore, interval time.Duration) *Reconciler {
	return &Reconciler{
		store:    store,
		interval: interval,
		logger:   api.Logger,
	}
}

// Run sweeps the pending-delete set until the context is cancelled.
func (slf *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(slf.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := slf.Sweep(ctx); err != nil {
				slf.logger.Error().Err(err).Msg("Error sweeping orphaned blobs")
			}
		}
	}
}

// Sweep removes every parked key from the object store and clears the ones
// that succeeded.
func (slf *Reconciler) Sweep(ctx context.Context) error {
	keys, err := api.Redis.SMembers(ctx, pendingDeleteSet).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := slf.store.Remove(ctx, keys); err != nil {
		return err
	}

	slf.logger.Info().Int("count", len(keys)).Msg("Reconciled orphaned blobs")
	return ClearPendingDelete(ctx, keys)
}
