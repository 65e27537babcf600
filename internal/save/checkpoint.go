package save

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"chosenoffset.com/tilecrawl/internal/telemetry"
	"chosenoffset.com/tilecrawl/pkg/logger"
)

// Checkpointer writes records to a Store at checkpoints. Write failures are
// logged and reported, never propagated: the in-memory game carries on and
// the next checkpoint tries again.
type Checkpointer struct {
	store  Store
	slot   string
	tracer trace.Tracer
	log    *logrus.Entry
	now    func() time.Time
}

// NewCheckpointer creates a checkpointer writing to slot on store.
func NewCheckpointer(store Store, slot string, tracer trace.Tracer) *Checkpointer {
	return &Checkpointer{
		store:  store,
		slot:   slot,
		tracer: tracer,
		log:    logger.Component("save").WithField("slot", slot),
		now:    time.Now,
	}
}

// Slot returns the slot name.
func (c *Checkpointer) Slot() string {
	return c.slot
}

// Checkpoint stamps and stores a copy of rec. It reports false when the
// save was skipped this cycle; rec itself is never modified.
func (c *Checkpointer) Checkpoint(ctx context.Context, rec *Record) bool {
	ctx, span := telemetry.Start(ctx, c.tracer, "save.checkpoint",
		telemetry.SaveSlot.String(c.slot),
		telemetry.LevelID.String(rec.Level),
	)
	defer span.End()

	out := rec.Clone()
	out.SavedAt = c.now().UTC()

	if err := c.store.Save(ctx, c.slot, out); err != nil {
		telemetry.Fail(span, err, "checkpoint failed")
		c.log.WithError(err).Warn("checkpoint skipped")
		return false
	}

	c.log.WithFields(logrus.Fields{
		"level_id": out.Level,
		"id":       out.ID,
	}).Info("checkpoint saved")
	return true
}

// Restore loads the slot. A missing slot gives a fresh record on
// startLevel; any other failure also gives a fresh record along with the
// error so the caller can decide whether to continue.
func (c *Checkpointer) Restore(ctx context.Context, startLevel string) (*Record, error) {
	ctx, span := telemetry.Start(ctx, c.tracer, "save.restore", telemetry.SaveSlot.String(c.slot))
	defer span.End()

	rec, err := c.store.Load(ctx, c.slot)
	switch {
	case errors.Is(err, ErrNotFound):
		c.log.Info("no save found, starting fresh")
		return NewRecord(startLevel), nil
	case err != nil:
		telemetry.Fail(span, err, "restore failed")
		return NewRecord(startLevel), err
	}

	rec.Normalize(startLevel)
	c.log.WithFields(logrus.Fields{
		"level_id": rec.Level,
		"id":       rec.ID,
	}).Info("save restored")
	return rec, nil
}
