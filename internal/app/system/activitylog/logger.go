// Package activitylog records domain events to the activity feed and to
// structured logs, depending on configuration.
package activitylog

import (
	"context"

	activitystore "github.com/dalemusser/assetdesk/internal/app/store/activity"
	"go.uber.org/zap"
)

// Logger writes activity entries. Destination is controlled by Mode:
// "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off".
//
// A nil *Logger is a no-op so callers never have to guard their Record
// calls; an activity write failure is logged but never propagated, since
// the feed is advisory and must not fail the operation that produced it.
type Logger struct {
	store  *activitystore.Store
	zapLog *zap.Logger
	mode   string
}

// New creates an activity Logger. Unknown modes behave like "all".
func New(store *activitystore.Store, zapLog *zap.Logger, mode string) *Logger {
	return &Logger{store: store, zapLog: zapLog, mode: mode}
}

// Record writes one activity entry.
func (l *Logger) Record(ctx context.Context, message, entryType string) {
	if l == nil || l.mode == "off" {
		return
	}

	if l.mode != "db" {
		l.zapLog.Info("activity",
			zap.String("type", entryType),
			zap.String("message", message),
		)
	}

	if l.mode == "log" {
		return
	}
	if _, err := l.store.Record(ctx, message, entryType); err != nil {
		l.zapLog.Error("failed to store activity entry",
			zap.Error(err),
			zap.String("type", entryType),
		)
	}
}
