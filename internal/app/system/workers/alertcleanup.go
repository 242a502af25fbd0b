// internal/app/system/workers/alertcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	alertstore "github.com/dalemusser/assetdesk/internal/app/store/alerts"
	"go.uber.org/zap"
)

// AlertCleanup is a background worker that purges expired alerts.
type AlertCleanup struct {
	alerts   *alertstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewAlertCleanup creates a new alert cleanup worker.
func NewAlertCleanup(alerts *alertstore.Store, logger *zap.Logger, interval time.Duration) *AlertCleanup {
	return &AlertCleanup{
		alerts:   alerts,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *AlertCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("alert cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *AlertCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("alert cleanup worker stopped")
}

func (w *AlertCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *AlertCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.alerts.DeleteExpired(ctx)
	if err != nil {
		w.log.Error("failed to delete expired alerts", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("deleted expired alerts", zap.Int64("count", count))
	}
}
