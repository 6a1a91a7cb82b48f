package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tableside/internal/core/domain/events"

	"github.com/robfig/cron/v3"
)

// defaultRefreshInterval is used when the caller gives no usable interval.
const defaultRefreshInterval = 30 * time.Second

// SnapshotSource produces the authoritative board state, typically by
// calling GET /orders on the server.
type SnapshotSource interface {
	Snapshot(ctx context.Context) ([]events.LineSnapshot, error)
}

// SnapshotRefresher periodically pulls an authoritative snapshot into a
// view. The refresh is mandatory even when the push channel looks healthy:
// it is the only mechanism that removes deleted lines and repairs whatever
// a dropped event left stale.
type SnapshotRefresher struct {
	source   SnapshotSource
	view     *View
	cron     *cron.Cron
	interval time.Duration
	logger   *slog.Logger
}

// NewSnapshotRefresher creates a refresher binding one source to one view.
// A non-positive interval falls back to 30 seconds.
func NewSnapshotRefresher(
	source SnapshotSource,
	view *View,
	interval time.Duration,
	logger *slog.Logger,
) *SnapshotRefresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	return &SnapshotRefresher{
		source:   source,
		view:     view,
		cron:     cron.New(cron.WithSeconds()),
		interval: interval,
		logger:   logger.With("component", "snapshot_refresher"),
	}
}

// Start begins refreshing the view on the configured interval. A failed
// refresh is logged and retried on the next tick; the view keeps its last
// good state in between.
func (r *SnapshotRefresher) Start() error {
	_, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), func() {
		ctx := context.Background()

		lines, refreshErr := r.source.Snapshot(ctx)
		if refreshErr != nil {
			r.logger.ErrorContext(ctx, "Snapshot refresh failed", "error", refreshErr)
			return
		}

		r.view.ApplySnapshot(lines)
	})

	if err != nil {
		return err
	}

	r.cron.Start()
	r.logger.InfoContext(context.Background(), "Snapshot refresher started", "interval", r.interval.String())
	return nil
}

// Stop stops the refresher.
func (r *SnapshotRefresher) Stop() {
	r.cron.Stop()
	r.logger.InfoContext(context.Background(), "Snapshot refresher stopped")
}
