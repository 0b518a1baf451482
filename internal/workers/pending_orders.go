package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/sand/crypto-exchanger-app/backend/internal/handlers"
)

// PendingOrdersMonitor periodically reports how many orders still await
// out-of-band settlement. Observational only: this system never advances an
// order past pending.
type PendingOrdersMonitor struct {
	logger       *slog.Logger
	orderService handlers.OrderService

	// How often to report the pending count.
	reportInterval time.Duration
}

func NewPendingOrdersMonitor(
	logger *slog.Logger,
	orderService handlers.OrderService,
	reportInterval time.Duration,
) *PendingOrdersMonitor {
	return &PendingOrdersMonitor{
		logger:         logger,
		orderService:   orderService,
		reportInterval: reportInterval,
	}
}

// Start begins the periodic reporting loop and blocks until ctx is done.
func (m *PendingOrdersMonitor) Start(ctx context.Context) {
	m.logger.Info("Starting pending orders monitor", "report_interval", m.reportInterval.String())

	// Report once immediately so a broken store shows up at startup.
	if err := m.report(ctx); err != nil {
		m.logger.Error("Initial pending orders report failed", "error", err)
	}

	ticker := time.NewTicker(m.reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Pending orders monitor stopped")
			return
		case <-ticker.C:
			if err := m.report(ctx); err != nil {
				m.logger.Error("Pending orders report failed", "error", err)
			}
		}
	}
}

func (m *PendingOrdersMonitor) report(ctx context.Context) error {
	count, err := m.orderService.PendingOrderCount(ctx)
	if err != nil {
		return err
	}

	m.logger.Info("Pending orders", "count", count)
	return nil
}
