package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"stayhub/models"
	"stayhub/services/logger"
)

// Maintenance is what the nightly job needs from the property service.
type Maintenance interface {
	RecomputeAll(ctx context.Context) (int, error)
	StaleHolds(ctx context.Context, olderThan time.Duration) ([]models.HoldReport, error)
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, spec string, m Maintenance, staleAfter time.Duration, log logger.Logger) error {
	_, err := c.AddFunc(spec, func() {
		RunMaintenance(context.Background(), m, staleAfter, log)
	})
	if err != nil {
		return err
	}
	c.Start()
	log.Info("Cron jobs initialized successfully (%s)", spec)
	return nil
}

// RunMaintenance fixes drifted roll-ups and reports holds nobody actioned.
// Holds are only reported, never released.
func RunMaintenance(ctx context.Context, m Maintenance, staleAfter time.Duration, log logger.Logger) {
	log.Info("Đang chạy bảo trì inventory lúc: %v", time.Now())

	fixed, err := m.RecomputeAll(ctx)
	if err != nil {
		log.Error("recompute roll-ups: %v", err)
	} else if fixed > 0 {
		log.Warn("corrected roll-ups on %d properties", fixed)
	}

	holds, err := m.StaleHolds(ctx, staleAfter)
	if err != nil {
		log.Error("stale hold report: %v", err)
		return
	}
	for _, h := range holds {
		log.Warn("bed %d in room %s of %s (%s) on hold since %s for booking %s",
			h.BedNumber, h.RoomID, h.PropertyName, h.PropertyID, h.HeldSince.Format(time.RFC3339), h.BookingID)
	}
}
