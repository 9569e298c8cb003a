package jobs

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"

	"stayhub/models"
)

type fakeMaintenance struct {
	fixed        int
	recomputeErr error
	holds        []models.HoldReport
	olderThan    time.Duration
}

func (f *fakeMaintenance) RecomputeAll(ctx context.Context) (int, error) {
	return f.fixed, f.recomputeErr
}

func (f *fakeMaintenance) StaleHolds(ctx context.Context, olderThan time.Duration) ([]models.HoldReport, error) {
	f.olderThan = olderThan
	return f.holds, nil
}

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, v...))
}

func (l *recordLogger) Debug(format string, v ...interface{}) { l.add("DEBUG", format, v...) }
func (l *recordLogger) Info(format string, v ...interface{})  { l.add("INFO", format, v...) }
func (l *recordLogger) Warn(format string, v ...interface{})  { l.add("WARN", format, v...) }
func (l *recordLogger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }

func (l *recordLogger) count(prefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestRunMaintenanceReportsHolds(t *testing.T) {
	m := &fakeMaintenance{
		fixed: 2,
		holds: []models.HoldReport{
			{PropertyID: "p1", PropertyName: "Green Nest", RoomID: "r1", BedNumber: 1, BookingID: "b1", HeldSince: time.Now().Add(-96 * time.Hour)},
			{PropertyID: "p1", PropertyName: "Green Nest", RoomID: "r1", BedNumber: 2, BookingID: "b2", HeldSince: time.Now().Add(-80 * time.Hour)},
		},
	}
	log := &recordLogger{}
	RunMaintenance(context.Background(), m, 72*time.Hour, log)

	if m.olderThan != 72*time.Hour {
		t.Errorf("olderThan = %v", m.olderThan)
	}
	// one line for the corrected roll-ups, one per hold
	if got := log.count("WARN"); got != 3 {
		t.Errorf("warn lines = %d: %v", got, log.lines)
	}
}

func TestRunMaintenanceKeepsGoingAfterRecomputeError(t *testing.T) {
	m := &fakeMaintenance{recomputeErr: stderrors.New("db down"), holds: []models.HoldReport{{BookingID: "b1"}}}
	log := &recordLogger{}
	RunMaintenance(context.Background(), m, time.Hour, log)

	if log.count("ERROR") != 1 || log.count("WARN") != 1 {
		t.Errorf("lines = %v", log.lines)
	}
}

func TestInitCronJobsRejectsBadSpec(t *testing.T) {
	c := cron.New()
	defer c.Stop()
	if err := InitCronJobs(c, "not a schedule", &fakeMaintenance{}, time.Hour, &recordLogger{}); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
	if err := InitCronJobs(c, "@every 1h", &fakeMaintenance{}, time.Hour, &recordLogger{}); err != nil {
		t.Fatalf("valid schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("entries = %d", len(c.Entries()))
	}
}
