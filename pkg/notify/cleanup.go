package notify

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRetention is how long read notifications are kept.
const DefaultRetention = 7 * 24 * time.Hour

// Cleanup periodically prunes read notifications past their retention
// window. Unread notifications are never touched.
type Cleanup struct {
	engine    *Engine
	cron      *cron.Cron
	retention time.Duration
	logger    *slog.Logger
}

// NewCleanup creates the retention job. A zero retention means the
// default window.
func NewCleanup(engine *Engine, retention time.Duration, logger *slog.Logger) *Cleanup {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Cleanup{
		engine:    engine,
		cron:      cron.New(),
		retention: retention,
		logger:    logger,
	}
}

// Start registers the job on the given cron schedule (e.g. "@hourly")
// and starts the cron runner.
func (c *Cleanup) Start(schedule string) error {
	if schedule == "" {
		schedule = "@hourly"
	}
	if _, err := c.cron.AddFunc(schedule, c.Run); err != nil {
		return err
	}
	c.cron.Start()
	if c.logger != nil {
		c.logger.Info("notification retention job started", "schedule", schedule, "retention", c.retention)
	}
	return nil
}

// Run prunes once, immediately. The cron schedule calls it on interval.
func (c *Cleanup) Run() {
	cutoff := time.Now().Add(-c.retention)
	removed := c.engine.Prune(cutoff)
	if removed > 0 && c.logger != nil {
		c.logger.Info("pruned read notifications", "removed", removed)
	}
}

// Stop halts the cron runner and waits for an in-flight run to finish.
func (c *Cleanup) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}
