package monitoring

import (
	"fmt"
	"time"

	"github.com/jmorell/newsroom-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RetentionJob prunes old audit events on a cron schedule.
type RetentionJob struct {
	auditSvc  services.AuditServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	ticker    *time.Ticker
	done      chan bool
	nextRun   time.Time
}

// NewRetentionJob creates a retention job from a standard cron expression
// and a retention window.
func NewRetentionJob(auditSvc services.AuditServiceProvider, cronExpr string, retention time.Duration) (*RetentionJob, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid retention cron expression %q: %w", cronExpr, err)
	}

	return &RetentionJob{
		auditSvc:  auditSvc,
		schedule:  schedule,
		retention: retention,
		done:      make(chan bool),
		nextRun:   schedule.Next(time.Now()),
	}, nil
}

// Run starts the job's ticking loop.
func (j *RetentionJob) Run() {
	log.Info().Time("next_run", j.nextRun).Msg("Starting audit retention job")
	j.ticker = time.NewTicker(1 * time.Minute)
	defer j.ticker.Stop()

	for {
		select {
		case <-j.done:
			log.Info().Msg("Stopping audit retention job")
			return
		case <-j.ticker.C:
			now := time.Now()
			if now.After(j.nextRun) {
				j.sweep(now)
				j.nextRun = j.schedule.Next(now)
			}
		}
	}
}

// Stop halts the job.
func (j *RetentionJob) Stop() {
	j.done <- true
}

// sweep deletes audit events older than the retention window.
func (j *RetentionJob) sweep(now time.Time) {
	cutoff := now.Add(-j.retention)
	pruned, err := j.auditSvc.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Audit retention sweep failed")
		return
	}

	msg := fmt.Sprintf("Pruned %d audit events older than %s", pruned, cutoff.Format(time.RFC3339))
	if err := j.auditSvc.Record("audit.prune", "info", msg, nil); err != nil {
		log.Warn().Err(err).Msg("Failed to record retention sweep event")
	}
	log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("Audit retention sweep complete")
}
