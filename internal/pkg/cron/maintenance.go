package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type limiterSweeper interface {
	Sweep(maxIdle time.Duration) int
}

type revocationPurger interface {
	PurgeRevoked(now time.Time) int
}

type delegationLogger interface {
	LogEndedDelegations(ctx context.Context, since time.Time) (time.Time, error)
}

// MaintenanceJobs keeps the in-memory state of the API bounded and reports
// second manager windows as they close.
type MaintenanceJobs struct {
	limiters    limiterSweeper
	revocations revocationPurger
	delegations delegationLogger
	interval    time.Duration
	now         func() time.Time

	mu    sync.Mutex
	since time.Time
}

func NewMaintenanceJobs(
	limiters limiterSweeper,
	revocations revocationPurger,
	delegations delegationLogger,
	interval time.Duration,
) *MaintenanceJobs {
	return &MaintenanceJobs{
		limiters:    limiters,
		revocations: revocations,
		delegations: delegations,
		interval:    interval,
		now:         time.Now,
		since:       time.Now(),
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_search_limiters", j.interval, j.SweepSearchLimiters)
	scheduler.AddJob("purge_revoked_tokens", j.interval, j.PurgeRevokedTokens)
	scheduler.AddJob("log_ended_delegations", time.Minute, j.LogEndedDelegations)
}

// SweepSearchLimiters drops limiters of clients idle for longer than the interval.
func (j *MaintenanceJobs) SweepSearchLimiters(ctx context.Context) error {
	if n := j.limiters.Sweep(j.interval); n > 0 {
		slog.Debug("Cron: swept idle search limiters", "count", n)
	}
	return nil
}

func (j *MaintenanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	if n := j.revocations.PurgeRevoked(j.now()); n > 0 {
		slog.Debug("Cron: purged expired revoked tokens", "count", n)
	}
	return nil
}

// LogEndedDelegations advances its lower bound only when the lookup succeeds.
func (j *MaintenanceJobs) LogEndedDelegations(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	next, err := j.delegations.LogEndedDelegations(ctx, j.since)
	if err != nil {
		return err
	}
	j.since = next
	return nil
}
