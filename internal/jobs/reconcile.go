// File: internal/jobs/reconcile.go
package jobs

import (
	"context"
	"time"

	"plusone_backend/internal/connection"
	"plusone_backend/internal/user"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reconcileBatchSize = 200

// CounterReconcileJob periodically recomputes the stored connection and
// pending-request counters from the live tables. The counters are a cached
// convenience and can drift; the live tables are the source of truth.
type CounterReconcileJob struct {
	users       user.Repository
	connections connection.ConnectionRepository
	requests    connection.RequestRepository
	logger      *zap.Logger
	cron        *cron.Cron
	schedule    string
}

// NewCounterReconcileJob creates the job with the given cron schedule
// (e.g. "@daily").
func NewCounterReconcileJob(
	users user.Repository,
	connections connection.ConnectionRepository,
	requests connection.RequestRepository,
	schedule string,
	logger *zap.Logger,
) *CounterReconcileJob {
	return &CounterReconcileJob{
		users:       users,
		connections: connections,
		requests:    requests,
		logger:      logger,
		schedule:    schedule,
	}
}

// Start registers the schedule and launches the cron runner.
func (j *CounterReconcileJob) Start() error {
	j.cron = cron.New()
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		j.Run(ctx)
	})
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Counter reconciliation job scheduled", zap.String("schedule", j.schedule))
	return nil
}

// Stop halts the cron runner and waits for a running pass to finish.
func (j *CounterReconcileJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Run executes one full reconciliation pass. Per-account failures are
// logged and skipped so one bad row cannot stall the sweep.
func (j *CounterReconcileJob) Run(ctx context.Context) {
	start := time.Now()
	var scanned, repaired int

	for offset := 0; ; offset += reconcileBatchSize {
		batch, err := j.users.List(ctx, offset, reconcileBatchSize)
		if err != nil {
			j.logger.Error("Counter reconciliation aborted, user listing failed",
				zap.Error(err), zap.Int("offset", offset))
			return
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			scanned++
			if j.reconcileOne(ctx, &batch[i]) {
				repaired++
			}
		}
	}

	j.logger.Info("Counter reconciliation finished",
		zap.Int("scanned", scanned),
		zap.Int("repaired", repaired),
		zap.Duration("took", time.Since(start)),
	)
}

func (j *CounterReconcileJob) reconcileOne(ctx context.Context, u *user.User) bool {
	connCount, err := j.connections.CountForAccount(ctx, u.ID)
	if err != nil {
		j.logger.Warn("Skipping account, connection count failed",
			zap.Error(err), zap.String("userID", u.ID.String()))
		return false
	}
	reqCount, err := j.requests.CountByToAndStatus(ctx, u.ID, connection.RequestPending)
	if err != nil {
		j.logger.Warn("Skipping account, request count failed",
			zap.Error(err), zap.String("userID", u.ID.String()))
		return false
	}

	if u.Profile.NumConnections == int(connCount) && u.Profile.NumRequests == int(reqCount) {
		return false
	}

	j.logger.Info("Repairing drifted counters",
		zap.String("userID", u.ID.String()),
		zap.Int("storedConnections", u.Profile.NumConnections),
		zap.Int64("actualConnections", connCount),
		zap.Int("storedRequests", u.Profile.NumRequests),
		zap.Int64("actualRequests", reqCount),
	)

	u.Profile.NumConnections = int(connCount)
	u.Profile.NumRequests = int(reqCount)
	if err := j.users.Update(ctx, u); err != nil {
		j.logger.Warn("Failed to persist repaired counters",
			zap.Error(err), zap.String("userID", u.ID.String()))
		return false
	}
	return true
}
