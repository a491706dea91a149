package service

import (
	"context"
	"time"

	"github.com/Amos-136/maditrack/internal/repository"

	"go.uber.org/zap"
)

// OrphanReconciler sweeps organizations that have no principal.
//
// The signup flow deletes the organization when principal creation
// fails, but that compensating delete can itself fail (process crash,
// DB hiccup). When it does, an organization row is left with zero
// principals referencing it. This worker periodically finds rows older
// than a grace period with no principal and deletes them, closing the
// gap the inline compensation leaves open.
type OrphanReconciler struct {
	orgs   repository.OrganizationsRepository
	logger *zap.Logger

	interval    time.Duration
	gracePeriod time.Duration
	batchSize   int
}

// NewOrphanReconciler creates the sweep worker. gracePeriod must be
// comfortably longer than any in-flight signup request so an
// organization whose principal insert is still running is never swept.
func NewOrphanReconciler(
	orgs repository.OrganizationsRepository,
	interval time.Duration,
	gracePeriod time.Duration,
	logger *zap.Logger,
) *OrphanReconciler {
	return &OrphanReconciler{
		orgs:        orgs,
		logger:      logger,
		interval:    interval,
		gracePeriod: gracePeriod,
		batchSize:   50,
	}
}

// Start runs the sweep loop. Blocking; returns when ctx is cancelled.
func (r *OrphanReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Orphan reconciler started",
		zap.Duration("interval", r.interval),
		zap.Duration("grace_period", r.gracePeriod),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Orphan reconciler stopping")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs one reconciliation pass.
func (r *OrphanReconciler) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.gracePeriod)

	orphans, err := r.orgs.ListOrphans(ctx, cutoff, r.batchSize)
	if err != nil {
		r.logger.Error("Orphan sweep query failed", zap.Error(err))
		return
	}
	if len(orphans) == 0 {
		return
	}

	r.logger.Warn("Sweeping orphaned organizations",
		zap.Int("count", len(orphans)),
	)

	for _, org := range orphans {
		if err := r.orgs.DeleteOrganization(ctx, org.OrgID); err != nil {
			r.logger.Error("Failed to delete orphaned organization",
				zap.String("org_id", org.OrgID),
				zap.Error(err),
			)
			continue
		}
		r.logger.Info("Deleted orphaned organization",
			zap.String("org_id", org.OrgID),
			zap.String("email", org.Email),
			zap.Time("created_at", org.CreatedAt),
		)
	}
}
