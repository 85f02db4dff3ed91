package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/docthru/docthru/internal/database"
	"github.com/docthru/docthru/internal/database/models"
	"github.com/docthru/docthru/internal/pubsub"
	"github.com/google/uuid"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sweeper periodically closes challenges whose deadline has passed and crowns
// their winners. Overlapping runs are safe: the status gate inside
// database.CloseExpiredChallenge turns a second pass into a no-op.
type Sweeper struct {
	db               *gorm.DB
	interval         time.Duration
	challengeTimeout time.Duration
}

func NewSweeper(db *gorm.DB, interval, challengeTimeout time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if challengeTimeout <= 0 {
		challengeTimeout = 30 * time.Second
	}
	return &Sweeper{
		db:               db,
		interval:         interval,
		challengeTimeout: challengeTimeout,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	logger := zap.S().With("component", "lifecycle_sweeper")
	logger.Infof("sweeper started, interval %s", s.interval)

	for {
		select {
		case <-t.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			logger.Info("sweeper stopped")
			return
		}
	}
}

// SweepOnce processes every expired challenge. Each closure runs in its own
// transaction under its own timeout; a failure on one challenge is logged and
// must not abort the rest of the sweep.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	logger := zap.S().With("component", "lifecycle_sweeper")

	challenges, err := database.FindExpiredChallenges(s.db)
	if err != nil {
		logger.Errorf("failed to scan for expired challenges: %v", err)
		return
	}
	if len(challenges) == 0 {
		return
	}
	logger.Infof("found %d expired challenges to close", len(challenges))

	for _, challenge := range challenges {
		if err := s.closeOne(ctx, challenge.ID); err != nil {
			logger.Errorf("failed to close challenge %s: %v", challenge.ID, err)
		}
	}
}

func (s *Sweeper) closeOne(ctx context.Context, challengeID string) error {
	cctx, cancel := context.WithTimeout(ctx, s.challengeTimeout)
	defer cancel()

	result, err := database.CloseExpiredChallenge(s.db.WithContext(cctx), challengeID)
	if err != nil {
		return err
	}
	if !result.Closed {
		// Another sweep got here first.
		return nil
	}

	zap.S().Infof("closed challenge %s (%q) with %d participants, %d winners",
		challengeID, result.Challenge.Title, len(result.Participants), len(result.Winners))

	s.notifyClosure(result)
	return nil
}

func (s *Sweeper) notifyClosure(result *database.ClosureResult) {
	winners := make(map[string]bool, len(result.Winners))
	for _, w := range result.Winners {
		winners[w.ID] = true
	}

	for _, work := range result.Participants {
		msg := fmt.Sprintf("Challenge '%s' has closed.", result.Challenge.Title)
		if winners[work.ID] {
			msg = fmt.Sprintf("Congratulations! Your work was selected in challenge '%s'.", result.Challenge.Title)
		}

		n := &models.Notification{
			ID:      uuid.NewString(),
			UserID:  work.WorkerID,
			Message: msg,
		}
		if err := database.CreateNotification(s.db, n); err != nil {
			zap.S().Errorf("failed to store closure notification for user %s: %v", work.WorkerID, err)
			continue
		}
		pubsub.GetBroker().Publish(work.WorkerID, pubsub.FormatEvent(pubsub.EventChallengeClosed, msg))
	}
}
