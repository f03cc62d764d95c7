package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/replydesk/internal/domain"
	"github.com/vedran77/replydesk/internal/repository"
	"github.com/vedran77/replydesk/internal/seed"
)

// SessionResetter drops cached inspector state for an operator.
type SessionResetter interface {
	Forget(operatorID uuid.UUID)
}

type SeedResult struct {
	Conversations int `json:"conversations"`
	Messages      int `json:"messages"`
}

// SeedService writes the demo conversations into an operator's record store.
type SeedService struct {
	repo     repository.ConversationRepository
	sessions SessionResetter
	logger   *logrus.Logger
	location *time.Location
	now      func() time.Time
}

func NewSeedService(repo repository.ConversationRepository, sessions SessionResetter, logger *logrus.Logger, location *time.Location) *SeedService {
	return &SeedService{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

func (s *SeedService) Seed(ctx context.Context, operatorID uuid.UUID) (*SeedResult, error) {
	convs, threads := seed.Dataset(operatorID, s.now(), s.location)

	res := &SeedResult{}
	for n := range convs {
		c := &convs[n]
		if err := s.repo.CreateConversation(ctx, c); err != nil {
			return res, fmt.Errorf("seeding conversation %s: %w", c.Sender, err)
		}
		res.Conversations++

		for m := range threads[c.ID] {
			if err := s.repo.CreateMessage(ctx, &threads[c.ID][m]); err != nil {
				return res, fmt.Errorf("seeding messages of %s: %w", c.Sender, err)
			}
			res.Messages++
		}
	}

	if s.sessions != nil {
		s.sessions.Forget(operatorID)
	}

	s.logger.WithFields(logrus.Fields{
		"operator_id":   operatorID,
		"conversations": res.Conversations,
		"messages":      res.Messages,
	}).Info("Demo data seeded")

	return res, nil
}

// SeedOperator adapts Seed to the registration hook signature.
func (s *SeedService) SeedOperator(ctx context.Context, op *domain.Operator) error {
	_, err := s.Seed(ctx, op.ID)
	return err
}
