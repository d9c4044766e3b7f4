package service

import (
	"context"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/events"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/Astemirdum/curator-library/library/internal/repository"
	"go.uber.org/zap"
)

type Enricher interface {
	Lookup(ctx context.Context, isbn string) model.Metadata
}

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	enricher  Enricher
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo repository.Repository, enricher Enricher, publisher events.Publisher, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		enricher:  enricher,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// publish runs after commit; a broker failure never undoes a lending transition.
func (s *Service) publish(ctx context.Context, typ model.LendingEventType, br model.BorrowRequest, a model.Availability) {
	ev := model.LendingEvent{
		Type:            typ,
		BorrowRequestID: br.ID,
		BookID:          br.BookID,
		CuratorID:       br.CuratorID,
		Availability:    a,
		Email:           br.Email,
		At:              s.now(),
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warn("publish lending event",
			zap.String("type", string(typ)),
			zap.String("borrowRequestId", br.ID),
			zap.Error(err))
	}
}
