//go:build integration

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/Astemirdum/curator-library/library/internal/repository"
	"github.com/Astemirdum/curator-library/library/migrations"
	"github.com/Astemirdum/curator-library/pkg/testutil/containers"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type PostgresServiceSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	svc      *Service
}

func TestPostgresServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresServiceSuite))
}

func (s *PostgresServiceSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), migrations.MigrationFiles)
	repo, err := repository.NewRepository(s.postgres.DB, zap.NewNop())
	s.Require().NoError(err)
	s.svc = NewService(repo, &fakeEnricher{}, &recordingPublisher{}, zap.NewNop())
}

func (s *PostgresServiceSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(),
		"borrow_requests", "acquisition_requests", "books", "curators"))
}

func (s *PostgresServiceSuite) newBook() model.BookItem {
	ctx := context.Background()
	c, err := s.svc.CreateCurator(ctx, model.CreateCuratorRequest{Name: "Corner Shelf"})
	s.Require().NoError(err)
	b, err := s.svc.AddBook(ctx, model.AddBookRequest{CuratorID: c.ID, Title: "b1"})
	s.Require().NoError(err)
	return b
}

func (s *PostgresServiceSuite) availability(bookID string) model.Availability {
	b, err := s.svc.GetBook(context.Background(), bookID)
	s.Require().NoError(err)
	return b.Availability
}

func (s *PostgresServiceSuite) TestConcurrentSubmit() {
	ctx := context.Background()
	b := s.newBook()

	const n = 24
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		successes atomic.Int32
		conflicts atomic.Int32
		others    atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.svc.SubmitBorrowRequest(ctx, borrowReq(b.ID, "Racer"))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, errs.ErrConflict):
				conflicts.Add(1)
			default:
				others.Add(1)
				s.T().Logf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	s.EqualValues(1, successes.Load())
	s.EqualValues(n-1, conflicts.Load())
	s.Zero(others.Load())
	s.Equal(model.AvailabilityRequested, s.availability(b.ID))

	list, err := s.svc.ListBorrowRequests(ctx, b.CuratorID)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *PostgresServiceSuite) TestLendingScenario() {
	ctx := context.Background()
	b := s.newBook()

	a, err := s.svc.SubmitBorrowRequest(ctx, borrowReq(b.ID, "Alice"))
	s.Require().NoError(err)
	s.Equal(model.AvailabilityRequested, s.availability(b.ID))

	_, err = s.svc.SubmitBorrowRequest(ctx, borrowReq(b.ID, "Bob"))
	s.ErrorIs(err, errs.ErrConflict)

	s.ErrorIs(s.svc.RecordReturn(ctx, a.ID), errs.ErrInvalidState)
	s.Require().NoError(s.svc.Decide(ctx, a.ID, model.OutcomeApprove))
	s.Equal(model.AvailabilityOnLoan, s.availability(b.ID))
	s.ErrorIs(s.svc.Decide(ctx, a.ID, model.OutcomeReject), errs.ErrNotFound)

	s.Require().NoError(s.svc.RecordReturn(ctx, a.ID))
	s.Equal(model.AvailabilityAvailable, s.availability(b.ID))

	_, err = s.svc.SubmitBorrowRequest(ctx, borrowReq(b.ID, "Bob"))
	s.Require().NoError(err)
}
