//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/Astemirdum/curator-library/library/migrations"
	"github.com/Astemirdum/curator-library/pkg/testutil/containers"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type PostgresRepositorySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	repo     *repository
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), migrations.MigrationFiles)
	repo, err := NewRepository(s.postgres.DB, zap.NewNop())
	s.Require().NoError(err)
	s.repo = repo
}

func (s *PostgresRepositorySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(),
		borrowRequestsTableName, acquisitionRequestsTableName, booksTableName, curatorsTableName))
}

func (s *PostgresRepositorySuite) seed() (model.Curator, model.BookItem) {
	ctx := context.Background()
	c, err := s.repo.CreateCurator(ctx, model.Curator{Name: "Corner Shelf"})
	s.Require().NoError(err)
	isbn := "9780262033848"
	b, err := s.repo.CreateBook(ctx, model.BookItem{CuratorID: c.ID, Title: "CLRS", ISBN: &isbn})
	s.Require().NoError(err)
	return c, b
}

func (s *PostgresRepositorySuite) TestCatalog() {
	ctx := context.Background()
	c, b := s.seed()
	s.Equal(model.AvailabilityAvailable, b.Availability)

	_, err := s.repo.CreateBook(ctx, model.BookItem{CuratorID: uuid.NewString(), Title: "x"})
	s.ErrorIs(err, errs.ErrValidation)

	_, err = s.repo.GetBook(ctx, "not-a-uuid")
	s.ErrorIs(err, errs.ErrNotFound)

	found, err := s.repo.FindBooks(ctx, c.ID, "9780262033848")
	s.Require().NoError(err)
	s.Len(found, 1)

	found, err = s.repo.FindBooks(ctx, c.ID, "9780000000000")
	s.Require().NoError(err)
	s.NotNil(found)
	s.Empty(found)
}

func (s *PostgresRepositorySuite) TestUpdatePublicNotice_Version() {
	ctx := context.Background()
	c, _ := s.seed()

	v := c.Version
	updated, err := s.repo.UpdatePublicNotice(ctx, c.ID, "closed on mondays", &v)
	s.Require().NoError(err)
	s.Equal(v+1, updated.Version)
	s.Equal("closed on mondays", updated.PublicNotice)

	_, err = s.repo.UpdatePublicNotice(ctx, c.ID, "open on mondays", &v)
	s.ErrorIs(err, errs.ErrConflict)

	_, err = s.repo.UpdatePublicNotice(ctx, uuid.NewString(), "x", &v)
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *PostgresRepositorySuite) TestLendingTx() {
	ctx := context.Background()
	c, b := s.seed()
	req := model.BorrowRequest{
		BookID:     b.ID,
		CuratorID:  c.ID,
		Borrower:   model.Borrower{Name: "Ada", Email: "ada@example.com", DeliveryAddress: "12 Analytical St"},
		BorrowDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:     model.BorrowStatusPending,
	}

	boom := errors.New("boom")
	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx LendingTx) error {
		if err := tx.SetAvailability(ctx, b.ID, model.AvailabilityRequested); err != nil {
			return err
		}
		if _, err := tx.InsertBorrowRequest(ctx, req); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)
	got, err := s.repo.GetBook(ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(model.AvailabilityAvailable, got.Availability)

	var created model.BorrowRequest
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx LendingTx) error {
		if _, err := tx.LockBook(ctx, b.ID); err != nil {
			return err
		}
		if err := tx.SetAvailability(ctx, b.ID, model.AvailabilityRequested); err != nil {
			return err
		}
		var err error
		created, err = tx.InsertBorrowRequest(ctx, req)
		return err
	})
	s.Require().NoError(err)

	// the partial unique index refuses a second active request
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx LendingTx) error {
		_, err := tx.InsertBorrowRequest(ctx, req)
		return err
	})
	s.ErrorIs(err, errs.ErrConflict)

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx LendingTx) error {
		br, err := tx.LockBorrowRequest(ctx, created.ID)
		if err != nil {
			return err
		}
		s.Equal(model.BorrowStatusPending, br.Status)
		if err := tx.SetBorrowStatus(ctx, br.ID, model.BorrowStatusApproved); err != nil {
			return err
		}
		return tx.SetAvailability(ctx, br.BookID, model.AvailabilityOnLoan)
	})
	s.Require().NoError(err)

	list, err := s.repo.ListBorrowRequests(ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)
	s.Equal(model.BorrowStatusApproved, list[0].Status)
	s.Equal("ada@example.com", list[0].Email)
	s.Equal(b.ID, list[0].Book.ID)
	s.Equal("CLRS", list[0].Book.Title)
	s.Equal(model.AvailabilityOnLoan, list[0].Book.Availability)
	s.True(req.ReturnDate.Equal(list[0].ReturnDate))
}

func (s *PostgresRepositorySuite) TestAcquisitionRequests_InsertionOrder() {
	ctx := context.Background()
	c, _ := s.seed()
	for _, title := range []string{"SICP", "TAOCP", "Dune"} {
		_, err := s.repo.CreateAcquisitionRequest(ctx, model.AcquisitionRequest{CuratorID: c.ID, Title: title})
		s.Require().NoError(err)
	}
	items, err := s.repo.ListAcquisitionRequests(ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal("SICP", items[0].Title)
	s.Equal("Dune", items[2].Title)
}
