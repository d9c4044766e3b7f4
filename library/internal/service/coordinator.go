package service

import (
	"context"
	"strings"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/metrics"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/Astemirdum/curator-library/library/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Every availability change goes through repo.WithinTx with the book locked
// first. Nothing in here calls the enricher.

func (s *Service) SubmitBorrowRequest(ctx context.Context, req model.SubmitBorrowRequest) (model.BorrowRequest, error) {
	br, err := newBorrowRequest(req)
	if err != nil {
		metrics.BorrowSubmissions.WithLabelValues("invalid").Inc()
		return model.BorrowRequest{}, err
	}

	var created model.BorrowRequest
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx repository.LendingTx) error {
		book, err := tx.LockBook(ctx, br.BookID)
		if err != nil {
			return err
		}
		if br.CuratorID == "" {
			br.CuratorID = book.CuratorID
		} else if br.CuratorID != book.CuratorID {
			return errs.Validation("book does not belong to curator")
		}
		if book.Availability != model.AvailabilityAvailable {
			return errors.Wrapf(errs.ErrConflict, "book %s is %s", book.ID, book.Availability)
		}
		if err := tx.SetAvailability(ctx, book.ID, model.AvailabilityRequested); err != nil {
			return err
		}
		created, err = tx.InsertBorrowRequest(ctx, br)
		return err
	})
	if err != nil {
		metrics.BorrowSubmissions.WithLabelValues(submissionResult(err)).Inc()
		return model.BorrowRequest{}, err
	}

	metrics.BorrowSubmissions.WithLabelValues("created").Inc()
	metrics.LendingTransitions.WithLabelValues(string(model.AvailabilityRequested)).Inc()
	s.log.Info("borrow requested", zap.String("borrowRequestId", created.ID), zap.String("bookId", created.BookID))
	s.publish(ctx, model.EventBorrowRequested, created, model.AvailabilityRequested)
	return created, nil
}

func newBorrowRequest(req model.SubmitBorrowRequest) (model.BorrowRequest, error) {
	br := model.BorrowRequest{
		BookID:    strings.TrimSpace(req.BookID),
		CuratorID: strings.TrimSpace(req.CuratorID),
		Borrower: model.Borrower{
			Wallet:          strings.TrimSpace(req.Wallet),
			Name:            strings.TrimSpace(req.Name),
			Email:           strings.TrimSpace(req.Email),
			Phone:           strings.TrimSpace(req.Phone),
			DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		},
		BorrowDate: req.BorrowDate.UTC(),
		ReturnDate: req.ReturnDate.UTC(),
		Status:     model.BorrowStatusPending,
	}
	switch {
	case br.BookID == "":
		return br, errs.Validation("bookId is required")
	case br.Name == "":
		return br, errs.Validation("name is required")
	case br.Email == "":
		return br, errs.Validation("email is required")
	case br.DeliveryAddress == "":
		return br, errs.Validation("deliveryAddress is required")
	case br.BorrowDate.IsZero() || br.ReturnDate.IsZero():
		return br, errs.Validation("borrowDate and returnDate are required")
	case !br.ReturnDate.After(br.BorrowDate):
		return br, errs.Validation("returnDate must be after borrowDate")
	}
	return br, nil
}

func submissionResult(err error) string {
	switch {
	case errors.Is(err, errs.ErrConflict):
		return "conflict"
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrNotFound):
		return "invalid"
	default:
		return "error"
	}
}

// Decide settles a pending request. A request that is unknown or already
// settled is reported as not found.
func (s *Service) Decide(ctx context.Context, requestID string, outcome model.Outcome) error {
	var (
		status model.BorrowStatus
		to     model.Availability
		typ    model.LendingEventType
	)
	switch outcome {
	case model.OutcomeApprove:
		status, to, typ = model.BorrowStatusApproved, model.AvailabilityOnLoan, model.EventBorrowApproved
	case model.OutcomeReject:
		status, to, typ = model.BorrowStatusRejected, model.AvailabilityAvailable, model.EventBorrowRejected
	default:
		return errs.Validation("outcome must be APPROVE or REJECT")
	}

	br, err := s.transition(ctx, requestID, func(br model.BorrowRequest) error {
		if br.Status != model.BorrowStatusPending {
			return errors.Wrapf(errs.ErrNotFound, "no pending borrow request %s", br.ID)
		}
		return nil
	}, status, to)
	if err != nil {
		return err
	}

	s.log.Info("borrow request decided", zap.String("borrowRequestId", br.ID), zap.String("outcome", string(outcome)))
	s.publish(ctx, typ, br, to)
	return nil
}

func (s *Service) RecordReturn(ctx context.Context, requestID string) error {
	br, err := s.transition(ctx, requestID, func(br model.BorrowRequest) error {
		if br.Status != model.BorrowStatusApproved {
			return errors.Wrapf(errs.ErrInvalidState, "borrow request %s is %s, not %s",
				br.ID, br.Status, model.BorrowStatusApproved)
		}
		return nil
	}, model.BorrowStatusReturned, model.AvailabilityAvailable)
	if err != nil {
		return err
	}

	s.log.Info("book returned", zap.String("borrowRequestId", br.ID), zap.String("bookId", br.BookID))
	s.publish(ctx, model.EventBookReturned, br, model.AvailabilityAvailable)
	return nil
}

// transition moves a borrow request and its book together. The request is
// read unlocked only to learn its book; the check runs after both locks are held.
func (s *Service) transition(
	ctx context.Context,
	requestID string,
	check func(model.BorrowRequest) error,
	status model.BorrowStatus,
	to model.Availability,
) (model.BorrowRequest, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return model.BorrowRequest{}, errs.Validation("borrow request id is required")
	}
	current, err := s.repo.GetBorrowRequest(ctx, requestID)
	if err != nil {
		return model.BorrowRequest{}, err
	}

	var br model.BorrowRequest
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx repository.LendingTx) error {
		var err error
		if _, err = tx.LockBook(ctx, current.BookID); err != nil {
			return err
		}
		if br, err = tx.LockBorrowRequest(ctx, requestID); err != nil {
			return err
		}
		if err := check(br); err != nil {
			return err
		}
		if err := tx.SetBorrowStatus(ctx, br.ID, status); err != nil {
			return err
		}
		return tx.SetAvailability(ctx, br.BookID, to)
	})
	if err != nil {
		return model.BorrowRequest{}, err
	}

	br.Status = status
	metrics.LendingTransitions.WithLabelValues(string(to)).Inc()
	return br, nil
}
