package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (r *repository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx LendingTx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errs.Storage(err, "BeginTx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Warn("tx.Rollback", zap.Error(rbErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = mapErr(cErr, "Commit")
		}
	}()
	return fn(ctx, &lendingTx{tx: tx})
}

type lendingTx struct {
	tx *sqlx.Tx
}

func (t *lendingTx) LockBook(ctx context.Context, bookID string) (model.BookItem, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": bookID}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.BookItem{}, err
	}
	var book model.BookItem
	if err := t.tx.GetContext(ctx, &book, query, args...); err != nil {
		return model.BookItem{}, mapErr(err, "LockBook")
	}
	return book, nil
}

func (t *lendingTx) SetAvailability(ctx context.Context, bookID string, a model.Availability) error {
	query, args, err := qb.Update(booksTableName).
		Set("availability", a).
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err, "SetAvailability")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrap(errs.ErrNotFound, "SetAvailability")
	}
	return nil
}

func (t *lendingTx) GetBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error) {
	return getBorrowRequest(ctx, t.tx, requestID, false)
}

func (t *lendingTx) LockBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error) {
	return getBorrowRequest(ctx, t.tx, requestID, true)
}

func (t *lendingTx) InsertBorrowRequest(ctx context.Context, req model.BorrowRequest) (model.BorrowRequest, error) {
	now := time.Now().UTC()
	query, args, err := qb.Insert(borrowRequestsTableName).
		Columns("id", "book_id", "curator_id", "wallet", "name", "email", "phone",
			"delivery_address", "borrow_date", "return_date", "status", "created_at", "updated_at").
		Values(uuid.NewString(), req.BookID, req.CuratorID, req.Wallet, req.Name, req.Email, req.Phone,
			req.DeliveryAddress, req.BorrowDate.UTC(), req.ReturnDate.UTC(), req.Status, now, now).
		Suffix("returning " + columnList(borrowColumns)).
		ToSql()
	if err != nil {
		return model.BorrowRequest{}, err
	}
	var out model.BorrowRequest
	if err := t.tx.GetContext(ctx, &out, query, args...); err != nil {
		return model.BorrowRequest{}, mapErr(err, "InsertBorrowRequest")
	}
	return out, nil
}

func (t *lendingTx) SetBorrowStatus(ctx context.Context, requestID string, s model.BorrowStatus) error {
	query, args, err := qb.Update(borrowRequestsTableName).
		Set("status", s).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err, "SetBorrowStatus")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrap(errs.ErrNotFound, "SetBorrowStatus")
	}
	return nil
}

func getBorrowRequest(ctx context.Context, q sqlx.QueryerContext, requestID string, lock bool) (model.BorrowRequest, error) {
	b := qb.Select(borrowColumns...).
		From(borrowRequestsTableName).
		Where(sq.Eq{"id": requestID})
	if lock {
		b = b.Suffix("for update")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.BorrowRequest{}, err
	}
	var req model.BorrowRequest
	if err := sqlx.GetContext(ctx, q, &req, query, args...); err != nil {
		return model.BorrowRequest{}, mapErr(err, "GetBorrowRequest")
	}
	return req, nil
}
