package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (r *repository) CreateAcquisitionRequest(ctx context.Context, req model.AcquisitionRequest) (model.AcquisitionRequest, error) {
	query, args, err := qb.Insert(acquisitionRequestsTableName).
		Columns("id", "curator_id", "title", "author", "additional_notes", "wallet", "created_at").
		Values(uuid.NewString(), req.CuratorID, req.Title, req.Author, req.AdditionalNotes, req.Wallet, time.Now().UTC()).
		Suffix("returning " + columnList(acquisitionColumns)).
		ToSql()
	if err != nil {
		return model.AcquisitionRequest{}, err
	}
	var out model.AcquisitionRequest
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		r.log.Error("CreateAcquisitionRequest", zap.String("q", query), zap.Error(err))
		return model.AcquisitionRequest{}, mapErr(err, "CreateAcquisitionRequest")
	}
	return out, nil
}

func (r *repository) ListAcquisitionRequests(ctx context.Context, curatorID string) ([]model.AcquisitionRequest, error) {
	query, args, err := qb.Select(acquisitionColumns...).
		From(acquisitionRequestsTableName).
		Where(sq.Eq{"curator_id": curatorID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.AcquisitionRequest, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		if err = mapErr(err, "ListAcquisitionRequests"); errors.Is(err, errs.ErrNotFound) {
			return items, nil
		}
		return nil, err
	}
	return items, nil
}

type borrowRow struct {
	model.BorrowRequest
	Book model.BookItem `db:"b"`
}

// ListBorrowRequests joins the book as it is now, not as it was when the
// request was made.
func (r *repository) ListBorrowRequests(ctx context.Context, curatorID string) ([]model.BorrowRequestView, error) {
	cols := prefixed("r", borrowColumns)
	for _, c := range bookColumns {
		cols = append(cols, `b.`+c+` as "b.`+c+`"`)
	}
	query, args, err := qb.Select(cols...).
		From(borrowRequestsTableName + " r").
		Join(booksTableName + " b on b.id = r.book_id").
		Where(sq.Eq{"r.curator_id": curatorID}).
		OrderBy("r.seq").
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBorrowRequests", zap.String("query", query), zap.Any("args", args))

	var rows []borrowRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if err = mapErr(err, "ListBorrowRequests"); errors.Is(err, errs.ErrNotFound) {
			return []model.BorrowRequestView{}, nil
		}
		return nil, err
	}
	items := make([]model.BorrowRequestView, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.BorrowRequestView{BorrowRequest: row.BorrowRequest, Book: row.Book})
	}
	return items, nil
}

func (r *repository) GetBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error) {
	return getBorrowRequest(ctx, r.db, requestID, false)
}
