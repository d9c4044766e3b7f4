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

func (r *repository) CreateCurator(ctx context.Context, c model.Curator) (model.Curator, error) {
	query, args, err := qb.Insert(curatorsTableName).
		Columns("id", "name", "description", "country", "state", "city", "cover_image", "is_verified", "version", "created_at").
		Values(uuid.NewString(), c.Name, c.Description, c.Country, c.State, c.City, c.CoverImage, c.IsVerified, 1, time.Now().UTC()).
		Suffix("returning " + columnList(curatorColumns)).
		ToSql()
	if err != nil {
		return model.Curator{}, err
	}
	var out model.Curator
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		r.log.Error("CreateCurator", zap.String("q", query), zap.Error(err))
		return model.Curator{}, mapErr(err, "CreateCurator")
	}
	return out, nil
}

func (r *repository) GetCurator(ctx context.Context, curatorID string) (model.Curator, error) {
	query, args, err := qb.Select(curatorColumns...).
		From(curatorsTableName).
		Where(sq.Eq{"id": curatorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Curator{}, err
	}
	var c model.Curator
	if err := r.db.GetContext(ctx, &c, query, args...); err != nil {
		return model.Curator{}, mapErr(err, "GetCurator")
	}
	return c, nil
}

func (r *repository) UpdatePublicNotice(ctx context.Context, curatorID, text string, version *int) (model.Curator, error) {
	b := qb.Update(curatorsTableName).
		Set("public_notice", text).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": curatorID})
	if version != nil {
		b = b.Where(sq.Eq{"version": *version})
	}
	query, args, err := b.Suffix("returning " + columnList(curatorColumns)).ToSql()
	if err != nil {
		return model.Curator{}, err
	}

	var c model.Curator
	err = r.db.GetContext(ctx, &c, query, args...)
	if err == nil {
		return c, nil
	}
	err = mapErr(err, "UpdatePublicNotice")
	if version != nil && errors.Is(err, errs.ErrNotFound) {
		// tell a stale version apart from a missing curator
		if _, gErr := r.GetCurator(ctx, curatorID); gErr == nil {
			return model.Curator{}, errors.Wrap(errs.ErrConflict, "public notice was modified concurrently")
		}
	}
	return model.Curator{}, err
}

// CreateBook always stores a new item as available.
func (r *repository) CreateBook(ctx context.Context, b model.BookItem) (model.BookItem, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("id", "curator_id", "title", "author", "publisher", "publish_date", "pagination",
			"additional_notes", "isbn", "availability", "image", "created_at").
		Values(uuid.NewString(), b.CuratorID, b.Title, b.Author, b.Publisher, b.PublishDate, b.Pagination,
			b.AdditionalNotes, b.ISBN, model.AvailabilityAvailable, b.Image, time.Now().UTC()).
		Suffix("returning " + columnList(bookColumns)).
		ToSql()
	if err != nil {
		return model.BookItem{}, err
	}
	var out model.BookItem
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Error(err))
		return model.BookItem{}, mapErr(err, "CreateBook")
	}
	return out, nil
}

func (r *repository) GetBook(ctx context.Context, bookID string) (model.BookItem, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": bookID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.BookItem{}, err
	}
	var book model.BookItem
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		return model.BookItem{}, mapErr(err, "GetBook")
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, curatorID string) ([]model.BookItem, error) {
	return r.selectBooks(ctx, "ListBooks", sq.Eq{"curator_id": curatorID})
}

func (r *repository) FindBooks(ctx context.Context, curatorID, isbn string) ([]model.BookItem, error) {
	return r.selectBooks(ctx, "FindBooks", sq.Eq{"curator_id": curatorID, "isbn": isbn})
}

func (r *repository) selectBooks(ctx context.Context, op string, where sq.Eq) ([]model.BookItem, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(where).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug(op, zap.String("query", query), zap.Any("args", args))

	books := make([]model.BookItem, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		if errors.Is(mapErr(err, op), errs.ErrNotFound) {
			return books, nil
		}
		return nil, mapErr(err, op)
	}
	return books, nil
}
