package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	CatalogRepository
	LedgerRepository
	Transactor
}

type CatalogRepository interface {
	CreateCurator(ctx context.Context, c model.Curator) (model.Curator, error)
	GetCurator(ctx context.Context, curatorID string) (model.Curator, error)
	UpdatePublicNotice(ctx context.Context, curatorID, text string, version *int) (model.Curator, error)
	CreateBook(ctx context.Context, b model.BookItem) (model.BookItem, error)
	GetBook(ctx context.Context, bookID string) (model.BookItem, error)
	ListBooks(ctx context.Context, curatorID string) ([]model.BookItem, error)
	FindBooks(ctx context.Context, curatorID, isbn string) ([]model.BookItem, error)
}

type LedgerRepository interface {
	CreateAcquisitionRequest(ctx context.Context, r model.AcquisitionRequest) (model.AcquisitionRequest, error)
	ListAcquisitionRequests(ctx context.Context, curatorID string) ([]model.AcquisitionRequest, error)
	ListBorrowRequests(ctx context.Context, curatorID string) ([]model.BorrowRequestView, error)
	GetBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error)
}

// Transactor runs fn as one atomic unit: every write made through tx becomes
// visible together on a nil return, and none of them on error.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LendingTx) error) error
}

// LendingTx is the only writer of BookItem availability and BorrowRequest status.
// Locks taken through it are held until the transaction ends. Callers lock the
// book before the borrow request to keep a single lock order.
type LendingTx interface {
	LockBook(ctx context.Context, bookID string) (model.BookItem, error)
	SetAvailability(ctx context.Context, bookID string, a model.Availability) error
	GetBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error)
	LockBorrowRequest(ctx context.Context, requestID string) (model.BorrowRequest, error)
	InsertBorrowRequest(ctx context.Context, r model.BorrowRequest) (model.BorrowRequest, error)
	SetBorrowStatus(ctx context.Context, requestID string, s model.BorrowStatus) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

var _ Repository = (*repository)(nil)

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	curatorsTableName            = `curators`
	booksTableName               = `books`
	acquisitionRequestsTableName = `acquisition_requests`
	borrowRequestsTableName      = `borrow_requests`

	activeBorrowIndex = `borrow_requests_active_uniq`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	curatorColumns = []string{"id", "name", "description", "country", "state", "city",
		"public_notice", "cover_image", "is_verified", "version", "created_at"}
	bookColumns = []string{"id", "curator_id", "title", "author", "publisher", "publish_date",
		"pagination", "additional_notes", "isbn", "availability", "image", "created_at"}
	acquisitionColumns = []string{"id", "curator_id", "title", "author", "additional_notes",
		"wallet", "created_at"}
	borrowColumns = []string{"id", "book_id", "curator_id", "wallet", "name", "email", "phone",
		"delivery_address", "borrow_date", "return_date", "status", "created_at", "updated_at"}
)

// mapErr translates driver errors into the errs taxonomy.
func mapErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(errs.ErrNotFound, op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if pgErr.ConstraintName == activeBorrowIndex {
				return errors.Wrap(errs.ErrConflict, op)
			}
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrValidation, op+": referenced record does not exist")
		case pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException:
			return errors.Wrap(errs.ErrValidation, op+": "+pgErr.Message)
		case pgerrcode.InvalidTextRepresentation:
			// malformed uuid
			return errors.Wrap(errs.ErrNotFound, op)
		}
	}
	return errs.Storage(err, op)
}

func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
