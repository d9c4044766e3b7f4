package handler

import (
	"context"

	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/Astemirdum/curator-library/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	CreateCurator(ctx context.Context, req model.CreateCuratorRequest) (model.Curator, error)
	GetCurator(ctx context.Context, curatorID string) (model.Curator, error)
	UpdatePublicNotice(ctx context.Context, req model.UpdatePublicNoticeRequest) (model.Curator, error)

	AddBook(ctx context.Context, req model.AddBookRequest) (model.BookItem, error)
	GetBook(ctx context.Context, bookID string) (model.BookItem, error)
	ListBooks(ctx context.Context, curatorID string) ([]model.BookItem, error)
	FindByCuratorAndIsbn(ctx context.Context, curatorID, isbn string) ([]model.BookItem, error)
	LookupMetadata(ctx context.Context, isbn string) model.Metadata

	SubmitBorrowRequest(ctx context.Context, req model.SubmitBorrowRequest) (model.BorrowRequest, error)
	Decide(ctx context.Context, requestID string, outcome model.Outcome) error
	RecordReturn(ctx context.Context, requestID string) error

	SubmitAcquisitionRequest(ctx context.Context, req model.AcquisitionRequestInput) (model.AcquisitionRequest, error)
	ListAcquisitionRequests(ctx context.Context, curatorID string) ([]model.AcquisitionRequest, error)
	ListBorrowRequests(ctx context.Context, curatorID string) ([]model.BorrowRequestView, error)
}

var _ LibraryService = (*service.Service)(nil)
