package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Service) CreateCurator(ctx context.Context, req model.CreateCuratorRequest) (model.Curator, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Curator{}, errs.Validation("curator name is required")
	}
	return s.repo.CreateCurator(ctx, model.Curator{
		Name:        name,
		Description: req.Description,
		Country:     req.Country,
		State:       req.State,
		City:        req.City,
		CoverImage:  req.CoverImage,
	})
}

// GetCurator returns the curator together with its catalog.
func (s *Service) GetCurator(ctx context.Context, curatorID string) (model.Curator, error) {
	c, err := s.repo.GetCurator(ctx, curatorID)
	if err != nil {
		return model.Curator{}, err
	}
	c.Books, err = s.repo.ListBooks(ctx, curatorID)
	if err != nil {
		return model.Curator{}, err
	}
	return c, nil
}

// UpdatePublicNotice rejects over-long text before touching the store.
func (s *Service) UpdatePublicNotice(ctx context.Context, req model.UpdatePublicNoticeRequest) (model.Curator, error) {
	if utf8.RuneCountInString(req.Text) > model.PublicNoticeMaxLen {
		return model.Curator{}, errs.Validation("public notice must be at most 200 characters")
	}
	return s.repo.UpdatePublicNotice(ctx, req.CuratorID, req.Text, req.Version)
}

// AddBook fills blank bibliographic fields from the enricher when an ISBN is
// given. Enrichment happens before the insert and never fails the call.
func (s *Service) AddBook(ctx context.Context, req model.AddBookRequest) (model.BookItem, error) {
	if strings.TrimSpace(req.CuratorID) == "" {
		return model.BookItem{}, errs.Validation("curatorId is required")
	}
	if _, err := s.repo.GetCurator(ctx, req.CuratorID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.BookItem{}, errs.Validation("unknown curator")
		}
		return model.BookItem{}, err
	}

	book := model.BookItem{
		CuratorID:       req.CuratorID,
		Title:           strings.TrimSpace(req.Title),
		Author:          strings.TrimSpace(req.Author),
		Publisher:       strings.TrimSpace(req.Publisher),
		PublishDate:     strings.TrimSpace(req.PublishDate),
		Pagination:      req.Pagination,
		AdditionalNotes: req.AdditionalNotes,
		Image:           req.Image,
	}
	if isbn := strings.TrimSpace(req.ISBN); isbn != "" {
		if !validISBN(isbn) {
			return model.BookItem{}, errs.Validation("isbn must be 10 to 13 digits")
		}
		book.ISBN = &isbn
		if needsEnrichment(book) {
			s.enrich(ctx, &book, isbn)
		}
	}
	if book.Title == "" {
		return model.BookItem{}, errs.Validation("title is required")
	}
	return s.repo.CreateBook(ctx, book)
}

func validISBN(isbn string) bool {
	if len(isbn) < 10 || len(isbn) > 13 {
		return false
	}
	for _, r := range isbn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func needsEnrichment(b model.BookItem) bool {
	return b.Title == "" || b.Author == "" || b.Publisher == "" ||
		b.PublishDate == "" || b.Pagination == 0 || b.Image == ""
}

func (s *Service) enrich(ctx context.Context, b *model.BookItem, isbn string) {
	md := s.enricher.Lookup(ctx, isbn)
	if b.Title == "" {
		b.Title = md.Title
	}
	if b.Author == "" {
		b.Author = strings.Join(md.Authors, ", ")
	}
	if b.Publisher == "" {
		b.Publisher = md.Publisher
	}
	if b.PublishDate == "" {
		b.PublishDate = md.PublishDate
	}
	if b.Pagination == 0 {
		b.Pagination = md.Pagination
	}
	if b.Image == "" {
		b.Image = md.CoverURL
	}
	s.log.Debug("book enriched", zap.String("isbn", isbn), zap.Bool("found", md.Found()))
}

func (s *Service) GetBook(ctx context.Context, bookID string) (model.BookItem, error) {
	return s.repo.GetBook(ctx, bookID)
}

func (s *Service) ListBooks(ctx context.Context, curatorID string) ([]model.BookItem, error) {
	return s.repo.ListBooks(ctx, curatorID)
}

// FindByCuratorAndIsbn returns an empty slice, not an error, when nothing matches.
func (s *Service) FindByCuratorAndIsbn(ctx context.Context, curatorID, isbn string) ([]model.BookItem, error) {
	curatorID, isbn = strings.TrimSpace(curatorID), strings.TrimSpace(isbn)
	if curatorID == "" || isbn == "" {
		return nil, errs.Validation("curatorId and isbn are required")
	}
	return s.repo.FindBooks(ctx, curatorID, isbn)
}

func (s *Service) LookupMetadata(ctx context.Context, isbn string) model.Metadata {
	return s.enricher.Lookup(ctx, strings.TrimSpace(isbn))
}
