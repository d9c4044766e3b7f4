package service

import (
	"context"
	"strings"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
)

func (s *Service) SubmitAcquisitionRequest(ctx context.Context, req model.AcquisitionRequestInput) (model.AcquisitionRequest, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.AcquisitionRequest{}, errs.Validation("title is required")
	}
	return s.repo.CreateAcquisitionRequest(ctx, model.AcquisitionRequest{
		CuratorID:       req.CuratorID,
		Title:           title,
		Author:          strings.TrimSpace(req.Author),
		AdditionalNotes: req.AdditionalNotes,
		Wallet:          req.Wallet,
	})
}

func (s *Service) ListAcquisitionRequests(ctx context.Context, curatorID string) ([]model.AcquisitionRequest, error) {
	return s.repo.ListAcquisitionRequests(ctx, curatorID)
}

// ListBorrowRequests joins each request with the book as it is now.
func (s *Service) ListBorrowRequests(ctx context.Context, curatorID string) ([]model.BorrowRequestView, error) {
	return s.repo.ListBorrowRequests(ctx, curatorID)
}
