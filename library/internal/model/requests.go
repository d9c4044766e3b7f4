package model

import (
	"time"
)

type CreateCuratorRequest struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description"`
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
	CoverImage  string `json:"coverImage"`
}

type AddBookRequest struct {
	CuratorID       string `json:"-"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	PublishDate     string `json:"publishDate"`
	Pagination      int    `json:"pagination" validate:"gte=0"`
	AdditionalNotes string `json:"additionalNotes"`
	ISBN            string `json:"isbn" validate:"omitempty,numeric,min=10,max=13"`
	Image           string `json:"image"`
}

type SubmitBorrowRequest struct {
	BookID     string `json:"bookId" validate:"required"`
	CuratorID  string `json:"curatorId"`
	Borrower   `json:",inline"`
	BorrowDate time.Time `json:"borrowDate" validate:"required"`
	ReturnDate time.Time `json:"returnDate" validate:"required"`
}

type AcquisitionRequestInput struct {
	CuratorID       string `json:"-"`
	Title           string `json:"title" validate:"notblank"`
	Author          string `json:"author"`
	AdditionalNotes string `json:"additionalNotes"`
	Wallet          string `json:"wallet"`
}

type UpdatePublicNoticeRequest struct {
	CuratorID string `json:"-"`
	Text      string `json:"text"`
	// Version, when set, must match the curator's current version.
	Version *int `json:"version,omitempty"`
}
