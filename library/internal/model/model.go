package model

import (
	"time"
)

const PublicNoticeMaxLen = 200

type Availability string

const (
	AvailabilityAvailable Availability = "AVAILABLE"
	AvailabilityRequested Availability = "REQUESTED"
	AvailabilityOnLoan    Availability = "ON_LOAN"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityRequested, AvailabilityOnLoan:
		return true
	}
	return false
}

type BorrowStatus string

const (
	BorrowStatusPending  BorrowStatus = "PENDING"
	BorrowStatusApproved BorrowStatus = "APPROVED"
	BorrowStatusRejected BorrowStatus = "REJECTED"
	BorrowStatusReturned BorrowStatus = "RETURNED"
)

// Active requests hold the book.
func (s BorrowStatus) Active() bool {
	return s == BorrowStatusPending || s == BorrowStatusApproved
}

type Outcome string

const (
	OutcomeApprove Outcome = "APPROVE"
	OutcomeReject  Outcome = "REJECT"
)

type Curator struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Description  string     `json:"description" db:"description"`
	Country      string     `json:"country" db:"country"`
	State        string     `json:"state" db:"state"`
	City         string     `json:"city" db:"city"`
	PublicNotice string     `json:"publicNotice" db:"public_notice"`
	CoverImage   string     `json:"coverImage,omitempty" db:"cover_image"`
	IsVerified   bool       `json:"isVerified" db:"is_verified"`
	Version      int        `json:"version" db:"version"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	Books        []BookItem `json:"books,omitempty" db:"-"`
}

type BookItem struct {
	ID              string       `json:"id" db:"id"`
	CuratorID       string       `json:"curatorId" db:"curator_id"`
	Title           string       `json:"title" db:"title"`
	Author          string       `json:"author" db:"author"`
	Publisher       string       `json:"publisher" db:"publisher"`
	PublishDate     string       `json:"publishDate" db:"publish_date"`
	Pagination      int          `json:"pagination" db:"pagination"`
	AdditionalNotes string       `json:"additionalNotes,omitempty" db:"additional_notes"`
	ISBN            *string      `json:"isbn" db:"isbn"`
	Availability    Availability `json:"availability" db:"availability"`
	Image           string       `json:"image,omitempty" db:"image"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
}

type AcquisitionRequest struct {
	ID              string    `json:"id" db:"id"`
	CuratorID       string    `json:"curatorId" db:"curator_id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	AdditionalNotes string    `json:"additionalNotes,omitempty" db:"additional_notes"`
	Wallet          string    `json:"wallet" db:"wallet"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

type Borrower struct {
	Wallet          string `json:"wallet" db:"wallet"`
	Name            string `json:"name" db:"name" validate:"notblank"`
	Email           string `json:"email" db:"email" validate:"notblank"`
	Phone           string `json:"phone" db:"phone"`
	DeliveryAddress string `json:"deliveryAddress" db:"delivery_address" validate:"notblank"`
}

type BorrowRequest struct {
	ID         string `json:"id" db:"id"`
	BookID     string `json:"bookId" db:"book_id"`
	CuratorID  string `json:"curatorId" db:"curator_id"`
	Borrower   `json:",inline"`
	BorrowDate time.Time    `json:"borrowDate" db:"borrow_date"`
	ReturnDate time.Time    `json:"returnDate" db:"return_date"`
	Status     BorrowStatus `json:"status" db:"status"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time    `json:"updatedAt" db:"updated_at"`
}

// BorrowRequestView carries the book as it is at read time.
type BorrowRequestView struct {
	BorrowRequest `json:",inline"`
	Book          BookItem `json:"book"`
}

type Metadata struct {
	ISBN        string   `json:"isbn"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Publisher   string   `json:"publisher"`
	PublishDate string   `json:"publishDate"`
	Pagination  int      `json:"pagination"`
	CoverURL    string   `json:"coverUrl,omitempty"`

	// Set when the corresponding upstream call failed; for logging only.
	SourceErr error `json:"-"`
	CoverErr  error `json:"-"`
}

func (m Metadata) Found() bool {
	return m.Title != ""
}

type LendingEventType string

const (
	EventBorrowRequested LendingEventType = "BORROW_REQUESTED"
	EventBorrowApproved  LendingEventType = "BORROW_APPROVED"
	EventBorrowRejected  LendingEventType = "BORROW_REJECTED"
	EventBookReturned    LendingEventType = "BOOK_RETURNED"
)

type LendingEvent struct {
	Type            LendingEventType `json:"type"`
	BorrowRequestID string           `json:"borrowRequestId"`
	BookID          string           `json:"bookId"`
	CuratorID       string           `json:"curatorId"`
	Availability    Availability     `json:"availability"`
	Email           string           `json:"email,omitempty"`
	At              time.Time        `json:"at"`
}

type ReturnMsg struct {
	BorrowRequestID string `json:"borrowRequestId"`
}
