// internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a book or borrow record does not exist.
var ErrNotFound = errors.New("not found")

// Book is a catalog entry. Identifiers are store-assigned.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// BorrowedBook is the ledger's view of one open borrow record, joined with
// the catalog for the title.
type BorrowedBook struct {
	BookID     int64     `json:"book_id"`
	Title      string    `json:"title"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
}

// Store is the persistence contract shared by the catalog and the borrow
// ledger. A record is open while its return date is unset; counts and
// borrowed-book listings cover open records only.
type Store interface {
	GetBookByID(ctx context.Context, id int64) (*Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)
	GetAllBooks(ctx context.Context) ([]Book, error)
	InsertBook(ctx context.Context, title, author, isbn string, total, available int) error
	UpdateBookAvailability(ctx context.Context, id int64, delta int) error

	GetPatronBorrowCount(ctx context.Context, patronID string) (int, error)
	GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]BorrowedBook, error)
	InsertBorrowRecord(ctx context.Context, patronID string, bookID int64, borrowDate, dueDate time.Time) error
	UpdateBorrowRecordReturnDate(ctx context.Context, patronID string, bookID int64, returnDate time.Time) error
}
