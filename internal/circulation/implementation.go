// internal/circulation/implementation.go
package circulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libracore/internal/store"
)

// service implements the Service interface.
type service struct {
	store store.Store
}

// NewService creates a new circulation service instance.
func NewService(st store.Store) Service {
	return &service{store: st}
}

// Borrow checks out a book to a patron for the standard loan period.
func (s *service) Borrow(ctx context.Context, patronID string, bookID int64) Result {
	if !ValidPatronID(patronID) {
		return Result{Message: "Invalid patron ID. Must be exactly 6 digits."}
	}

	book, err := s.store.GetBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Result{Message: "Book not found."}
		}
		return Result{Message: "Database error occurred while looking up the book."}
	}
	if book.AvailableCopies <= 0 {
		return Result{Message: "This book is currently not available."}
	}

	count, err := s.store.GetPatronBorrowCount(ctx, patronID)
	if err != nil {
		return Result{Message: "Database error occurred while checking the borrowing limit."}
	}
	// The limit trips on "more than 5 already borrowed": a patron holding
	// exactly 5 may still take a 6th.
	if count > maxOpenBorrows {
		return Result{Message: "You have reached the maximum borrowing limit of 5 books."}
	}

	borrowDate := time.Now()
	dueDate := borrowDate.AddDate(0, 0, loanPeriodDays)

	// Two independent writes; a failure between them leaves the ledger and
	// the availability count inconsistent and is not rolled back.
	if err := s.store.InsertBorrowRecord(ctx, patronID, bookID, borrowDate, dueDate); err != nil {
		return Result{Message: "Database error occurred while creating borrow record."}
	}
	if err := s.store.UpdateBookAvailability(ctx, bookID, -1); err != nil {
		return Result{Message: "Database error occurred while updating book availability."}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Successfully borrowed %q. Due date: %s.", book.Title, dueDate.Format("2006-01-02")),
	}
}

// Return closes a patron's open borrow record and reports any late fee.
func (s *service) Return(ctx context.Context, patronID string, bookID int64) Result {
	if !ValidPatronID(patronID) {
		return Result{Message: "Invalid patron ID. Must be exactly 6 digits."}
	}

	book, err := s.store.GetBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Result{Message: "Book does not exist."}
		}
		return Result{Message: "Database error occurred while looking up the book."}
	}

	borrowed, err := s.store.GetPatronBorrowedBooks(ctx, patronID)
	if err != nil {
		return Result{Message: "Database error occurred while looking up borrowed books."}
	}

	// First open record wins when duplicates exist.
	var match *store.BorrowedBook
	for i := range borrowed {
		if borrowed[i].BookID == bookID {
			match = &borrowed[i]
			break
		}
	}
	if match == nil {
		return Result{Message: fmt.Sprintf("Book %q was not borrowed by patron ID %s.", book.Title, patronID)}
	}

	returnDate := time.Now()
	fee, _ := LateFee(match.DueDate, returnDate)

	if err := s.store.UpdateBorrowRecordReturnDate(ctx, patronID, bookID, returnDate); err != nil {
		return Result{Message: "Database error occurred while updating return date."}
	}
	if err := s.store.UpdateBookAvailability(ctx, bookID, 1); err != nil {
		return Result{Message: "Database error occurred while updating book availability."}
	}

	if fee > 0 {
		return Result{
			Success: true,
			Message: fmt.Sprintf("Book %q returned. Late fee owed: $%.2f.", book.Title, fee),
		}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Book %q returned successfully. No late fees owed.", book.Title),
	}
}

// FeeQuoteFor computes the current late fee for one of a patron's open
// borrows. The quote always carries a status; a zero amount can mean either
// "not overdue" or "no record", told apart only by the status text.
func (s *service) FeeQuoteFor(ctx context.Context, patronID string, bookID int64) FeeQuote {
	borrowed, err := s.store.GetPatronBorrowedBooks(ctx, patronID)
	if err != nil {
		return FeeQuote{Status: StatusNoRecord}
	}

	for _, b := range borrowed {
		if b.BookID != bookID {
			continue
		}
		fee, days := LateFee(b.DueDate, time.Now())
		if days == 0 {
			return FeeQuote{Status: StatusNotOverdue}
		}
		return FeeQuote{FeeAmount: fee, DaysOverdue: days, Status: StatusCalculated}
	}
	return FeeQuote{Status: StatusNoRecord}
}

// PatronStatus aggregates a patron's open borrows and late fees. A malformed
// patron id yields ErrInvalidPatronID instead of a report.
func (s *service) PatronStatus(ctx context.Context, patronID string) (*PatronStatus, error) {
	if !ValidPatronID(patronID) {
		return nil, ErrInvalidPatronID
	}

	borrowed, err := s.store.GetPatronBorrowedBooks(ctx, patronID)
	if err != nil {
		return nil, fmt.Errorf("load borrowed books: %w", err)
	}

	// One "now" for the whole report so every entry is judged consistently.
	now := time.Now()
	status := &PatronStatus{
		PatronID:               patronID,
		OverdueBooks:           []OverdueBook{},
		TotalBooksBorrowed:     len(borrowed),
		CurrentlyBorrowedBooks: borrowed,
	}
	for _, b := range borrowed {
		fee, days := LateFee(b.DueDate, now)
		if fee > 0 {
			status.TotalLateFees += fee
			status.OverdueBooks = append(status.OverdueBooks, OverdueBook{
				BookID:      b.BookID,
				Title:       b.Title,
				DaysOverdue: days,
				FeeAmount:   fee,
			})
		}
	}
	return status, nil
}
