// internal/circulation/domain.go
package circulation

import (
	"errors"

	"libracore/internal/store"
)

// Borrowing policy.
const (
	loanPeriodDays = 14
	maxOpenBorrows = 5
)

// Tiered late-fee schedule: the first week overdue accrues at a lower daily
// rate, later days at a higher one, with a global cap.
const (
	firstTierDays  = 7
	firstTierRate  = 0.50
	secondTierRate = 1.00

	// MaxLateFee is the cap on any single late fee, in dollars.
	MaxLateFee = 15.00
)

// Fee-quote statuses. A zero quote carries one of two distinct statuses:
// not overdue versus no record at all. Callers that only look at the amount
// cannot tell these apart.
const (
	StatusNotOverdue = "No late fee. Book is not overdue."
	StatusCalculated = "Late fee calculated successfully."
	StatusNoRecord   = "No borrow record found related to the patron."
)

// ErrInvalidPatronID is the error variant PatronStatus returns instead of a
// report when the patron id is malformed.
var ErrInvalidPatronID = errors.New("Invalid patron ID.")

// Result is the outcome of a borrow or return transition.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FeeQuote is a fee computed fresh from the ledger; it is never persisted.
type FeeQuote struct {
	FeeAmount   float64 `json:"fee_amount"`
	DaysOverdue int     `json:"days_overdue"`
	Status      string  `json:"status"`
}

// OverdueBook is one overdue entry in a patron status report.
type OverdueBook struct {
	BookID      int64   `json:"book_id"`
	Title       string  `json:"title"`
	DaysOverdue int     `json:"days_overdue"`
	FeeAmount   float64 `json:"fee_amount"`
}

// PatronStatus aggregates a patron's open borrows and accrued late fees.
type PatronStatus struct {
	PatronID               string               `json:"patron_id"`
	TotalLateFees          float64              `json:"total_late_fees"`
	OverdueBooks           []OverdueBook        `json:"overdue_books"`
	TotalBooksBorrowed     int                  `json:"total_books_borrowed"`
	CurrentlyBorrowedBooks []store.BorrowedBook `json:"currently_borrowed_books"`
}

// ValidPatronID reports whether id is exactly six ASCII digits.
func ValidPatronID(id string) bool {
	if len(id) != 6 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
