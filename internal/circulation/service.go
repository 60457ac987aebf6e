// internal/circulation/service.go
package circulation

import "context"

// Service defines the interface for the circulation service.
type Service interface {
	Borrow(ctx context.Context, patronID string, bookID int64) Result
	Return(ctx context.Context, patronID string, bookID int64) Result
	FeeQuoteFor(ctx context.Context, patronID string, bookID int64) FeeQuote
	PatronStatus(ctx context.Context, patronID string) (*PatronStatus, error)
}
