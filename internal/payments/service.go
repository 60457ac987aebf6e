// internal/payments/service.go
package payments

import "context"

// Service defines the interface for the payment orchestrator.
type Service interface {
	PayLateFees(ctx context.Context, patronID string, bookID int64) PaymentResult
	RefundLateFeePayment(ctx context.Context, transactionID string, amount float64) RefundResult
}
