// internal/payments/domain.go
package payments

import (
	"context"
	"regexp"
)

// Gateway is the capability interface for the external payment processor.
// A declined charge is a business outcome carried in accepted/message; a
// non-nil error is a transport fault (network, timeout) and carries no
// business meaning.
type Gateway interface {
	ProcessPayment(ctx context.Context, patronID string, amount float64, description string) (accepted bool, transactionID string, message string, err error)
	RefundPayment(ctx context.Context, transactionID string, amount float64) (accepted bool, message string, err error)
}

// PaymentResult is the outcome of a late-fee charge. TransactionID is set
// only on an accepted charge.
type PaymentResult struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	TransactionID *string `json:"transaction_id"`
}

// RefundResult is the outcome of a refund request.
type RefundResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Generated transaction ids look like txn_<token>; refunds against anything
// else are rejected before the gateway is touched.
var transactionIDPattern = regexp.MustCompile(`^txn_[A-Za-z0-9-]+$`)
