// internal/payments/implementation.go
package payments

import (
	"context"
	"fmt"

	"libracore/internal/circulation"
	"libracore/internal/store"
)

// service implements the Service interface.
type service struct {
	store       store.Store
	circulation circulation.Service
	gateway     Gateway
}

// NewService creates a new payment orchestrator.
func NewService(st store.Store, circ circulation.Service, gw Gateway) Service {
	return &service{store: st, circulation: circ, gateway: gw}
}

// PayLateFees charges a patron's current late fee for one book through the
// gateway. Validation failures and a zero fee never reach the gateway.
func (s *service) PayLateFees(ctx context.Context, patronID string, bookID int64) PaymentResult {
	if !circulation.ValidPatronID(patronID) {
		return PaymentResult{Message: "Invalid patron ID. Must be exactly 6 digits."}
	}

	quote := s.circulation.FeeQuoteFor(ctx, patronID, bookID)
	if quote.FeeAmount <= 0 {
		return PaymentResult{Message: "No late fees to pay."}
	}

	book, err := s.store.GetBookByID(ctx, bookID)
	if err != nil {
		return PaymentResult{Message: "Book not found."}
	}

	description := fmt.Sprintf("Late fees for '%s'", book.Title)
	accepted, transactionID, message, err := s.gateway.ProcessPayment(ctx, patronID, quote.FeeAmount, description)
	if err != nil {
		// Transport fault: report it, do not propagate or retry.
		return PaymentResult{Message: fmt.Sprintf("Payment processing error: %v", err)}
	}
	if !accepted {
		return PaymentResult{Message: fmt.Sprintf("Payment failed: %s", message)}
	}

	return PaymentResult{
		Success:       true,
		Message:       fmt.Sprintf("Payment successful. $%.2f charged for late fees.", quote.FeeAmount),
		TransactionID: &transactionID,
	}
}

// RefundLateFeePayment refunds a prior late-fee charge. The amount must be
// positive and can never exceed the late-fee cap.
func (s *service) RefundLateFeePayment(ctx context.Context, transactionID string, amount float64) RefundResult {
	if !transactionIDPattern.MatchString(transactionID) {
		return RefundResult{Message: "Invalid transaction ID."}
	}
	if amount <= 0 {
		return RefundResult{Message: "Refund amount must be greater than 0."}
	}
	if amount > circulation.MaxLateFee {
		return RefundResult{Message: fmt.Sprintf("Refund amount exceeds maximum late fee ($%.2f).", circulation.MaxLateFee)}
	}

	accepted, message, err := s.gateway.RefundPayment(ctx, transactionID, amount)
	if err != nil {
		return RefundResult{Message: fmt.Sprintf("Payment processing error: %v", err)}
	}
	return RefundResult{Success: accepted, Message: message}
}
