// internal/payments/gateway.go
package payments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// SimulatedGateway is an in-process Gateway for development and tests. It
// issues txn_<uuid> transaction ids, remembers charges so refunds can be
// matched against them, and throttles calls; exhausting the limiter surfaces
// as a transport fault, the same shape a real gateway outage would have.
type SimulatedGateway struct {
	limiter *rate.Limiter

	mu      sync.Mutex
	charges map[string]float64
}

// NewSimulatedGateway creates a gateway allowing a burst of 10 calls,
// refilling one per second.
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{
		limiter: rate.NewLimiter(rate.Every(time.Second), 10),
		charges: make(map[string]float64),
	}
}

func (g *SimulatedGateway) ProcessPayment(ctx context.Context, patronID string, amount float64, description string) (bool, string, string, error) {
	if !g.limiter.Allow() {
		return false, "", "", errors.New("gateway rate limit exceeded")
	}
	if amount <= 0 {
		return false, "", "Charge amount must be positive.", nil
	}

	transactionID := "txn_" + uuid.NewString()
	g.mu.Lock()
	g.charges[transactionID] = amount
	g.mu.Unlock()

	return true, transactionID, fmt.Sprintf("Charged $%.2f to patron %s for %s.", amount, patronID, description), nil
}

func (g *SimulatedGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (bool, string, error) {
	if !g.limiter.Allow() {
		return false, "", errors.New("gateway rate limit exceeded")
	}

	g.mu.Lock()
	charged, ok := g.charges[transactionID]
	g.mu.Unlock()

	if !ok {
		return false, "No charge found for this transaction.", nil
	}
	if amount > charged {
		return false, "Refund amount exceeds the original charge.", nil
	}
	return true, fmt.Sprintf("Refund of $%.2f processed successfully.", amount), nil
}
