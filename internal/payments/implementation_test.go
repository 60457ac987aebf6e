package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"libracore/internal/circulation"
	"libracore/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPatron = "123456"

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) ProcessPayment(ctx context.Context, patronID string, amount float64, description string) (bool, string, string, error) {
	args := m.Called(ctx, patronID, amount, description)
	return args.Bool(0), args.String(1), args.String(2), args.Error(3)
}

func (m *mockGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (bool, string, error) {
	args := m.Called(ctx, transactionID, amount)
	return args.Bool(0), args.String(1), args.Error(2)
}

// newOverdueFixture seeds one book with a 10-day-overdue open record, which
// accrues a 6.50 fee.
func newOverdueFixture(t *testing.T, gw Gateway) (Service, int64) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.InsertBook(ctx, "Test Book", "Test Author", "9780000000021", 1, 0))
	book, err := st.GetBookByISBN(ctx, "9780000000021")
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, st.InsertBorrowRecord(ctx, testPatron, book.ID, now.AddDate(0, 0, -24), now.AddDate(0, 0, -10)))

	circ := circulation.NewService(st)
	return NewService(st, circ, gw), book.ID
}

func TestPayLateFeesSuccess(t *testing.T) {
	gw := new(mockGateway)
	svc, bookID := newOverdueFixture(t, gw)

	gw.On("ProcessPayment", mock.Anything, testPatron, 6.50, "Late fees for 'Test Book'").
		Return(true, "txn_123", "Charged.", nil)

	res := svc.PayLateFees(context.Background(), testPatron, bookID)
	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "Payment successful")
	require.NotNil(t, res.TransactionID)
	assert.Equal(t, "txn_123", *res.TransactionID)
	gw.AssertExpectations(t)
}

func TestPayLateFeesDeclined(t *testing.T) {
	gw := new(mockGateway)
	svc, bookID := newOverdueFixture(t, gw)

	gw.On("ProcessPayment", mock.Anything, testPatron, 6.50, "Late fees for 'Test Book'").
		Return(false, "", "Payment declined", nil)

	res := svc.PayLateFees(context.Background(), testPatron, bookID)
	assert.False(t, res.Success)
	assert.Equal(t, "Payment failed: Payment declined", res.Message)
	assert.Nil(t, res.TransactionID)
	gw.AssertExpectations(t)
}

func TestPayLateFeesTransportFault(t *testing.T) {
	gw := new(mockGateway)
	svc, bookID := newOverdueFixture(t, gw)

	gw.On("ProcessPayment", mock.Anything, testPatron, 6.50, "Late fees for 'Test Book'").
		Return(false, "", "", errors.New("network error"))

	res := svc.PayLateFees(context.Background(), testPatron, bookID)
	assert.False(t, res.Success)
	assert.Equal(t, "Payment processing error: network error", res.Message)
	assert.Nil(t, res.TransactionID)
	gw.AssertExpectations(t)
}

func TestPayLateFeesInvalidPatronID(t *testing.T) {
	gw := new(mockGateway)
	svc, bookID := newOverdueFixture(t, gw)

	res := svc.PayLateFees(context.Background(), "123", bookID)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid patron ID. Must be exactly 6 digits.", res.Message)
	gw.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPayLateFeesNothingOwed(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.InsertBook(ctx, "Fresh Book", "Test Author", "9780000000022", 1, 0))
	book, err := st.GetBookByISBN(ctx, "9780000000022")
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, st.InsertBorrowRecord(ctx, testPatron, book.ID, now, now.AddDate(0, 0, 14)))

	gw := new(mockGateway)
	svc := NewService(st, circulation.NewService(st), gw)

	res := svc.PayLateFees(ctx, testPatron, book.ID)
	assert.False(t, res.Success)
	assert.Equal(t, "No late fees to pay.", res.Message)
	gw.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundValidation(t *testing.T) {
	testCases := []struct {
		name          string
		transactionID string
		amount        float64
		wantMessage   string
	}{
		{"empty transaction id", "", 10.00, "Invalid transaction ID."},
		{"arbitrary string", "invalid_id", 10.00, "Invalid transaction ID."},
		{"wrong prefix case", "TXN_123", 10.00, "Invalid transaction ID."},
		{"zero amount", "txn_123", 0, "Refund amount must be greater than 0."},
		{"negative amount", "txn_123", -10.00, "Refund amount must be greater than 0."},
		{"exceeds cap", "txn_123", 20.00, "Refund amount exceeds maximum late fee ($15.00)."},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			svc := NewService(store.NewMemoryStore(), circulation.NewService(store.NewMemoryStore()), gw)

			res := svc.RefundLateFeePayment(context.Background(), tt.transactionID, tt.amount)
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
			gw.AssertNotCalled(t, "RefundPayment", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRefundRelaysGatewayOutcome(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(store.NewMemoryStore(), circulation.NewService(store.NewMemoryStore()), gw)

	gw.On("RefundPayment", mock.Anything, "txn_123", 10.00).
		Return(true, "Refund successful", nil)

	res := svc.RefundLateFeePayment(context.Background(), "txn_123", 10.00)
	assert.True(t, res.Success)
	assert.Equal(t, "Refund successful", res.Message)
	gw.AssertExpectations(t)
}

func TestRefundTransportFault(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(store.NewMemoryStore(), circulation.NewService(store.NewMemoryStore()), gw)

	gw.On("RefundPayment", mock.Anything, "txn_123", 5.00).
		Return(false, "", errors.New("connection reset"))

	res := svc.RefundLateFeePayment(context.Background(), "txn_123", 5.00)
	assert.False(t, res.Success)
	assert.Equal(t, "Payment processing error: connection reset", res.Message)
}
