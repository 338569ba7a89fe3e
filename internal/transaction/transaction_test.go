package transaction_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/transaction"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// postedInvoice returns a posted invoice with total 270 and no payments,
// built from the lines (2 × 100 − 10 + 15) and (1 × 50 − 5 + 20).
func postedInvoice(t *testing.T) *transaction.Transaction {
	t.Helper()

	customerID := uuid.New()
	tx := &transaction.Transaction{
		ID:              uuid.New(),
		CompanyID:       uuid.New(),
		Type:            transaction.TypeInvoice,
		CustomerID:      &customerID,
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	err := tx.SetLines([]transaction.Line{
		{LineNumber: 1, LineType: transaction.LineTypeItem, Quantity: dec("2"), UnitPrice: dec("100.00"), DiscountAmount: dec("10.00"), TaxAmount: dec("15.00")},
		{LineNumber: 2, LineType: transaction.LineTypeItem, Quantity: dec("1"), UnitPrice: dec("50.00"), DiscountAmount: dec("5.00"), TaxAmount: dec("20.00")},
	})
	require.NoError(t, err)

	require.NoError(t, tx.Post(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))

	return tx
}

func TestSetLines_ComputesTotals(t *testing.T) {
	tx := &transaction.Transaction{Type: transaction.TypeInvoice}

	err := tx.SetLines([]transaction.Line{
		{LineNumber: 1, Quantity: dec("2"), UnitPrice: dec("100.00"), DiscountAmount: dec("10.00"), TaxAmount: dec("15.00")},
		{LineNumber: 2, Quantity: dec("1"), UnitPrice: dec("50.00"), DiscountAmount: dec("5.00"), TaxAmount: dec("20.00")},
	})
	require.NoError(t, err)

	assert.True(t, tx.Subtotal.Equal(dec("235")), "subtotal %s", tx.Subtotal)
	assert.True(t, tx.TaxAmount.Equal(dec("35")), "tax %s", tx.TaxAmount)
	assert.True(t, tx.TotalAmount.Equal(dec("270")), "total %s", tx.TotalAmount)
	assert.True(t, tx.BalanceDue.IsZero(), "balance stays zero until posting")
	assert.Equal(t, transaction.StatusDraft, tx.Status())
}

func TestSetLines_InvalidLineRejected(t *testing.T) {
	tx := &transaction.Transaction{Type: transaction.TypeInvoice}

	err := tx.SetLines([]transaction.Line{
		{LineNumber: 1, Quantity: dec("-2"), UnitPrice: dec("100.00")},
	})

	var verr *errs.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.LineNumber)
	assert.Equal(t, "quantity", verr.Field)
	assert.Empty(t, tx.Lines, "failed mutation must not keep lines")
}

func TestSetLines_FrozenAfterPost(t *testing.T) {
	tx := postedInvoice(t)

	err := tx.SetLines([]transaction.Line{
		{LineNumber: 1, Quantity: dec("1"), UnitPrice: dec("1")},
	})

	var conflict *errs.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.True(t, tx.TotalAmount.Equal(dec("270")), "totals unchanged")
	assert.Len(t, tx.Lines, 2)
}

func TestPost(t *testing.T) {
	tx := &transaction.Transaction{Type: transaction.TypeInvoice}
	require.NoError(t, tx.SetLines([]transaction.Line{
		{LineNumber: 1, Quantity: dec("2"), UnitPrice: dec("100.00"), DiscountAmount: dec("10.00"), TaxAmount: dec("15.00")},
		{LineNumber: 2, Quantity: dec("1"), UnitPrice: dec("50.00"), DiscountAmount: dec("5.00"), TaxAmount: dec("20.00")},
	}))

	postingDate := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tx.Post(postingDate))

	assert.True(t, tx.IsPosted)
	require.NotNil(t, tx.PostingDate)
	assert.Equal(t, postingDate, *tx.PostingDate)
	assert.True(t, tx.BalanceDue.Equal(dec("270")), "balance opens at total, got %s", tx.BalanceDue)
	assert.Equal(t, transaction.StatusPosted, tx.Status())
}

func TestPost_TwiceRejected(t *testing.T) {
	tx := postedInvoice(t)

	err := tx.Post(time.Now())

	var conflict *errs.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.True(t, tx.BalanceDue.Equal(dec("270")), "second post must not reset balance")
}

func TestPost_VoidRejected(t *testing.T) {
	tx := &transaction.Transaction{Type: transaction.TypeInvoice, IsVoid: true}

	err := tx.Post(time.Now())

	var conflict *errs.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.False(t, tx.IsPosted)
}

func TestApplyPayment_FullSettlement(t *testing.T) {
	tx := postedInvoice(t)

	require.NoError(t, tx.ApplyPayment(dec("270"), decimal.Zero))

	assert.True(t, tx.BalanceDue.IsZero())
	assert.Equal(t, transaction.StatusPaid, tx.Status())
}

func TestApplyPayment_PartialThenDiscount(t *testing.T) {
	tx := postedInvoice(t)

	require.NoError(t, tx.ApplyPayment(dec("200"), decimal.Zero))
	assert.True(t, tx.BalanceDue.Equal(dec("70")), "got %s", tx.BalanceDue)
	assert.Equal(t, transaction.StatusPosted, tx.Status())
	assert.True(t, tx.HasPayments())

	require.NoError(t, tx.ApplyPayment(dec("60"), dec("10")))
	assert.True(t, tx.BalanceDue.IsZero())
	assert.Equal(t, transaction.StatusPaid, tx.Status())
}

func TestApplyPayment_OverpaymentRejected(t *testing.T) {
	tx := postedInvoice(t)

	err := tx.ApplyPayment(dec("300"), decimal.Zero)

	var overpayment *errs.OverpaymentError
	require.True(t, errors.As(err, &overpayment))
	assert.True(t, tx.BalanceDue.Equal(dec("270")), "balance unchanged, got %s", tx.BalanceDue)

	// An overpayment is also a conflict for status mapping purposes.
	assert.True(t, errors.Is(err, &errs.ConflictError{}))
}

func TestApplyPayment_DiscountCountsTowardBalance(t *testing.T) {
	tx := postedInvoice(t)

	err := tx.ApplyPayment(dec("260"), dec("20"))

	var overpayment *errs.OverpaymentError
	require.True(t, errors.As(err, &overpayment))
	assert.True(t, tx.BalanceDue.Equal(dec("270")))
}

func TestApplyPayment_Preconditions(t *testing.T) {
	type testCase struct {
		name string
		tx   *transaction.Transaction
	}

	tests := []testCase{
		{
			name: "draft",
			tx:   &transaction.Transaction{Type: transaction.TypeInvoice},
		},
		{
			name: "void",
			tx:   &transaction.Transaction{Type: transaction.TypeInvoice, IsPosted: true, IsVoid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.ApplyPayment(dec("10"), decimal.Zero)

			var conflict *errs.ConflictError
			require.True(t, errors.As(err, &conflict))
		})
	}
}

func TestApplyPayment_NegativeAmounts(t *testing.T) {
	tx := postedInvoice(t)

	err := tx.ApplyPayment(dec("-5"), decimal.Zero)

	var verr *errs.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount_applied", verr.Field)
	assert.True(t, tx.BalanceDue.Equal(dec("270")))
}

func TestVoid_Draft(t *testing.T) {
	tx := &transaction.Transaction{Type: transaction.TypeInvoice}
	require.NoError(t, tx.SetLines([]transaction.Line{
		{LineNumber: 1, Quantity: dec("1"), UnitPrice: dec("100")},
	}))

	require.NoError(t, tx.Void("duplicate entry"))

	assert.True(t, tx.IsVoid)
	assert.Equal(t, "duplicate entry", tx.VoidReason)
	assert.True(t, tx.BalanceDue.IsZero())
	assert.Equal(t, transaction.StatusVoid, tx.Status())
}

func TestVoid_PostedWithoutPayments(t *testing.T) {
	tx := postedInvoice(t)

	require.NoError(t, tx.Void("customer cancelled"))

	assert.True(t, tx.IsVoid)
	assert.True(t, tx.BalanceDue.IsZero(), "voided documents carry no balance")
}

func TestVoid_WithAppliedPaymentRejected(t *testing.T) {
	tx := postedInvoice(t)
	require.NoError(t, tx.ApplyPayment(dec("100"), decimal.Zero))

	err := tx.Void("late cancellation")

	var conflict *errs.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.False(t, tx.IsVoid)
	assert.True(t, tx.BalanceDue.Equal(dec("170")), "balance unchanged, got %s", tx.BalanceDue)
}

func TestVoid_TwiceRejected(t *testing.T) {
	tx := postedInvoice(t)
	require.NoError(t, tx.Void("first"))

	err := tx.Void("second")

	var conflict *errs.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "first", tx.VoidReason)
}

func TestStatus(t *testing.T) {
	type testCase struct {
		name string
		tx   transaction.Transaction
		want transaction.Status
	}

	tests := []testCase{
		{
			name: "draft",
			tx:   transaction.Transaction{},
			want: transaction.StatusDraft,
		},
		{
			name: "posted with balance",
			tx:   transaction.Transaction{IsPosted: true, TotalAmount: dec("100"), BalanceDue: dec("100")},
			want: transaction.StatusPosted,
		},
		{
			name: "posted fully settled",
			tx:   transaction.Transaction{IsPosted: true, TotalAmount: dec("100"), BalanceDue: decimal.Zero},
			want: transaction.StatusPaid,
		},
		{
			name: "void wins over posted",
			tx:   transaction.Transaction{IsPosted: true, IsVoid: true},
			want: transaction.StatusVoid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.Status())
		})
	}
}

func TestType(t *testing.T) {
	assert.True(t, transaction.TypeInvoice.Valid())
	assert.False(t, transaction.Type("refund").Valid())

	assert.True(t, transaction.TypeInvoice.CustomerSide())
	assert.True(t, transaction.TypeSalesReceipt.CustomerSide())
	assert.False(t, transaction.TypeBill.CustomerSide())

	assert.True(t, transaction.TypeBill.VendorSide())
	assert.False(t, transaction.TypeJournalEntry.VendorSide())
}
