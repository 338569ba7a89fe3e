package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(n int, quantity, unitPrice, discount, tax string) ledger.Line {
	return ledger.Line{
		LineNumber:     n,
		Quantity:       dec(quantity),
		UnitPrice:      dec(unitPrice),
		DiscountAmount: dec(discount),
		TaxAmount:      dec(tax),
	}
}

func TestComputeTotals(t *testing.T) {
	type want struct {
		subtotal string
		tax      string
		total    string
	}

	type testCase struct {
		name  string
		lines []ledger.Line
		want  want
	}

	tests := []testCase{
		{
			name:  "zero lines yields zero totals",
			lines: nil,
			want:  want{subtotal: "0", tax: "0", total: "0"},
		},
		{
			name: "invoice with discount and tax",
			lines: []ledger.Line{
				line(1, "2", "100.00", "10.00", "15.00"),
				line(2, "1", "50.00", "5.00", "20.00"),
			},
			want: want{subtotal: "235", tax: "35", total: "270"},
		},
		{
			name: "single line no discount no tax",
			lines: []ledger.Line{
				line(1, "4", "19.99", "0", "0"),
			},
			want: want{subtotal: "79.96", tax: "0", total: "79.96"},
		},
		{
			name: "fractional quantity",
			lines: []ledger.Line{
				line(1, "2.5", "10.50", "0.25", "1.05"),
			},
			want: want{subtotal: "26", tax: "1.05", total: "27.05"},
		},
		{
			name: "discount exceeding line amount is arithmetic not validation",
			lines: []ledger.Line{
				line(1, "1", "10.00", "25.00", "0"),
			},
			want: want{subtotal: "-15", tax: "0", total: "-15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ComputeTotals(tt.lines)
			require.NoError(t, err)

			assert.True(t, got.Subtotal.Equal(dec(tt.want.subtotal)),
				"subtotal: want %s, got %s", tt.want.subtotal, got.Subtotal)
			assert.True(t, got.TaxAmount.Equal(dec(tt.want.tax)),
				"tax: want %s, got %s", tt.want.tax, got.TaxAmount)
			assert.True(t, got.Total.Equal(dec(tt.want.total)),
				"total: want %s, got %s", tt.want.total, got.Total)
		})
	}
}

// The expected values are recomputed from the formula rather than hand-copied
// so a fixture typo cannot mask an arithmetic bug.
func TestComputeTotals_MatchesFormula(t *testing.T) {
	lines := []ledger.Line{
		line(1, "3", "75", "15", "12"),
		line(2, "10", "120", "50", "80"),
	}

	wantSubtotal := decimal.Zero
	wantTax := decimal.Zero

	for _, l := range lines {
		wantSubtotal = wantSubtotal.Add(l.Quantity.Mul(l.UnitPrice).Sub(l.DiscountAmount))
		wantTax = wantTax.Add(l.TaxAmount)
	}

	got, err := ledger.ComputeTotals(lines)
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(wantSubtotal), "subtotal: want %s, got %s", wantSubtotal, got.Subtotal)
	assert.True(t, got.TaxAmount.Equal(wantTax), "tax: want %s, got %s", wantTax, got.TaxAmount)
	assert.True(t, got.Total.Equal(wantSubtotal.Add(wantTax)), "total: want %s, got %s", wantSubtotal.Add(wantTax), got.Total)

	// Spot-check against the worked example: (225−15)+(1200−50)=1360, 12+80=92.
	assert.True(t, got.Subtotal.Equal(dec("1360")))
	assert.True(t, got.TaxAmount.Equal(dec("92")))
	assert.True(t, got.Total.Equal(dec("1452")))
}

func TestComputeTotals_Validation(t *testing.T) {
	type testCase struct {
		name       string
		lines      []ledger.Line
		wantLine   int
		wantField  string
		wantPrefix string
	}

	tests := []testCase{
		{
			name: "negative quantity",
			lines: []ledger.Line{
				line(1, "1", "10", "0", "0"),
				line(2, "-1", "10", "0", "0"),
			},
			wantLine:  2,
			wantField: "quantity",
		},
		{
			name: "negative unit price",
			lines: []ledger.Line{
				line(1, "1", "-0.01", "0", "0"),
			},
			wantLine:  1,
			wantField: "unit_price",
		},
		{
			name: "negative discount",
			lines: []ledger.Line{
				line(1, "1", "10", "-5", "0"),
			},
			wantLine:  1,
			wantField: "discount_amount",
		},
		{
			name: "negative tax",
			lines: []ledger.Line{
				line(1, "1", "10", "0", "-2"),
			},
			wantLine:  1,
			wantField: "tax_amount",
		},
		{
			name: "missing line number falls back to position",
			lines: []ledger.Line{
				{Quantity: dec("1"), UnitPrice: dec("10")},
				{Quantity: dec("-1"), UnitPrice: dec("10")},
			},
			wantLine:  2,
			wantField: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.ComputeTotals(tt.lines)
			require.Error(t, err)

			var verr *errs.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantLine, verr.LineNumber)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	lines := []ledger.Line{
		line(1, "2", "100.00", "10.00", "15.00"),
		line(2, "1", "50.00", "5.00", "20.00"),
	}

	first, err := ledger.ComputeTotals(lines)
	require.NoError(t, err)

	second, err := ledger.ComputeTotals(lines)
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
}

// Whenever Σ(qty×price) covers Σ(discount), the subtotal must not go negative.
func TestComputeTotals_SubtotalNonNegative(t *testing.T) {
	cases := [][]ledger.Line{
		{line(1, "1", "100", "100", "0")},
		{line(1, "3", "7.77", "23.31", "0")},
		{line(1, "2", "50", "99.99", "5"), line(2, "1", "0.01", "0", "0")},
		{line(1, "0", "0", "0", "0")},
	}

	for _, lines := range cases {
		gross := decimal.Zero
		discount := decimal.Zero

		for _, l := range lines {
			gross = gross.Add(l.Quantity.Mul(l.UnitPrice))
			discount = discount.Add(l.DiscountAmount)
		}

		require.True(t, gross.GreaterThanOrEqual(discount), "fixture must satisfy the premise")

		got, err := ledger.ComputeTotals(lines)
		require.NoError(t, err)
		assert.False(t, got.Subtotal.IsNegative(), "subtotal %s must not be negative", got.Subtotal)
	}
}

func TestTaxFromRate(t *testing.T) {
	type testCase struct {
		name      string
		quantity  string
		unitPrice string
		rate      string
		want      string
	}

	tests := []testCase{
		{name: "whole percent", quantity: "2", unitPrice: "100", rate: "10", want: "20"},
		{name: "sales tax rate", quantity: "2", unitPrice: "100", rate: "8.25", want: "16.5"},
		{name: "zero rate", quantity: "5", unitPrice: "19.99", rate: "0", want: "0"},
		{name: "fractional quantity", quantity: "1.5", unitPrice: "40", rate: "5", want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.TaxFromRate(dec(tt.quantity), dec(tt.unitPrice), dec(tt.rate))
			assert.True(t, got.Equal(dec(tt.want)), "want %s, got %s", tt.want, got)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "2.35", ledger.RoundMoney(dec("2.345")).String())
	assert.Equal(t, "2.34", ledger.RoundMoney(dec("2.344")).String())
	assert.Equal(t, "270", ledger.RoundMoney(dec("270")).String())
	assert.Equal(t, "16.5", ledger.RoundMoney(dec("16.5")).String())
}

func TestLineTotal(t *testing.T) {
	l := line(1, "2", "100.00", "10.00", "15.00")
	assert.True(t, l.Total().Equal(dec("205")), "got %s", l.Total())
}
