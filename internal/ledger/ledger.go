// Package ledger implements the transaction totals calculator: pure decimal
// arithmetic over an ordered sequence of line items. It never touches
// storage; callers persist the results.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
)

var hundred = decimal.NewFromInt(100)

// Line is the arithmetic view of a transaction line. LineNumber is
// positional and only used to name the line in validation errors.
type Line struct {
	LineNumber     int
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
}

// Total returns quantity × unit_price − discount + tax for a single line.
func (l Line) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice).Sub(l.DiscountAmount).Add(l.TaxAmount)
}

// Totals holds document-level amounts. Subtotal excludes tax.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals computes document totals over lines:
//
//	subtotal = Σ(quantity × unit_price − discount_amount)
//	tax      = Σ(tax_amount)
//	total    = subtotal + tax
//
// Amounts stay unrounded; rounding to 2 places happens at the persistence
// boundary, not during summation. Zero lines is valid and yields zero totals.
func ComputeTotals(lines []Line) (Totals, error) {
	subtotal := decimal.Zero
	tax := decimal.Zero

	for i, line := range lines {
		if err := validate(i, line); err != nil {
			return Totals{}, err
		}

		subtotal = subtotal.Add(line.Quantity.Mul(line.UnitPrice)).Sub(line.DiscountAmount)
		tax = tax.Add(line.TaxAmount)
	}

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}, nil
}

// TaxFromRate derives a line's tax amount from a percentage rate:
// quantity × unit_price × rate / 100. Used when a caller supplies tax_rate
// instead of an explicit tax_amount.
func TaxFromRate(quantity, unitPrice, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Mul(rate).Div(hundred)
}

// RoundMoney rounds to 2 fractional digits, half away from zero. Applied
// once, when an amount is persisted or serialized.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func validate(index int, line Line) error {
	number := line.LineNumber
	if number <= 0 {
		number = index + 1
	}

	switch {
	case line.Quantity.IsNegative():
		return errs.LineValidation(number, "quantity", "must not be negative")
	case line.UnitPrice.IsNegative():
		return errs.LineValidation(number, "unit_price", "must not be negative")
	case line.DiscountAmount.IsNegative():
		return errs.LineValidation(number, "discount_amount", "must not be negative")
	case line.TaxAmount.IsNegative():
		return errs.LineValidation(number, "tax_amount", "must not be negative")
	}

	return nil
}
