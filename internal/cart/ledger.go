package cart

import "github.com/shopspring/decimal"

// Summary aggregates the money components of a ledger.
type Summary struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Ledger is the append-only record of a single checkout session: scanned codes
// in scan order plus the running money totals. It is not safe for concurrent use.
type Ledger struct {
	codes    []string
	counts   map[string]int
	subtotal decimal.Decimal
	discount decimal.Decimal
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{counts: make(map[string]int)}
}

// Add appends code and accrues its unit price. It returns the count of code
// after the append.
func (l *Ledger) Add(code string, unitPrice decimal.Decimal) int {
	if l.counts == nil {
		l.counts = make(map[string]int)
	}
	l.codes = append(l.codes, code)
	l.counts[code]++
	l.subtotal = l.subtotal.Add(unitPrice)
	return l.counts[code]
}

// Subtract records a discount against the running total.
func (l *Ledger) Subtract(amount decimal.Decimal) {
	l.discount = l.discount.Add(amount)
}

// Count returns how many units of code have been scanned.
func (l *Ledger) Count(code string) int {
	return l.counts[code]
}

// Len reports the number of scanned units.
func (l *Ledger) Len() int {
	return len(l.codes)
}

// Items returns the scanned codes in scan order.
func (l *Ledger) Items() []string {
	out := make([]string, len(l.codes))
	copy(out, l.codes)
	return out
}

// Total is the subtotal minus every discount recorded so far.
func (l *Ledger) Total() decimal.Decimal {
	return l.subtotal.Sub(l.discount)
}

// Summary returns the current money breakdown.
func (l *Ledger) Summary() Summary {
	return Summary{
		Subtotal: l.subtotal,
		Discount: l.discount,
		Total:    l.Total(),
	}
}
