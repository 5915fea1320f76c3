// Package receipt renders finished checkouts for people. Currency and locale
// handling live here so the pricing packages stay locale-free.
package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Ticket is the printable snapshot of a finished checkout.
type Ticket struct {
	Items []string
	Total decimal.Decimal
}

// Printer formats tickets for a language and currency.
type Printer struct {
	lang language.Tag
	unit currency.Unit
}

// NewPrinter parses a BCP 47 language tag and an ISO 4217 currency code.
// Blank values default to English and EUR.
func NewPrinter(lang, cur string) (*Printer, error) {
	if strings.TrimSpace(lang) == "" {
		lang = "en"
	}
	if strings.TrimSpace(cur) == "" {
		cur = "EUR"
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse receipt language: %w", err)
	}
	unit, err := currency.ParseISO(cur)
	if err != nil {
		return nil, fmt.Errorf("parse receipt currency: %w", err)
	}
	return &Printer{lang: tag, unit: unit}, nil
}

// FormatAmount renders an amount with the printer's currency symbol and locale.
func (p *Printer) FormatAmount(amount decimal.Decimal) string {
	mp := message.NewPrinter(p.lang)
	return mp.Sprint(currency.Symbol(p.unit.Amount(amount.Round(2).InexactFloat64())))
}

// Print writes the ticket as two lines: the scanned items and the total.
func (p *Printer) Print(w io.Writer, t Ticket) error {
	if _, err := fmt.Fprintf(w, "Items: %s\n", strings.Join(t.Items, ", ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", p.FormatAmount(t.Total))
	return err
}
