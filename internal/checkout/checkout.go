package checkout

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/pricing"
	"github.com/noah-isme/toko-checkout/internal/receipt"
)

// Adjustment records one non-zero discount applied during a scan.
type Adjustment struct {
	RuleID string
	Kind   pricing.Kind
	Code   string
	Count  int
	Amount decimal.Decimal
}

// Checkout accumulates scanned products for a single session and keeps the
// discounted total current after every scan.
//
// The catalog and rule set may be shared between checkouts; the ledger is
// owned by this value and must not be used from more than one goroutine.
type Checkout struct {
	id      string
	catalog catalog.Catalog
	rules   *pricing.RuleSet
	ledger  *cart.Ledger
	applied []Adjustment
	logger  zerolog.Logger
	metrics *obs.CheckoutMetrics
}

// Option customises a Checkout.
type Option func(*Checkout)

// WithLogger sets the logger used for scan traces.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Checkout) {
		c.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *obs.CheckoutMetrics) Option {
	return func(c *Checkout) {
		c.metrics = m
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(c *Checkout) {
		if id != "" {
			c.id = id
		}
	}
}

// New creates an empty checkout. A nil rule set means no discounts.
func New(cat catalog.Catalog, rules *pricing.RuleSet, opts ...Option) *Checkout {
	c := &Checkout{
		id:      uuid.NewString(),
		catalog: cat,
		rules:   rules,
		ledger:  cart.NewLedger(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("checkout_id", c.id).Logger()
	return c
}

// ID returns the session identifier.
func (c *Checkout) ID() string {
	return c.id
}

// Scan adds one unit of code and applies every rule targeting it. An unknown
// code leaves the checkout untouched and returns an error wrapping
// catalog.ErrUnknownProduct.
func (c *Checkout) Scan(code string) (*Checkout, error) {
	price, ok := c.catalog.Price(code)
	if !ok {
		c.metrics.ObserveScan(obs.ScanResultUnknown)
		c.logger.Warn().Str("code", code).Msg("scan rejected")
		return c, fmt.Errorf("scan %s: %w", code, catalog.ErrUnknownProduct)
	}

	count := c.ledger.Add(code, price)
	c.metrics.ObserveScan(obs.ScanResultOK)
	c.logger.Debug().Str("code", code).Int("count", count).Str("price", price.String()).Msg("scanned")

	for _, rule := range c.rules.ForCode(code) {
		amount := rule.Discount(count, price)
		if amount.IsZero() {
			continue
		}
		c.ledger.Subtract(amount)
		c.applied = append(c.applied, Adjustment{
			RuleID: rule.ID,
			Kind:   rule.Kind,
			Code:   code,
			Count:  count,
			Amount: amount,
		})
		c.metrics.ObserveDiscount(rule.Kind.String(), amount.InexactFloat64())
		c.logger.Debug().
			Str("code", code).
			Str("rule_id", rule.ID).
			Str("kind", rule.Kind.String()).
			Int("count", count).
			Str("amount", amount.String()).
			Msg("discount applied")
	}
	return c, nil
}

// ScanAll scans codes in order and stops at the first failure. Codes scanned
// before the failure stay in the checkout.
func (c *Checkout) ScanAll(codes ...string) error {
	for _, code := range codes {
		if _, err := c.Scan(code); err != nil {
			return err
		}
	}
	return nil
}

// MustScan is ScanAll for fixed inputs; it panics on an unknown code.
func (c *Checkout) MustScan(codes ...string) *Checkout {
	if err := c.ScanAll(codes...); err != nil {
		panic(err)
	}
	return c
}

// Total returns the discounted total of everything scanned so far.
func (c *Checkout) Total() decimal.Decimal {
	return c.ledger.Total()
}

// Summary returns the subtotal, discount and total.
func (c *Checkout) Summary() cart.Summary {
	return c.ledger.Summary()
}

// Items returns the scanned codes in scan order.
func (c *Checkout) Items() []string {
	return c.ledger.Items()
}

// Applied returns the discounts applied so far in the order they were applied.
func (c *Checkout) Applied() []Adjustment {
	out := make([]Adjustment, len(c.applied))
	copy(out, c.applied)
	return out
}

// Receipt returns a printable snapshot of the checkout.
func (c *Checkout) Receipt() receipt.Ticket {
	return receipt.Ticket{Items: c.Items(), Total: c.Total()}
}
