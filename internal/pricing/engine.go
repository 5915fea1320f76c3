package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidRule is returned when a rule's parameters cannot produce a sane discount.
var ErrInvalidRule = errors.New("invalid pricing rule")

// Kind selects the discount formula applied by a rule.
type Kind int

const (
	// KindUnknown is the inert fallback; it never discounts.
	KindUnknown Kind = iota
	// KindXForY charges every completed group of X units as if only Y were bought.
	KindXForY
	// KindBulk reprices every unit once MinItems units are in the cart.
	KindBulk
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindXForY:
		return "XFORY"
	case KindBulk:
		return "BULK"
	default:
		return "default"
	}
}

// ParseKind maps a configuration name to a Kind. Unrecognised names yield KindUnknown.
func ParseKind(name string) Kind {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "XFORY":
		return KindXForY
	case "BULK":
		return KindBulk
	default:
		return KindUnknown
	}
}

// Rule pairs a target product code with a discount formula and its parameters.
type Rule struct {
	ID   string
	Kind Kind
	Code string

	// XFORY parameters.
	X int
	Y int

	// BULK parameters.
	MinItems      int
	DiscountPrice decimal.Decimal
}

// Discount computes the amount to subtract right after a unit of the rule's code
// was added, given the post-scan count of that code and its unit price.
//
// Discounts are incremental: summing Discount over counts 1..n yields the total
// discount owed for n units.
func (r Rule) Discount(count int, unitPrice decimal.Decimal) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	switch r.Kind {
	case KindXForY:
		if r.X <= 0 || count%r.X != 0 {
			return decimal.Zero
		}
		return unitPrice.Mul(decimal.NewFromInt(int64(r.X - r.Y)))
	case KindBulk:
		diff := unitPrice.Sub(r.DiscountPrice)
		switch {
		case count == r.MinItems:
			return diff.Mul(decimal.NewFromInt(int64(r.MinItems)))
		case count > r.MinItems:
			return diff
		default:
			return decimal.Zero
		}
	default:
		return decimal.Zero
	}
}

// Validate checks the rule against the unit price of its target product.
// Unknown kinds are accepted unless strict is set.
func (r Rule) Validate(unitPrice decimal.Decimal, strict bool) error {
	if strings.TrimSpace(r.Code) == "" {
		return fmt.Errorf("%w: rule %q has no target code", ErrInvalidRule, r.ID)
	}
	switch r.Kind {
	case KindXForY:
		if r.X <= 0 {
			return fmt.Errorf("%w: rule %q: x must be positive, got %d", ErrInvalidRule, r.ID, r.X)
		}
		if r.Y < 0 || r.Y > r.X {
			return fmt.Errorf("%w: rule %q: y must be within [0, %d], got %d", ErrInvalidRule, r.ID, r.X, r.Y)
		}
	case KindBulk:
		if r.MinItems <= 0 {
			return fmt.Errorf("%w: rule %q: minItems must be positive, got %d", ErrInvalidRule, r.ID, r.MinItems)
		}
		if r.DiscountPrice.IsNegative() {
			return fmt.Errorf("%w: rule %q: negative discount price %s", ErrInvalidRule, r.ID, r.DiscountPrice)
		}
		if r.DiscountPrice.GreaterThan(unitPrice) {
			return fmt.Errorf("%w: rule %q: discount price %s exceeds unit price %s", ErrInvalidRule, r.ID, r.DiscountPrice, unitPrice)
		}
	default:
		if strict {
			return fmt.Errorf("%w: rule %q has no known kind", ErrInvalidRule, r.ID)
		}
	}
	return nil
}
