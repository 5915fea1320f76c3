package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/catalog"
)

// Config is the wire form of a rule. Kind defaults to ID, so a rule keyed
// "XFORY" selects the XFORY formula without an explicit kind. DiscountPrice
// accepts a JSON number or a quoted decimal.
type Config struct {
	ID            string          `json:"id" validate:"required"`
	Kind          string          `json:"kind,omitempty"`
	Code          string          `json:"code" validate:"required"`
	X             int             `json:"x,omitempty" validate:"gte=0"`
	Y             int             `json:"y,omitempty" validate:"gte=0"`
	MinItems      int             `json:"minItems,omitempty" validate:"gte=0"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseConfigs decodes a JSON array of rule configs. Blank input yields no rules.
func ParseConfigs(data []byte) ([]Config, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	var configs []Config
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("decode pricing rules: %w", err)
	}
	return configs, nil
}

// Rule converts the config into a Rule after structural validation.
func (c Config) Rule() (Rule, error) {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return Rule{}, fmt.Errorf("%w: rule %q: field %s failed %q", ErrInvalidRule, c.ID, fe.Field(), fe.Tag())
		}
		return Rule{}, fmt.Errorf("%w: rule %q: %v", ErrInvalidRule, c.ID, err)
	}
	kind := c.Kind
	if strings.TrimSpace(kind) == "" {
		kind = c.ID
	}
	return Rule{
		ID:            c.ID,
		Kind:          ParseKind(kind),
		Code:          c.Code,
		X:             c.X,
		Y:             c.Y,
		MinItems:      c.MinItems,
		DiscountPrice: c.DiscountPrice,
	}, nil
}

// Build converts configs into a RuleSet. When strict is set every rule is
// validated against the catalog price of its target; otherwise misconfigured
// rules are kept and simply yield whatever their formula computes.
func Build(configs []Config, cat catalog.Catalog, strict bool) (*RuleSet, error) {
	rules := make([]Rule, 0, len(configs))
	for _, c := range configs {
		r, err := c.Rule()
		if err != nil {
			return nil, err
		}
		if strict {
			price, ok := cat.Price(r.Code)
			if !ok {
				return nil, fmt.Errorf("%w: rule %q targets %s: %w", ErrInvalidRule, r.ID, r.Code, catalog.ErrUnknownProduct)
			}
			if err := r.Validate(price, true); err != nil {
				return nil, err
			}
		}
		rules = append(rules, r)
	}
	return NewRuleSet(rules...)
}
