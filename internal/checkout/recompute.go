package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// Recompute derives the total for codes from scratch: every unit price minus,
// for every rule, the sum of its per-unit discounts over counts 1..n. It must
// agree with the incremental total a Checkout keeps.
func Recompute(cat catalog.Catalog, rules *pricing.RuleSet, codes []string) (decimal.Decimal, error) {
	counts := make(map[string]int)
	order := make([]string, 0)
	total := decimal.Zero
	for _, code := range codes {
		price, ok := cat.Price(code)
		if !ok {
			return decimal.Zero, fmt.Errorf("recompute %s: %w", code, catalog.ErrUnknownProduct)
		}
		if counts[code] == 0 {
			order = append(order, code)
		}
		counts[code]++
		total = total.Add(price)
	}
	for _, code := range order {
		price, _ := cat.Price(code)
		for _, rule := range rules.ForCode(code) {
			for n := 1; n <= counts[code]; n++ {
				total = total.Sub(rule.Discount(n, price))
			}
		}
	}
	return total, nil
}
