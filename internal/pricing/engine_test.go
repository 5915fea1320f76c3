package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestXForYDiscountsCompletedGroups(t *testing.T) {
	rule := Rule{ID: "XFORY", Kind: KindXForY, Code: "VOUCHER", X: 2, Y: 1}
	price := dec("5.00")

	require.True(t, rule.Discount(0, price).IsZero())
	require.True(t, rule.Discount(1, price).IsZero())
	require.True(t, rule.Discount(2, price).Equal(dec("5.00")))
	require.True(t, rule.Discount(3, price).IsZero())
	require.True(t, rule.Discount(4, price).Equal(dec("5.00")))
}

func TestXForYGroupsAccumulate(t *testing.T) {
	rule := Rule{Kind: KindXForY, Code: "A", X: 3, Y: 2}
	price := dec("4.00")
	once := price.Mul(decimal.NewFromInt(int64(rule.X - rule.Y)))

	total := decimal.Zero
	for n := 1; n <= 2*rule.X; n++ {
		total = total.Add(rule.Discount(n, price))
		if n == rule.X {
			require.True(t, total.Equal(once))
		}
	}
	require.True(t, total.Equal(once.Mul(decimal.NewFromInt(2))))
}

func TestXForYZeroGroupSizeIsInert(t *testing.T) {
	rule := Rule{Kind: KindXForY, Code: "A", X: 0, Y: 1}
	require.True(t, rule.Discount(3, dec("1")).IsZero())
}

func TestBulkDiscount(t *testing.T) {
	rule := Rule{ID: "BULK", Kind: KindBulk, Code: "TSHIRT", MinItems: 3, DiscountPrice: dec("19.00")}
	price := dec("20.00")

	require.True(t, rule.Discount(1, price).IsZero())
	require.True(t, rule.Discount(2, price).IsZero())
	require.True(t, rule.Discount(3, price).Equal(dec("3.00")))
	require.True(t, rule.Discount(4, price).Equal(dec("1.00")))
	require.True(t, rule.Discount(10, price).Equal(dec("1.00")))
}

func TestBulkChargesDiscountPriceBeyondThreshold(t *testing.T) {
	rule := Rule{Kind: KindBulk, Code: "TSHIRT", MinItems: 3, DiscountPrice: dec("19.00")}
	price := dec("20.00")

	var prev decimal.Decimal
	charged := decimal.Zero
	for n := 1; n <= 8; n++ {
		charged = charged.Add(price).Sub(rule.Discount(n, price))
		discounted := price.Mul(decimal.NewFromInt(int64(n))).Sub(charged)
		require.True(t, discounted.GreaterThanOrEqual(prev), "discount shrank at n=%d", n)
		prev = discounted
		if n >= rule.MinItems {
			require.True(t, charged.Equal(dec("19.00").Mul(decimal.NewFromInt(int64(n)))))
		}
	}
}

func TestUnknownKindIsInert(t *testing.T) {
	rule := Rule{ID: "HALFPRICE", Kind: ParseKind("HALFPRICE"), Code: "MUG", X: 2, Y: 1}
	require.Equal(t, KindUnknown, rule.Kind)
	require.True(t, rule.Discount(2, dec("7.50")).IsZero())
}

func TestParseKind(t *testing.T) {
	require.Equal(t, KindXForY, ParseKind("xfory"))
	require.Equal(t, KindBulk, ParseKind(" BULK "))
	require.Equal(t, KindUnknown, ParseKind(""))
	require.Equal(t, "XFORY", KindXForY.String())
	require.Equal(t, "default", KindUnknown.String())
}

func TestValidate(t *testing.T) {
	price := dec("20.00")
	cases := []struct {
		name   string
		rule   Rule
		strict bool
		ok     bool
	}{
		{"xfory ok", Rule{ID: "a", Kind: KindXForY, Code: "A", X: 2, Y: 1}, false, true},
		{"xfory zero x", Rule{ID: "a", Kind: KindXForY, Code: "A", X: 0, Y: 0}, false, false},
		{"xfory y above x", Rule{ID: "a", Kind: KindXForY, Code: "A", X: 2, Y: 3}, false, false},
		{"bulk ok", Rule{ID: "b", Kind: KindBulk, Code: "A", MinItems: 3, DiscountPrice: dec("19")}, false, true},
		{"bulk above unit price", Rule{ID: "b", Kind: KindBulk, Code: "A", MinItems: 3, DiscountPrice: dec("21")}, false, false},
		{"bulk negative price", Rule{ID: "b", Kind: KindBulk, Code: "A", MinItems: 3, DiscountPrice: dec("-1")}, false, false},
		{"bulk zero threshold", Rule{ID: "b", Kind: KindBulk, Code: "A", DiscountPrice: dec("19")}, false, false},
		{"missing code", Rule{ID: "c", Kind: KindXForY, X: 2, Y: 1}, false, false},
		{"unknown lenient", Rule{ID: "d", Code: "A"}, false, true},
		{"unknown strict", Rule{ID: "d", Code: "A"}, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate(price, tc.strict)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}
