package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleSetPreservesRegistrationOrder(t *testing.T) {
	rs, err := NewRuleSet(
		Rule{ID: "second", Kind: KindBulk, Code: "TSHIRT", MinItems: 3, DiscountPrice: dec("19")},
		Rule{ID: "first", Kind: KindXForY, Code: "VOUCHER", X: 2, Y: 1},
		Rule{ID: "third", Kind: KindXForY, Code: "TSHIRT", X: 5, Y: 4},
	)
	require.NoError(t, err)
	require.Equal(t, 3, rs.Len())

	tshirt := rs.ForCode("TSHIRT")
	require.Len(t, tshirt, 2)
	require.Equal(t, "second", tshirt[0].ID)
	require.Equal(t, "third", tshirt[1].ID)
	require.Nil(t, rs.ForCode("MUG"))
	require.Equal(t, "second", rs.Rules()[0].ID)
}

func TestRuleSetRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRuleSet(
		Rule{ID: "XFORY", Kind: KindXForY, Code: "VOUCHER", X: 2, Y: 1},
		Rule{ID: "XFORY", Kind: KindXForY, Code: "MUG", X: 3, Y: 2},
	)
	require.ErrorIs(t, err, ErrDuplicateRule)
}

func TestNilRuleSet(t *testing.T) {
	var rs *RuleSet
	require.Nil(t, rs.ForCode("VOUCHER"))
	require.Zero(t, rs.Len())
}
