package pricing

import (
	"errors"
	"fmt"
)

// ErrDuplicateRule indicates two rules share an identifier.
var ErrDuplicateRule = errors.New("duplicate pricing rule")

// RuleSet is an ordered, read-only collection of rules. It is safe to share
// between checkouts.
type RuleSet struct {
	rules  []Rule
	byCode map[string][]int
}

// NewRuleSet keeps rules in the order given.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{
		rules:  make([]Rule, 0, len(rules)),
		byCode: make(map[string][]int),
	}
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, r.ID)
		}
		seen[r.ID] = struct{}{}
		rs.byCode[r.Code] = append(rs.byCode[r.Code], len(rs.rules))
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// MustRuleSet behaves like NewRuleSet but panics on error.
func MustRuleSet(rules ...Rule) *RuleSet {
	rs, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// ForCode returns the rules targeting code in registration order.
func (rs *RuleSet) ForCode(code string) []Rule {
	if rs == nil {
		return nil
	}
	idx := rs.byCode[code]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Rule, 0, len(idx))
	for _, i := range idx {
		out = append(out, rs.rules[i])
	}
	return out
}

// Rules returns every rule in registration order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len reports the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}
