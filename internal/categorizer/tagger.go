package categorizer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/budget-metrics/internal/models"
)

// Role is a semantic tag derived from a transaction's payee.
type Role int

const (
	RoleIncome Role = iota
	RoleTransfer
	RoleDining
)

func (r Role) String() string {
	switch r {
	case RoleIncome:
		return "income"
	case RoleTransfer:
		return "transfer"
	case RoleDining:
		return "dining"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Roles is the set of roles carried by one transaction. It may be empty and
// may hold several roles at once.
type Roles uint8

func (rs Roles) with(r Role) Roles { return rs | 1<<uint(r) }

// Has reports whether r is in the set.
func (rs Roles) Has(r Role) bool { return rs&(1<<uint(r)) != 0 }

// IsEmpty reports whether no role is set.
func (rs Roles) IsEmpty() bool { return rs == 0 }

// List returns the roles in declaration order.
func (rs Roles) List() []Role {
	var out []Role
	for _, r := range []Role{RoleIncome, RoleTransfer, RoleDining} {
		if rs.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// TagRules configures the tagger. Income entries are regular expressions
// matched anywhere in the payee, dining entries are literal substrings and
// TransferPrefix must start the payee. All matching ignores case.
type TagRules struct {
	IncomePatterns []string
	DiningKeywords []string
	TransferPrefix string
}

// DefaultTagRules returns the payee rules used when nothing is configured.
func DefaultTagRules() TagRules {
	return TagRules{
		IncomePatterns: []string{
			"salary",
			"payroll",
			"direct deposit",
			"transfer : DD Equity Account",
			"Doordash Equity Payout",
		},
		DiningKeywords: []string{
			"doordash", "ubereats", "grubhub", "postmates", "restaurant",
			"cafe", "diner", "bar", "bistro", "food", "eatery", "steakhouse",
			"grill", "pizza", "sushi", "taco", "bbq",
		},
		TransferPrefix: "transfer",
	}
}

type roleRule struct {
	role    Role
	pattern *regexp.Regexp
}

// Tagger assigns roles to transactions by evaluating every rule against the payee.
type Tagger struct {
	rules []roleRule
}

// NewTagger compiles the rules into case-insensitive patterns.
func NewTagger(rules TagRules) (*Tagger, error) {
	var compiled []roleRule

	add := func(role Role, expr string) error {
		if expr == "" {
			return nil
		}
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return fmt.Errorf("compiling %s pattern: %w", role, err)
		}
		compiled = append(compiled, roleRule{role: role, pattern: re})
		return nil
	}

	income, err := patternAlternation(rules.IncomePatterns)
	if err != nil {
		return nil, err
	}
	if err := add(RoleIncome, income); err != nil {
		return nil, err
	}
	if prefix := strings.TrimSpace(rules.TransferPrefix); prefix != "" {
		if err := add(RoleTransfer, "^"+regexp.QuoteMeta(prefix)); err != nil {
			return nil, err
		}
	}
	if err := add(RoleDining, alternation(rules.DiningKeywords)); err != nil {
		return nil, err
	}

	return &Tagger{rules: compiled}, nil
}

// patternAlternation joins regular expressions into a single alternation,
// rejecting the first entry that does not compile on its own.
func patternAlternation(patterns []string) (string, error) {
	var parts []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if _, err := regexp.Compile(p); err != nil {
			return "", fmt.Errorf("compiling income pattern %q: %w", p, err)
		}
		parts = append(parts, "(?:"+p+")")
	}
	return strings.Join(parts, "|"), nil
}

// alternation joins quoted literals into a single regexp alternation.
// Empty entries are dropped; an empty result disables the role.
func alternation(literals []string) string {
	var parts []string
	for _, l := range literals {
		if l == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(l))
	}
	return strings.Join(parts, "|")
}

// TagPayee returns the roles matched by a payee string. An empty payee carries
// no roles.
func (t *Tagger) TagPayee(payee string) Roles {
	var roles Roles
	if payee == "" {
		return roles
	}
	for _, rule := range t.rules {
		if rule.pattern.MatchString(payee) {
			roles = roles.with(rule.role)
		}
	}
	return roles
}

// Tag returns the roles of a transaction.
func (t *Tagger) Tag(tx models.Transaction) Roles {
	return t.TagPayee(tx.Payee)
}

// IsExpense reports whether a transaction counts as spending: a negative
// amount that is not an internal transfer.
func IsExpense(tx models.Transaction, roles Roles) bool {
	return tx.Amount.IsNegative() && !roles.Has(RoleTransfer)
}

// TaggedTransaction pairs a transaction with its roles.
type TaggedTransaction struct {
	models.Transaction
	Roles Roles
}

// IsExpense reports whether the tagged transaction counts as spending.
func (t TaggedTransaction) IsExpense() bool {
	return IsExpense(t.Transaction, t.Roles)
}

// TagAll tags every transaction, preserving order.
func (t *Tagger) TagAll(txs []models.Transaction) []TaggedTransaction {
	out := make([]TaggedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = TaggedTransaction{Transaction: tx, Roles: t.Tag(tx)}
	}
	return out
}
