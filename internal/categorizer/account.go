// Package categorizer maps account names to account categories and payee
// text to transaction roles using configurable keyword rules.
package categorizer

import (
	"strings"

	"fjacquet/budget-metrics/internal/models"
)

// Classifier resolves the category of an account. Implementations must be
// total and deterministic.
type Classifier interface {
	Classify(account string) models.AccountCategory
}

// AccountRule assigns Category to any account whose name contains one of
// Keywords. Matching is case-sensitive.
type AccountRule struct {
	Category models.AccountCategory
	Keywords []string
}

// Matches reports whether name contains any keyword of the rule.
func (r AccountRule) Matches(name string) bool {
	for _, keyword := range r.Keywords {
		if keyword != "" && strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// AccountKeywords holds the literal substrings for each keyword-driven category.
type AccountKeywords struct {
	CreditCard []string
	Retirement []string
	Investment []string
}

// DefaultAccountKeywords returns the keyword sets used when nothing is configured.
func DefaultAccountKeywords() AccountKeywords {
	return AccountKeywords{
		CreditCard: []string{"CC", "Visa", "RedCard", "Bonvoy", "Sapphire"},
		Retirement: []string{"401(k)", "IRA"},
		Investment: []string{"Brokerage", "Equity"},
	}
}

// AccountClassifier evaluates its rules in order; the first match wins and
// unmatched accounts fall back to Saving.
type AccountClassifier struct {
	rules    []AccountRule
	fallback models.AccountCategory
}

// NewAccountClassifier builds the rule list credit card, then retirement, then
// investment, with Saving as fallback.
func NewAccountClassifier(keywords AccountKeywords) *AccountClassifier {
	return NewRuleClassifier([]AccountRule{
		{Category: models.CategoryCreditCard, Keywords: keywords.CreditCard},
		{Category: models.CategoryRetirement, Keywords: keywords.Retirement},
		{Category: models.CategoryInvestment, Keywords: keywords.Investment},
	}, models.CategorySaving)
}

// NewRuleClassifier builds a classifier from an explicit ordered rule list.
func NewRuleClassifier(rules []AccountRule, fallback models.AccountCategory) *AccountClassifier {
	copied := make([]AccountRule, len(rules))
	for i, rule := range rules {
		copied[i] = AccountRule{
			Category: rule.Category,
			Keywords: append([]string(nil), rule.Keywords...),
		}
	}
	return &AccountClassifier{rules: copied, fallback: fallback}
}

// Classify returns the category of the first matching rule, or the fallback.
func (c *AccountClassifier) Classify(account string) models.AccountCategory {
	for _, rule := range c.rules {
		if rule.Matches(account) {
			return rule.Category
		}
	}
	return c.fallback
}

// Rules returns a copy of the ordered rule list.
func (c *AccountClassifier) Rules() []AccountRule {
	return NewRuleClassifier(c.rules, c.fallback).rules
}

// StaticClassifier resolves categories from a fixed account -> category map,
// such as the category row of a persisted balance table. Unknown accounts get
// Fallback.
type StaticClassifier struct {
	Categories map[string]models.AccountCategory
	Fallback   models.AccountCategory
}

// Classify looks the account up in the map.
func (s StaticClassifier) Classify(account string) models.AccountCategory {
	if c, ok := s.Categories[account]; ok {
		return c
	}
	return s.Fallback
}
