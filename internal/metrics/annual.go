// Package metrics derives year-level financial health indicators from
// year-end category totals and annual income.
package metrics

import (
	"sort"

	"fjacquet/budget-metrics/internal/aggregate"
	"fjacquet/budget-metrics/internal/logging"

	"github.com/shopspring/decimal"
)

// Annual is the metrics record of one calendar year.
type Annual struct {
	Year int

	CreditCardTotal decimal.Decimal
	TotalDebt       decimal.Decimal
	TotalLiquid     decimal.Decimal
	TotalInvestment decimal.Decimal
	TotalRetirement decimal.Decimal
	Income          decimal.Decimal

	DebtRatio              Ratio
	LiquidityRatio         Ratio
	NetWorth               decimal.Decimal
	RetirementSavingsRatio Ratio
	AnnualSavingsRatio     Ratio

	// Deltas against the previous year, zero when it is absent.
	NetWorthChange   decimal.Decimal
	RetirementChange decimal.Decimal
}

// Series is the ascending sequence of annual records with keyed lookup.
type Series struct {
	records []Annual
	byYear  map[int]int
}

func newSeries(records []Annual) *Series {
	s := &Series{records: records, byYear: make(map[int]int, len(records))}
	for i, r := range records {
		s.byYear[r.Year] = i
	}
	return s
}

// Records returns the records ascending by year.
func (s *Series) Records() []Annual {
	return append([]Annual(nil), s.records...)
}

// Len returns the number of years.
func (s *Series) Len() int { return len(s.records) }

// Get returns the record of year.
func (s *Series) Get(year int) (Annual, bool) {
	i, ok := s.byYear[year]
	if !ok {
		return Annual{}, false
	}
	return s.records[i], true
}

// Previous returns the record of year-1, if present.
func (s *Series) Previous(year int) (Annual, bool) {
	return s.Get(year - 1)
}

// Engine computes annual metrics.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates an annual metrics engine.
func NewEngine(logger logging.Logger) *Engine {
	return &Engine{logger: logger}
}

// Compute produces one record per December snapshot, ascending by year.
// Missing income counts as zero.
func (e *Engine) Compute(december []aggregate.Snapshot, income map[int]decimal.Decimal) *Series {
	snaps := append([]aggregate.Snapshot(nil), december...)
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Month.Before(snaps[j].Month) })

	base := make([]Annual, 0, len(snaps))
	for _, snap := range snaps {
		base = append(base, yearEnd(snap, income[snap.Month.Year]))
	}
	prior := newSeries(base)

	records := make([]Annual, len(base))
	for i, rec := range base {
		prev, ok := prior.Previous(rec.Year)
		if ok {
			rec.RetirementChange = rec.TotalRetirement.Sub(prev.TotalRetirement)
			rec.NetWorthChange = rec.NetWorth.Sub(prev.NetWorth)
			rec.RetirementSavingsRatio = divide(rec.RetirementChange, rec.Income, NewRatio(decimal.Zero))
		}
		records[i] = rec

		e.logger.Debug("Computed annual metrics",
			logging.Field{Key: logging.FieldYear, Value: rec.Year},
			logging.Field{Key: "net_worth", Value: rec.NetWorth.StringFixed(2)},
			logging.Field{Key: "has_previous", Value: ok})
	}

	e.logger.Info("Computed annual metrics", logging.Field{Key: logging.FieldCount, Value: len(records)})
	return newSeries(records)
}

func yearEnd(snap aggregate.Snapshot, income decimal.Decimal) Annual {
	debt := snap.CreditCard.Abs()
	assets := snap.Saving.Add(snap.Investment).Add(snap.Retirement)
	zero := NewRatio(decimal.Zero)

	return Annual{
		Year:                   snap.Month.Year,
		CreditCardTotal:        snap.CreditCard,
		TotalDebt:              debt,
		TotalLiquid:            snap.Saving,
		TotalInvestment:        snap.Investment,
		TotalRetirement:        snap.Retirement,
		Income:                 income,
		DebtRatio:              divide(debt, assets, zero),
		LiquidityRatio:         divide(snap.Saving, debt, Infinity),
		NetWorth:               assets.Sub(debt),
		RetirementSavingsRatio: zero,
		AnnualSavingsRatio:     divide(snap.Investment.Add(snap.Retirement), income, zero),
		NetWorthChange:         decimal.Zero,
		RetirementChange:       decimal.Zero,
	}
}
