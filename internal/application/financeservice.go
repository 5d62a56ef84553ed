package application

import (
	"context"
	"fmt"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// MarketplaceTotals is the finance aggregate for one marketplace.
type MarketplaceTotals struct {
	Marketplace model.Marketplace
	Totals      model.FinanceTotals
}

// FinanceSummary is the income and expense breakdown over a period.
type FinanceSummary struct {
	From          time.Time
	To            time.Time
	Total         model.FinanceTotals
	ByMarketplace []MarketplaceTotals
}

// FinanceService aggregates finance records into summaries.
type FinanceService struct {
	records driven.FinanceStore
}

// NewFinanceService creates a new FinanceService with the required dependencies.
func NewFinanceService(records driven.FinanceStore) *FinanceService {
	return &FinanceService{records: records}
}

// Summary totals the user's records with from <= occurred_at < to. Zero bounds
// are open. Marketplaces without records in the period are omitted.
func (s *FinanceService) Summary(ctx context.Context, userID int64, from, to time.Time) (FinanceSummary, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return FinanceSummary{}, fmt.Errorf("%w: from must be before to", model.ErrInvalidPeriod)
	}

	records, err := s.records.List(ctx, userID, model.FinanceFilter{From: from, To: to})
	if err != nil {
		return FinanceSummary{}, fmt.Errorf("list finance records: %w", err)
	}

	summary := FinanceSummary{From: from, To: to}
	perMarketplace := make(map[model.Marketplace]*model.FinanceTotals)
	for _, rec := range records {
		summary.Total.Add(rec)

		totals, ok := perMarketplace[rec.Marketplace]
		if !ok {
			totals = &model.FinanceTotals{}
			perMarketplace[rec.Marketplace] = totals
		}
		totals.Add(rec)
	}

	summary.ByMarketplace = make([]MarketplaceTotals, 0, len(perMarketplace))
	for _, m := range model.Marketplaces {
		if totals, ok := perMarketplace[m]; ok {
			summary.ByMarketplace = append(summary.ByMarketplace, MarketplaceTotals{Marketplace: m, Totals: *totals})
		}
	}

	return summary, nil
}
