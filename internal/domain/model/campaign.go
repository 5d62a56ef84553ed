package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus represents the lifecycle state of an advertising campaign.
type CampaignStatus string

const (
	CampaignStatusDraft    CampaignStatus = "draft"
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusFinished CampaignStatus = "finished"
)

// IsValid reports whether s is a known campaign status.
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused, CampaignStatusFinished:
		return true
	default:
		return false
	}
}

// Campaign is a marketplace advertising campaign tracked by the seller.
type Campaign struct {
	ID          int64
	UserID      int64
	Marketplace Marketplace
	ExternalID  string
	Name        string
	Status      CampaignStatus
	DailyBudget decimal.Decimal
	Spent       decimal.Decimal
	Impressions int64
	Clicks      int64
	StartedAt   time.Time // Zero when the campaign has not started.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CTR returns the click-through rate as a percentage, rounded to two places.
// Zero impressions yield zero.
func (c Campaign) CTR() decimal.Decimal {
	if c.Impressions == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(c.Clicks).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(c.Impressions)).
		Round(2)
}

// CPC returns the average cost per click, rounded to two places.
// Zero clicks yield zero.
func (c Campaign) CPC() decimal.Decimal {
	if c.Clicks == 0 {
		return decimal.Zero
	}
	return c.Spent.Div(decimal.NewFromInt(c.Clicks)).Round(2)
}
