package model

import "divtracker/internal/dto"

// WatchlistItem is the local mirror row for one tracked security. The id is
// server-assigned and immutable; the row is a best-effort copy of the last
// remote state this client saw.
type WatchlistItem struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	UserID   string  `json:"user_id"`
	Ticker   string  `gorm:"not null;index" json:"ticker"`
	Exchange *string `json:"exchange"`

	TargetPrice          *float64 `json:"target_price"`
	TargetPfcf           *float64 `json:"target_pfcf"`
	NotifyWhenBelowPrice bool     `gorm:"not null" json:"notify_when_below_price"`
	Notes                *string  `json:"notes"`

	CurrentPrice         *float64 `json:"current_price"`
	DailyChangePercent   *float64 `json:"daily_change_percent"`
	MarketCapitalization *float64 `json:"market_capitalization"`

	// Explicit column names where gorm's naming strategy drops the
	// underscore before trailing digits.
	WeekHigh52          *float64 `gorm:"column:week_high_52" json:"week_high_52"`
	WeekLow52           *float64 `gorm:"column:week_low_52" json:"week_low_52"`
	WeekRange52Position *float64 `gorm:"column:week_range_52_position" json:"week_range_52_position"`

	FreeCashFlowPerShare  *float64 `json:"free_cash_flow_per_share"`
	ActualPfcf            *float64 `json:"actual_pfcf"`
	PeAnnual              *float64 `json:"pe_annual"`
	Beta                  *float64 `json:"beta"`
	FocfCagr5Y            *float64 `gorm:"column:focf_cagr_5y" json:"focf_cagr_5y"`
	DividendYield         *float64 `json:"dividend_yield"`
	DividendGrowthRate5Y  *float64 `gorm:"column:dividend_growth_rate_5y" json:"dividend_growth_rate_5y"`
	DividendCoverageRatio *float64 `json:"dividend_coverage_ratio"`
	PayoutRatioFcf        *float64 `json:"payout_ratio_fcf"`
	ChowderRuleValue      *float64 `json:"chowder_rule_value"`

	FairPriceByPfcf          *float64 `json:"fair_price_by_pfcf"`
	DiscountToFairPrice      *float64 `json:"discount_to_fair_price"`
	DeviationFromTargetPrice *float64 `json:"deviation_from_target_price"`
	Undervalued              *bool    `json:"undervalued"`
	DcfFairValue             *float64 `json:"dcf_fair_value"`
	FcfYield                 *float64 `json:"fcf_yield"`
	MarginOfSafety           *float64 `json:"margin_of_safety"`
	PaybackPeriod            *float64 `json:"payback_period"`
	EstimatedROI             *float64 `json:"estimated_roi"`
	EstimatedIRR             *float64 `json:"estimated_irr"`

	EstimatedFcfGrowthRate *float64 `json:"estimated_fcf_growth_rate"`
	InvestmentHorizonYears *int     `json:"investment_horizon_years"`
	DiscountRate           *float64 `json:"discount_rate"`

	// Opaque server timestamps, stored as received.
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}

func (m WatchlistItem) ToResponse() dto.WatchlistItemResponse {
	return dto.WatchlistItemResponse{
		ID:                       m.ID,
		UserID:                   m.UserID,
		Ticker:                   m.Ticker,
		Exchange:                 m.Exchange,
		TargetPrice:              m.TargetPrice,
		TargetPfcf:               m.TargetPfcf,
		NotifyWhenBelowPrice:     m.NotifyWhenBelowPrice,
		Notes:                    m.Notes,
		CurrentPrice:             m.CurrentPrice,
		DailyChangePercent:       m.DailyChangePercent,
		MarketCapitalization:     m.MarketCapitalization,
		WeekHigh52:               m.WeekHigh52,
		WeekLow52:                m.WeekLow52,
		WeekRange52Position:      m.WeekRange52Position,
		FreeCashFlowPerShare:     m.FreeCashFlowPerShare,
		ActualPfcf:               m.ActualPfcf,
		PeAnnual:                 m.PeAnnual,
		Beta:                     m.Beta,
		FocfCagr5Y:               m.FocfCagr5Y,
		DividendYield:            m.DividendYield,
		DividendGrowthRate5Y:     m.DividendGrowthRate5Y,
		DividendCoverageRatio:    m.DividendCoverageRatio,
		PayoutRatioFcf:           m.PayoutRatioFcf,
		ChowderRuleValue:         m.ChowderRuleValue,
		FairPriceByPfcf:          m.FairPriceByPfcf,
		DiscountToFairPrice:      m.DiscountToFairPrice,
		DeviationFromTargetPrice: m.DeviationFromTargetPrice,
		Undervalued:              m.Undervalued,
		DcfFairValue:             m.DcfFairValue,
		FcfYield:                 m.FcfYield,
		MarginOfSafety:           m.MarginOfSafety,
		PaybackPeriod:            m.PaybackPeriod,
		EstimatedROI:             m.EstimatedROI,
		EstimatedIRR:             m.EstimatedIRR,
		EstimatedFcfGrowthRate:   m.EstimatedFcfGrowthRate,
		InvestmentHorizonYears:   m.InvestmentHorizonYears,
		DiscountRate:             m.DiscountRate,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func FromResponse(r dto.WatchlistItemResponse) WatchlistItem {
	return WatchlistItem{
		ID:                       r.ID,
		UserID:                   r.UserID,
		Ticker:                   r.Ticker,
		Exchange:                 r.Exchange,
		TargetPrice:              r.TargetPrice,
		TargetPfcf:               r.TargetPfcf,
		NotifyWhenBelowPrice:     r.NotifyWhenBelowPrice,
		Notes:                    r.Notes,
		CurrentPrice:             r.CurrentPrice,
		DailyChangePercent:       r.DailyChangePercent,
		MarketCapitalization:     r.MarketCapitalization,
		WeekHigh52:               r.WeekHigh52,
		WeekLow52:                r.WeekLow52,
		WeekRange52Position:      r.WeekRange52Position,
		FreeCashFlowPerShare:     r.FreeCashFlowPerShare,
		ActualPfcf:               r.ActualPfcf,
		PeAnnual:                 r.PeAnnual,
		Beta:                     r.Beta,
		FocfCagr5Y:               r.FocfCagr5Y,
		DividendYield:            r.DividendYield,
		DividendGrowthRate5Y:     r.DividendGrowthRate5Y,
		DividendCoverageRatio:    r.DividendCoverageRatio,
		PayoutRatioFcf:           r.PayoutRatioFcf,
		ChowderRuleValue:         r.ChowderRuleValue,
		FairPriceByPfcf:          r.FairPriceByPfcf,
		DiscountToFairPrice:      r.DiscountToFairPrice,
		DeviationFromTargetPrice: r.DeviationFromTargetPrice,
		Undervalued:              r.Undervalued,
		DcfFairValue:             r.DcfFairValue,
		FcfYield:                 r.FcfYield,
		MarginOfSafety:           r.MarginOfSafety,
		PaybackPeriod:            r.PaybackPeriod,
		EstimatedROI:             r.EstimatedROI,
		EstimatedIRR:             r.EstimatedIRR,
		EstimatedFcfGrowthRate:   r.EstimatedFcfGrowthRate,
		InvestmentHorizonYears:   r.InvestmentHorizonYears,
		DiscountRate:             r.DiscountRate,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}

func FromResponses(rs []dto.WatchlistItemResponse) []WatchlistItem {
	items := make([]WatchlistItem, 0, len(rs))
	for _, r := range rs {
		items = append(items, FromResponse(r))
	}
	return items
}

func ToResponses(ms []WatchlistItem) []dto.WatchlistItemResponse {
	rs := make([]dto.WatchlistItemResponse, 0, len(ms))
	for _, m := range ms {
		rs = append(rs, m.ToResponse())
	}
	return rs
}
