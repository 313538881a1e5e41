package dto

// WatchlistItemRequest is the payload for create and partial-update calls.
// Only ticker is required, and only on creation; every other field is
// optional and omitted when unset so PATCH semantics hold server-side.
type WatchlistItemRequest struct {
	Ticker                 string   `json:"ticker,omitempty" validate:"omitempty,max=12"`
	Exchange               *string  `json:"exchange,omitempty"`
	TargetPrice            *float64 `json:"targetPrice,omitempty" validate:"omitempty,gt=0"`
	TargetPfcf             *float64 `json:"targetPfcf,omitempty" validate:"omitempty,gt=0"`
	NotifyWhenBelowPrice   *bool    `json:"notifyWhenBelowPrice,omitempty"`
	Notes                  *string  `json:"notes,omitempty"`
	EstimatedFcfGrowthRate *float64 `json:"estimatedFcfGrowthRate,omitempty"`
	InvestmentHorizonYears *int     `json:"investmentHorizonYears,omitempty" validate:"omitempty,gt=0"`
	DiscountRate           *float64 `json:"discountRate,omitempty" validate:"omitempty,gt=0"`
}

// WatchlistItemResponse mirrors one tracked security plus its valuation
// snapshot. Server-computed numbers are opaque to the client; it never
// recomputes them locally.
type WatchlistItemResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId,omitempty"`
	Ticker   string  `json:"ticker"`
	Exchange *string `json:"exchange,omitempty"`

	// User-set fields
	TargetPrice          *float64 `json:"targetPrice,omitempty"`
	TargetPfcf           *float64 `json:"targetPfcf,omitempty"`
	NotifyWhenBelowPrice bool     `json:"notifyWhenBelowPrice"`
	Notes                *string  `json:"notes,omitempty"`

	// Market data
	CurrentPrice         *float64 `json:"currentPrice,omitempty"`
	DailyChangePercent   *float64 `json:"dailyChangePercent,omitempty"`
	MarketCapitalization *float64 `json:"marketCapitalization,omitempty"`
	WeekHigh52           *float64 `json:"weekHigh52,omitempty"`
	WeekLow52            *float64 `json:"weekLow52,omitempty"`
	WeekRange52Position  *float64 `json:"weekRange52Position,omitempty"`

	// Metrics
	FreeCashFlowPerShare  *float64 `json:"freeCashFlowPerShare,omitempty"`
	ActualPfcf            *float64 `json:"actualPfcf,omitempty"`
	PeAnnual              *float64 `json:"peAnnual,omitempty"`
	Beta                  *float64 `json:"beta,omitempty"`
	FocfCagr5Y            *float64 `json:"focfCagr5Y,omitempty"`
	DividendYield         *float64 `json:"dividendYield,omitempty"`
	DividendGrowthRate5Y  *float64 `json:"dividendGrowthRate5Y,omitempty"`
	DividendCoverageRatio *float64 `json:"dividendCoverageRatio,omitempty"`
	PayoutRatioFcf        *float64 `json:"payoutRatioFcf,omitempty"`
	ChowderRuleValue      *float64 `json:"chowderRuleValue,omitempty"`

	// Valuation
	FairPriceByPfcf          *float64 `json:"fairPriceByPfcf,omitempty"`
	DiscountToFairPrice      *float64 `json:"discountToFairPrice,omitempty"`
	DeviationFromTargetPrice *float64 `json:"deviationFromTargetPrice,omitempty"`
	Undervalued              *bool    `json:"undervalued,omitempty"`
	DcfFairValue             *float64 `json:"dcfFairValue,omitempty"`
	FcfYield                 *float64 `json:"fcfYield,omitempty"`
	MarginOfSafety           *float64 `json:"marginOfSafety,omitempty"`
	PaybackPeriod            *float64 `json:"paybackPeriod,omitempty"`
	EstimatedROI             *float64 `json:"estimatedROI,omitempty"`
	EstimatedIRR             *float64 `json:"estimatedIRR,omitempty"`

	// Valuation override parameters
	EstimatedFcfGrowthRate *float64 `json:"estimatedFcfGrowthRate,omitempty"`
	InvestmentHorizonYears *int     `json:"investmentHorizonYears,omitempty"`
	DiscountRate           *float64 `json:"discountRate,omitempty"`

	// Server-authoritative opaque timestamps
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// WatchlistPage is one page of the remote watchlist listing.
type WatchlistPage struct {
	Content          []WatchlistItemResponse `json:"content"`
	TotalElements    int64                   `json:"totalElements"`
	TotalPages       int                     `json:"totalPages"`
	Size             int                     `json:"size"`
	Number           int                     `json:"number"`
	NumberOfElements int                     `json:"numberOfElements"`
	First            bool                    `json:"first"`
	Last             bool                    `json:"last"`
	Empty            bool                    `json:"empty"`
}

// ListWatchlistParam carries paging and server-side sort settings for the
// remote list call.
type ListWatchlistParam struct {
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	SortBy    string `json:"sortBy"`
	Direction string `json:"direction" validate:"omitempty,oneof=ASC DESC"`
}

// DefaultListParam is the page every consumer asks for unless it has a
// reason not to.
func DefaultListParam() ListWatchlistParam {
	return ListWatchlistParam{
		Page:      0,
		Size:      20,
		SortBy:    SortByCreatedAt,
		Direction: DirectionDesc,
	}
}
