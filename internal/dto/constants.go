package dto

const (
	SortByCreatedAt = "createdAt"

	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// SortOption is the in-memory ordering applied by the list controller.
type SortOption string

const (
	SortMarginDesc  SortOption = "MARGIN_DESC"
	SortYieldDesc   SortOption = "YIELD_DESC"
	SortTickerAsc   SortOption = "TICKER_ASC"
	SortCreatedDesc SortOption = "CREATED_DESC"
)

// Push event types pushed by the backend.
const (
	PushTypePriceAlert   = "PRICE_ALERT"
	PushTypeMarginAlert  = "MARGIN_ALERT"
	PushTypeDailySummary = "DAILY_SUMMARY"
	PushTypePriceUpdate  = "PRICE_UPDATE"
	PushTypeTokenRefresh = "TOKEN_REFRESH"
)
