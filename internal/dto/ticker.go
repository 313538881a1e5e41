package dto

// TickerSearchResult is one hit from the fuzzy search or exact lookup
// endpoints.
type TickerSearchResult struct {
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	Type        *string `json:"type,omitempty"`
	Exchange    *string `json:"exchange,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	Figi        *string `json:"figi,omitempty"`
}
