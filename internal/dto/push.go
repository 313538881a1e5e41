package dto

// PushEvent is the JSON payload delivered to the push webhook. All values
// arrive as strings, matching the data-message format of the push channel.
type PushEvent struct {
	Type              string `json:"type,omitempty"`
	Title             string `json:"title,omitempty"`
	Body              string `json:"body,omitempty"`
	Ticker            string `json:"ticker,omitempty"`
	Price             string `json:"price,omitempty"`
	ChangePercent     string `json:"changePercent,omitempty"`
	RegistrationToken string `json:"registrationToken,omitempty"`
}

// EventType resolves the discriminator. Payloads without an explicit type
// are inferred as price updates when ticker and price are both present.
func (e PushEvent) EventType() string {
	if e.Type != "" {
		return e.Type
	}
	if e.Ticker != "" && e.Price != "" {
		return PushTypePriceUpdate
	}
	return ""
}

// IsAlert reports whether the event should surface a user-visible
// notification rather than mutate the local store.
func (e PushEvent) IsAlert() bool {
	switch e.EventType() {
	case PushTypePriceAlert, PushTypeMarginAlert, PushTypeDailySummary:
		return true
	}
	return false
}
