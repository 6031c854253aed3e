package model

// QuoteMetrics holds live quote metadata. Optional fields are nil when the
// provider did not report them.
type QuoteMetrics struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name,omitempty"`
	CurrentPrice *float64 `json:"current_price,omitempty"`
	ForwardEPS   *float64 `json:"forward_eps,omitempty"`
	ForwardPE    *float64 `json:"forward_pe,omitempty"`
}
