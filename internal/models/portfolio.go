package models

import "time"

type Holding struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	AvgPrice  float64   `json:"avgPrice"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HoldingValue is a holding joined with its live quote. QuotedPrice is zero
// and Quoted false when the symbol failed aggregation.
type HoldingValue struct {
	Holding
	Quoted        bool    `json:"quoted"`
	QuotedPrice   float64 `json:"quotedPrice"`
	Invested      float64 `json:"invested"`
	CurrentValue  float64 `json:"currentValue"`
	ProfitLoss    float64 `json:"profitLoss"`
	ProfitLossPct float64 `json:"profitLossPct"`
}
