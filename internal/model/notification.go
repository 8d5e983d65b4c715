// Package model notification model
package model

// Notification fired by a stop-loss listener when price falls to the stop level
type Notification struct {
	User     string  `json:"user"`
	Symbol   string  `json:"symbol"`
	StopLoss float64 `json:"stopLoss"`
	Price    float64 `json:"price"`
	// Generation of the listener that fired, a re-armed listener gets a new one
	Generation uint64 `json:"generation"`
}

// Price last known price of a symbol
type Price struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}
