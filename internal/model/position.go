// Package model position model
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType kind of traded instrument
type AssetType string

// supported asset types
const (
	Stock    AssetType = "stock"
	Crypto   AssetType = "crypto"
	Currency AssetType = "currency"
)

// Valid reports whether t is a known asset type
func (t AssetType) Valid() bool {
	switch t {
	case Stock, Crypto, Currency:
		return true
	}
	return false
}

// Position model, one per user and symbol
type Position struct {
	User         string          `json:"user"`
	Symbol       string          `json:"symbol"`
	AssetType    AssetType       `json:"assetType"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Created      time.Time       `json:"created"`
	Updated      time.Time       `json:"updated"`
}

// TotalValue quantity at current price
func (p *Position) TotalValue() decimal.Decimal {
	return p.Quantity.Mul(p.CurrentPrice)
}

// Cost quantity at average price
func (p *Position) Cost() decimal.Decimal {
	return p.Quantity.Mul(p.AveragePrice)
}

// ProfitLoss unrealized profit or loss
func (p *Position) ProfitLoss() decimal.Decimal {
	return p.TotalValue().Sub(p.Cost())
}

// ProfitLossPercent unrealized profit or loss relative to cost, in percent
func (p *Position) ProfitLossPercent() decimal.Decimal {
	if p.AveragePrice.IsZero() {
		return decimal.Zero
	}
	return p.CurrentPrice.Sub(p.AveragePrice).Div(p.AveragePrice).Mul(decimal.NewFromInt(100))
}

// PortfolioSummary aggregated values of user positions
type PortfolioSummary struct {
	TotalValue                decimal.Decimal `json:"totalValue"`
	TotalCost                 decimal.Decimal `json:"totalCost"`
	TotalProfitLoss           decimal.Decimal `json:"totalProfitLoss"`
	TotalProfitLossPercentage decimal.Decimal `json:"totalProfitLossPercentage"`
	AssetCount                int             `json:"assetCount"`
	AvailableCapital          decimal.Decimal `json:"availableCapital"`
}
