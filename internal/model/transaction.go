package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType kind of ledger entry
type TransactionType string

// transaction types
const (
	Buy      TransactionType = "buy"
	Sell     TransactionType = "sell"
	Deposit  TransactionType = "deposit"
	Withdraw TransactionType = "withdraw"
)

// CashSymbol symbol used by deposit and withdraw entries
const CashSymbol = "CASH"

// Side of a trade
type Side string

// trade sides
const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TransactionType ledger entry type for the side
func (s Side) TransactionType() TransactionType {
	if s == SideSell {
		return Sell
	}
	return Buy
}

// Transaction immutable ledger entry
type Transaction struct {
	ID          string          `json:"id"`
	User        string          `json:"user"`
	Symbol      string          `json:"symbol"`
	AssetType   AssetType       `json:"assetType"`
	Type        TransactionType `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Commission  decimal.Decimal `json:"commission"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamp   time.Time       `json:"timestamp"`
	Notes       string          `json:"notes"`
}

// TradeTotal total amount of a trade, commission added for buys and subtracted for sells
func TradeTotal(t TransactionType, quantity, price, commission decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(price)
	if t == Sell {
		return gross.Sub(commission)
	}
	return gross.Add(commission)
}

// TradeRequest settlement input
type TradeRequest struct {
	User       string          `json:"user"`
	Symbol     string          `json:"symbol"`
	AssetType  AssetType       `json:"assetType"`
	Side       Side            `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	Notes      string          `json:"notes"`
}

// OrderRequest market order priced by the oracle
type OrderRequest struct {
	User      string          `json:"user"`
	Symbol    string          `json:"symbol"`
	AssetType AssetType       `json:"assetType"`
	Side      Side            `json:"side"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// RealizedPnL realized result of closed quantities of one symbol
type RealizedPnL struct {
	Symbol string          `json:"symbol"`
	Gross  decimal.Decimal `json:"gross"`
	Fees   decimal.Decimal `json:"fees"`
	Net    decimal.Decimal `json:"net"`
}

// Drift difference between live position and transaction log replay
type Drift struct {
	User             string          `json:"user"`
	Symbol           string          `json:"symbol"`
	LiveQuantity     decimal.Decimal `json:"liveQuantity"`
	ReplayQuantity   decimal.Decimal `json:"replayQuantity"`
	LiveAveragePrice decimal.Decimal `json:"liveAveragePrice"`
	ReplayAvgPrice   decimal.Decimal `json:"replayAveragePrice"`
}
