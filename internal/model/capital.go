package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalAccount cash capital of a user
type CapitalAccount struct {
	User           string          `json:"user"`
	InitialCapital decimal.Decimal `json:"initialCapital"`
	CurrentCapital decimal.Decimal `json:"currentCapital"`
	Created        time.Time       `json:"created"`
	Updated        time.Time       `json:"updated"`
}
