package model

import "fmt"

// OptimizationMethod weighting algorithm
type OptimizationMethod string

// optimization methods
const (
	MeanVariance OptimizationMethod = "mean_variance"
	BlendedViews OptimizationMethod = "blended_views"
	RiskParity   OptimizationMethod = "risk_parity"
)

// ParseOptimizationMethod validates method, empty string means mean-variance
func ParseOptimizationMethod(s string) (OptimizationMethod, error) {
	switch OptimizationMethod(s) {
	case MeanVariance, BlendedViews, RiskParity:
		return OptimizationMethod(s), nil
	case "":
		return MeanVariance, nil
	}
	return "", fmt.Errorf("method %q: %w", s, ErrInvalidMethod)
}

// Action rebalancing action
type Action string

// rebalancing actions
const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// History return series of a symbol, per period
type History struct {
	Symbol        string    `json:"symbol"`
	Returns       []float64 `json:"returns"`
	Volatility    float64   `json:"volatility"`
	AverageReturn float64   `json:"averageReturn"`
}

// View alternative return estimate with confidence in [0,1]
type View struct {
	Return     float64 `json:"return"`
	Confidence float64 `json:"confidence"`
}

// Holding optimizer input position
type Holding struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// OptimizationRequest optimizer input
type OptimizationRequest struct {
	Holdings      []Holding           `json:"holdings"`
	TotalValue    float64             `json:"totalValue"`
	RiskTolerance RiskTolerance       `json:"riskTolerance"`
	Method        OptimizationMethod  `json:"method"`
	History       map[string]*History `json:"history"`
	Views         map[string]View     `json:"views,omitempty"`
}

// AssetAllocation optimizer output per asset
type AssetAllocation struct {
	Symbol            string  `json:"symbol"`
	TargetWeight      float64 `json:"targetWeight"`
	CurrentWeight     float64 `json:"currentWeight"`
	RecommendedAction Action  `json:"recommendedAction"`
	Quantity          int64   `json:"quantity"`
	ExpectedReturn    float64 `json:"expectedReturn"`
	Risk              float64 `json:"risk"`
	SharpeRatio       float64 `json:"sharpeRatio"`
}

// OptimizationResult optimizer output
type OptimizationResult struct {
	Method               OptimizationMethod `json:"method"`
	Allocations          []AssetAllocation  `json:"allocations"`
	ExpectedReturn       float64            `json:"expectedReturn"`
	Risk                 float64            `json:"risk"`
	SharpeRatio          float64            `json:"sharpeRatio"`
	TargetReturn         float64            `json:"targetReturn"`
	RebalancingNeeded    bool               `json:"rebalancingNeeded"`
	EstimatedTradingCost float64            `json:"estimatedTradingCost"`
	Covariance           [][]float64        `json:"covariance,omitempty"`
	Excluded             []string           `json:"excluded,omitempty"`
}
