package model

import "fmt"

// RiskTolerance user appetite for risk
type RiskTolerance string

// risk tolerances
const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// ParseRiskTolerance validates tolerance, empty string means medium
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch RiskTolerance(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskTolerance(s), nil
	case "":
		return RiskMedium, nil
	}
	return "", fmt.Errorf("risk tolerance %q: %w", s, ErrInvalidTolerance)
}

// RiskLevel bucket of the overall risk score
type RiskLevel string

// risk levels
const (
	LevelLow    RiskLevel = "low"
	LevelMedium RiskLevel = "medium"
	LevelHigh   RiskLevel = "high"
)

// Severity of a warning
type Severity string

// severities
const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// warning types
const (
	WarningConcentration  = "concentration"
	WarningStopLossBreach = "stop_loss_breach"
	WarningPositionSize   = "position_size"
)

// recommendation types
const (
	RecommendDiversify           = "diversify"
	RecommendReduceConcentration = "reduce_concentration"
	RecommendSetStopLoss         = "set_stop_loss"
)

// RiskWarning single risk finding
type RiskWarning struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Symbol   string   `json:"symbol,omitempty"`
	Message  string   `json:"message"`
}

// Recommendation suggested action
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// StopLossRecommendation suggested stop level of a position
type StopLossRecommendation struct {
	Symbol              string    `json:"symbol"`
	AssetType           AssetType `json:"assetType"`
	CurrentPrice        float64   `json:"currentPrice"`
	AveragePrice        float64   `json:"averagePrice"`
	StopLossPercent     float64   `json:"stopLossPercent"`
	RecommendedStopLoss float64   `json:"recommendedStopLoss"`
	ProfitLossPercent   float64   `json:"profitLossPercent"`
	DrawdownPercent     float64   `json:"drawdownPercent"`
	Breached            bool      `json:"breached"`
}

// RiskAssessment result of assessing a user portfolio
type RiskAssessment struct {
	User                 string                   `json:"user"`
	Tolerance            RiskTolerance            `json:"tolerance"`
	TotalValue           float64                  `json:"totalValue"`
	DiversificationScore float64                  `json:"diversificationScore"`
	ConcentrationRisk    float64                  `json:"concentrationRisk"`
	MaxPositionSize      float64                  `json:"maxPositionSize"`
	RiskScore            float64                  `json:"riskScore"`
	RiskLevel            RiskLevel                `json:"riskLevel"`
	StopLosses           []StopLossRecommendation `json:"stopLosses"`
	Warnings             []RiskWarning            `json:"warnings"`
	Recommendations      []Recommendation         `json:"recommendations"`
}
