package service

import (
	"context"
	"fmt"
	"math"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/stats"
)

// RiskPolicy fixed thresholds of the risk assessor
type RiskPolicy struct {
	// StopLossPercent base stop distance by asset type
	StopLossPercent map[model.AssetType]float64
	// PositionMultiplier share of portfolio value a single position may take
	PositionMultiplier map[model.RiskTolerance]float64

	TargetPositions        float64
	TargetAssetTypes       float64
	DiversificationFloor   float64
	HighPriorityPositions  int
	ConcentrationWarning   float64
	ConcentrationCritical  float64
	StopLossAdjustment     float64
	ProfitTightenPercent   float64
	LossWidenPercent       float64
	BreachShare            float64
	MediumScore, HighScore float64
}

// DefaultRiskPolicy policy table
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		StopLossPercent: map[model.AssetType]float64{
			model.Stock:    10,
			model.Crypto:   15,
			model.Currency: 5,
		},
		PositionMultiplier: map[model.RiskTolerance]float64{
			model.RiskLow:    0.02,
			model.RiskMedium: 0.05,
			model.RiskHigh:   0.10,
		},
		TargetPositions:       7,
		TargetAssetTypes:      2,
		DiversificationFloor:  0.6,
		HighPriorityPositions: 3,
		ConcentrationWarning:  0.3,
		ConcentrationCritical: 0.5,
		StopLossAdjustment:    2,
		ProfitTightenPercent:  20,
		LossWidenPercent:      -10,
		BreachShare:           0.8,
		MediumScore:           30,
		HighScore:             60,
	}
}

// RiskAssessor pure analytics over a positions snapshot
type RiskAssessor struct {
	policy RiskPolicy
}

// NewRiskAssessor constructor
func NewRiskAssessor(policy RiskPolicy) *RiskAssessor {
	return &RiskAssessor{policy: policy}
}

// Diversification 0.6 share for position count, 0.4 share for distinct asset types
func (a *RiskAssessor) Diversification(positions []*model.Position) float64 {
	types := make(map[model.AssetType]struct{})
	for _, p := range positions {
		types[p.AssetType] = struct{}{}
	}
	count := math.Min(float64(len(positions))/a.policy.TargetPositions, 1)
	kinds := math.Min(float64(len(types))/a.policy.TargetAssetTypes, 1)
	return 0.6*count + 0.4*kinds
}

// Concentration share of the largest position in total value
func (a *RiskAssessor) Concentration(positions []*model.Position) float64 {
	var total, largest float64
	for _, p := range positions {
		v := p.TotalValue().InexactFloat64()
		total += v
		largest = math.Max(largest, v)
	}
	return stats.SafeDiv(largest, total)
}

// StopLoss stop level recommendation of a position
func (a *RiskAssessor) StopLoss(p *model.Position) model.StopLossRecommendation {
	current := p.CurrentPrice.InexactFloat64()
	avg := p.AveragePrice.InexactFloat64()
	plPercent := p.ProfitLossPercent().InexactFloat64()

	pct, ok := a.policy.StopLossPercent[p.AssetType]
	if !ok {
		pct = a.policy.StopLossPercent[model.Stock]
	}
	switch {
	case plPercent > a.policy.ProfitTightenPercent:
		pct -= a.policy.StopLossAdjustment
	case plPercent < a.policy.LossWidenPercent:
		pct += a.policy.StopLossAdjustment
	}

	var drawdown float64
	if avg > 0 && current < avg {
		drawdown = (avg - current) / avg * 100
	}
	return model.StopLossRecommendation{
		Symbol:              p.Symbol,
		AssetType:           p.AssetType,
		CurrentPrice:        current,
		AveragePrice:        avg,
		StopLossPercent:     pct,
		RecommendedStopLoss: current * (1 - pct/100),
		ProfitLossPercent:   plPercent,
		DrawdownPercent:     drawdown,
		Breached:            drawdown > a.policy.BreachShare*pct,
	}
}

// Assess build the full risk assessment of a positions snapshot
func (a *RiskAssessor) Assess(user string, positions []*model.Position, tolerance model.RiskTolerance) *model.RiskAssessment {
	res := &model.RiskAssessment{
		User:            user,
		Tolerance:       tolerance,
		RiskLevel:       model.LevelLow,
		StopLosses:      []model.StopLossRecommendation{},
		Warnings:        []model.RiskWarning{},
		Recommendations: []model.Recommendation{},
	}
	if len(positions) == 0 {
		res.Recommendations = append(res.Recommendations, model.Recommendation{
			Type:     model.RecommendDiversify,
			Priority: "high",
			Message:  "portfolio is empty, spread capital over several assets",
		})
		return res
	}

	for _, p := range positions {
		res.TotalValue += p.TotalValue().InexactFloat64()
	}
	res.DiversificationScore = a.Diversification(positions)
	res.ConcentrationRisk = a.Concentration(positions)
	res.MaxPositionSize = res.TotalValue * a.policy.PositionMultiplier[tolerance]

	if res.DiversificationScore < a.policy.DiversificationFloor {
		priority := "medium"
		if len(positions) < a.policy.HighPriorityPositions {
			priority = "high"
		}
		res.Recommendations = append(res.Recommendations, model.Recommendation{
			Type:     model.RecommendDiversify,
			Priority: priority,
			Message:  fmt.Sprintf("diversification score %.2f, add positions or asset types", res.DiversificationScore),
		})
	}

	if res.ConcentrationRisk > a.policy.ConcentrationWarning {
		severity := model.SeverityHigh
		if res.ConcentrationRisk > a.policy.ConcentrationCritical {
			severity = model.SeverityCritical
		}
		res.Warnings = append(res.Warnings, model.RiskWarning{
			Type:     model.WarningConcentration,
			Severity: severity,
			Message:  fmt.Sprintf("largest position holds %.0f%% of the portfolio", res.ConcentrationRisk*100),
		})
		res.Recommendations = append(res.Recommendations, model.Recommendation{
			Type:     model.RecommendReduceConcentration,
			Priority: "high",
			Message:  "reduce the largest position",
		})
	}

	for _, p := range positions {
		sl := a.StopLoss(p)
		res.StopLosses = append(res.StopLosses, sl)
		if sl.Breached {
			res.Warnings = append(res.Warnings, model.RiskWarning{
				Type:     model.WarningStopLossBreach,
				Severity: model.SeverityCritical,
				Symbol:   p.Symbol,
				Message: fmt.Sprintf("%s is %.1f%% below average price, stop distance %.1f%%",
					p.Symbol, sl.DrawdownPercent, sl.StopLossPercent),
			})
			res.Recommendations = append(res.Recommendations, model.Recommendation{
				Type:     model.RecommendSetStopLoss,
				Priority: "high",
				Message:  fmt.Sprintf("set stop-loss for %s at %.4f", p.Symbol, sl.RecommendedStopLoss),
			})
		}
		if value := p.TotalValue().InexactFloat64(); value > res.MaxPositionSize {
			res.Warnings = append(res.Warnings, model.RiskWarning{
				Type:     model.WarningPositionSize,
				Severity: model.SeverityMedium,
				Symbol:   p.Symbol,
				Message:  fmt.Sprintf("%s value %.2f exceeds max position size %.2f", p.Symbol, value, res.MaxPositionSize),
			})
		}
	}

	var critical int
	for _, w := range res.Warnings {
		if w.Severity == model.SeverityCritical {
			critical++
		}
	}
	res.RiskScore = math.Min(100,
		(1-res.DiversificationScore)*40+res.ConcentrationRisk*40+float64(critical)*20)
	switch {
	case res.RiskScore >= a.policy.HighScore:
		res.RiskLevel = model.LevelHigh
	case res.RiskScore >= a.policy.MediumScore:
		res.RiskLevel = model.LevelMedium
	}
	return res
}

// AssessRisk risk assessment of the current positions of user, empty tolerance means the configured default
func (p *Portfolio) AssessRisk(ctx context.Context, user string, tolerance model.RiskTolerance) (*model.RiskAssessment, error) {
	if tolerance == "" {
		tolerance = p.opts.RiskTolerance
	}
	tolerance, err := model.ParseRiskTolerance(string(tolerance))
	if err != nil {
		return nil, fmt.Errorf("portfolio - AssessRisk: %w", err)
	}

	key := riskCacheKey(user, tolerance)
	res := &model.RiskAssessment{}
	if p.cached(ctx, key, res) {
		return res, nil
	}

	positions, err := p.GetPositions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - AssessRisk: %w", err)
	}
	res = p.risk.Assess(user, positions, tolerance)
	p.store(ctx, key, res)
	return res, nil
}

// GetStopLossRecommendations stop levels for every open position of user
func (p *Portfolio) GetStopLossRecommendations(ctx context.Context, user string) ([]model.StopLossRecommendation, error) {
	positions, err := p.GetPositions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - GetStopLossRecommendations: %w", err)
	}
	recs := make([]model.StopLossRecommendation, len(positions))
	for i, pos := range positions {
		recs[i] = p.risk.StopLoss(pos)
	}
	return recs, nil
}
