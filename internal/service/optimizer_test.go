package service

import (
	"context"
	"math"
	"testing"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func history(symbol string, mean, vol float64) *model.History {
	returns := make([]float64, 20)
	for i := range returns {
		returns[i] = mean + vol*math.Sin(float64(i+len(symbol)))
	}
	return &model.History{Symbol: symbol, Returns: returns, Volatility: vol, AverageReturn: mean}
}

func allocationOf(t *testing.T, res *model.OptimizationResult, symbol string) model.AssetAllocation {
	t.Helper()
	for _, a := range res.Allocations {
		if a.Symbol == symbol {
			return a
		}
	}
	t.Fatalf("no allocation for %s", symbol)
	return model.AssetAllocation{}
}

func TestOptimizer_RiskParity(t *testing.T) {
	o := NewOptimizer(0.001, 0.0005)

	res, err := o.Optimize(&model.OptimizationRequest{
		Holdings: []model.Holding{
			{Symbol: "A", Quantity: 10, Price: 100},
			{Symbol: "B", Quantity: 10, Price: 100},
		},
		Method: model.RiskParity,
		History: map[string]*model.History{
			"A": history("A", 0.0004, 0.01),
			"B": history("B", 0.0004, 0.02),
		},
	})
	require.NoError(t, err)

	a, b := allocationOf(t, res, "A"), allocationOf(t, res, "B")
	require.InDelta(t, 2.0/3, a.TargetWeight, 1e-9)
	require.InDelta(t, 1.0/3, b.TargetWeight, 1e-9)
	require.Equal(t, model.ActionBuy, a.RecommendedAction)
	require.Equal(t, int64(3), a.Quantity)
	require.Equal(t, model.ActionSell, b.RecommendedAction)
	require.Equal(t, int64(3), b.Quantity)
	require.True(t, res.RebalancingNeeded)
	require.InDelta(t, 600*0.0015, res.EstimatedTradingCost, 1e-9)

	annual := math.Sqrt(252)
	wantRisk := math.Sqrt(4.0/9*math.Pow(0.01*annual, 2) + 1.0/9*math.Pow(0.02*annual, 2))
	require.InDelta(t, wantRisk, res.Risk, 1e-9)
	require.InDelta(t, 0.0004*252, res.ExpectedReturn, 1e-9)
	require.Len(t, res.Covariance, 2)
	require.InDelta(t, math.Pow(0.01*annual, 2), res.Covariance[0][0], 1e-9)
}

func TestOptimizer_HoldWhenOnTarget(t *testing.T) {
	o := NewOptimizer(0.001, 0.0005)

	res, err := o.Optimize(&model.OptimizationRequest{
		Holdings: []model.Holding{
			{Symbol: "A", Quantity: 5, Price: 200},
			{Symbol: "B", Quantity: 20, Price: 50},
		},
		Method: model.RiskParity,
		History: map[string]*model.History{
			"A": history("A", 0.0002, 0.015),
			"B": history("B", 0.0003, 0.015),
		},
	})
	require.NoError(t, err)
	for _, a := range res.Allocations {
		require.Equal(t, model.ActionHold, a.RecommendedAction)
		require.Zero(t, a.Quantity)
	}
	require.False(t, res.RebalancingNeeded)
	require.Zero(t, res.EstimatedTradingCost)
}

func TestOptimizer_ExcludesSymbolsWithoutHistory(t *testing.T) {
	o := NewOptimizer(0.001, 0.0005)

	res, err := o.Optimize(&model.OptimizationRequest{
		Holdings: []model.Holding{
			{Symbol: "A", Quantity: 10, Price: 100},
			{Symbol: "B", Quantity: 10, Price: 100},
			{Symbol: "C", Quantity: 20, Price: 100},
		},
		Method: model.RiskParity,
		History: map[string]*model.History{
			"A": history("A", 0.0004, 0.01),
			"B": history("B", 0.0004, 0.01),
			"C": {Symbol: "C"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"C"}, res.Excluded)

	c := allocationOf(t, res, "C")
	require.Equal(t, model.ActionHold, c.RecommendedAction)
	require.InDelta(t, 0.5, c.TargetWeight, 1e-9)

	var sum float64
	for _, a := range res.Allocations {
		sum += a.TargetWeight
	}
	require.InDelta(t, 1, sum, 1e-9)
	require.InDelta(t, 0.25, allocationOf(t, res, "A").TargetWeight, 1e-9)
}

func TestOptimizer_NoUsableHistory(t *testing.T) {
	o := NewOptimizer(0.001, 0.0005)

	_, err := o.Optimize(&model.OptimizationRequest{
		Holdings: []model.Holding{{Symbol: "A", Quantity: 1, Price: 10}},
	})
	require.ErrorIs(t, err, model.ErrDataUnavailable)
}

func TestOptimizer_InvalidRequest(t *testing.T) {
	o := NewOptimizer(0, 0)

	_, err := o.Optimize(&model.OptimizationRequest{
		Holdings: []model.Holding{{Symbol: "A", Quantity: 1, Price: 10}},
		Method:   "genetic",
	})
	require.ErrorIs(t, err, model.ErrInvalidMethod)

	_, err = o.Optimize(&model.OptimizationRequest{
		Holdings:      []model.Holding{{Symbol: "A", Quantity: 1, Price: 10}},
		RiskTolerance: "extreme",
	})
	require.ErrorIs(t, err, model.ErrInvalidTolerance)
	require.NotErrorIs(t, err, model.ErrInvalidMethod)

	_, err = o.Optimize(&model.OptimizationRequest{
		Holdings: []model.Holding{
			{Symbol: "A", Quantity: 1, Price: 10},
			{Symbol: "B", Quantity: 1, Price: 10},
			{Symbol: "A", Quantity: 2, Price: 10},
		},
		History: map[string]*model.History{
			"A": history("A", 0.001, 0.01),
			"B": history("B", 0.001, 0.02),
		},
	})
	require.ErrorIs(t, err, model.ErrInvalidRequest)

	_, err = o.Optimize(&model.OptimizationRequest{})
	require.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestOptimizer_MeanVarianceCapsWeights(t *testing.T) {
	o := NewOptimizer(0.001, 0.0005)
	req := &model.OptimizationRequest{
		RiskTolerance: model.RiskLow,
		History: map[string]*model.History{
			"A": history("A", 0.002, 0.01),
			"B": history("B", 0.0003, 0.01),
			"C": history("C", 0.0002, 0.01),
			"D": history("D", 0.0001, 0.01),
		},
	}
	for _, s := range []string{"A", "B", "C", "D"} {
		req.Holdings = append(req.Holdings, model.Holding{Symbol: s, Quantity: 1, Price: 100})
	}

	res, err := o.Optimize(req)
	require.NoError(t, err)
	require.Equal(t, model.MeanVariance, res.Method)
	require.InDelta(t, 0.08, res.TargetReturn, 1e-9)

	var sum float64
	for _, a := range res.Allocations {
		require.LessOrEqual(t, a.TargetWeight, 0.30+1e-9)
		sum += a.TargetWeight
	}
	require.InDelta(t, 1, sum, 1e-9)
	require.InDelta(t, 0.30, allocationOf(t, res, "A").TargetWeight, 1e-9)
	require.Greater(t, allocationOf(t, res, "B").TargetWeight, allocationOf(t, res, "D").TargetWeight)
}

func TestOptimizer_MeanVarianceNegativeReturnsFallBackToEqual(t *testing.T) {
	o := NewOptimizer(0, 0)

	res, err := o.Optimize(&model.OptimizationRequest{
		Holdings: []model.Holding{
			{Symbol: "A", Quantity: 3, Price: 100},
			{Symbol: "B", Quantity: 1, Price: 100},
		},
		History: map[string]*model.History{
			"A": history("A", -0.001, 0.01),
			"B": history("B", -0.002, 0.02),
		},
	})
	require.NoError(t, err)
	require.InDelta(t, 0.5, allocationOf(t, res, "A").TargetWeight, 1e-9)
	require.InDelta(t, 0.5, allocationOf(t, res, "B").TargetWeight, 1e-9)
	require.Equal(t, model.ActionSell, allocationOf(t, res, "A").RecommendedAction)
	require.Equal(t, int64(1), allocationOf(t, res, "A").Quantity)
}

func TestOptimizer_BlendedViews(t *testing.T) {
	o := NewOptimizer(0, 0)
	req := &model.OptimizationRequest{
		Holdings: []model.Holding{
			{Symbol: "A", Quantity: 1, Price: 100},
			{Symbol: "B", Quantity: 1, Price: 100},
			{Symbol: "C", Quantity: 1, Price: 100},
		},
		Method:        model.BlendedViews,
		RiskTolerance: model.RiskHigh,
		History: map[string]*model.History{
			"A": history("A", 0.0004, 0.01),
			"B": history("B", 0.0004, 0.01),
			"C": history("C", 0.0004, 0.01),
		},
		Views: map[string]model.View{
			"A": {Return: 0.30, Confidence: 1},
			"B": {Return: 0.30, Confidence: 0.5},
		},
	}

	res, err := o.Optimize(req)
	require.NoError(t, err)
	require.InDelta(t, 0.30, allocationOf(t, res, "A").ExpectedReturn, 1e-9)
	require.InDelta(t, (0.0004*252+0.30)/2, allocationOf(t, res, "B").ExpectedReturn, 1e-9)
	require.InDelta(t, 0.0004*252, allocationOf(t, res, "C").ExpectedReturn, 1e-9)
	require.InDelta(t, 0.5, allocationOf(t, res, "A").TargetWeight, 1e-9)
	require.Greater(t, allocationOf(t, res, "B").TargetWeight, allocationOf(t, res, "C").TargetWeight)
}

func TestPortfolio_OptimizeUser(t *testing.T) {
	store := newMemStore()
	prices := newFakePrices()
	p := newTestPortfolio(store, prices)
	ctx := context.Background()
	user := uuid.NewString()

	_, err := p.OptimizeUser(ctx, user, model.RiskParity, "", nil)
	require.ErrorIs(t, err, model.ErrInvalidRequest)

	for _, s := range []string{"SBER", "GAZP", "NEW"} {
		_, err = p.SettleTrade(ctx, trade(user, s, model.SideBuy, "10", "100", "0"))
		require.NoError(t, err)
	}
	prices.history["SBER"] = history("SBER", 0.0004, 0.01)
	prices.history["GAZP"] = history("GAZP", 0.0004, 0.02)

	res, err := p.OptimizeUser(ctx, user, model.RiskParity, "", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"NEW"}, res.Excluded)
	require.Len(t, res.Allocations, 3)
	require.InDelta(t, 2.0/3*2.0/3, allocationOf(t, res, "SBER").TargetWeight, 1e-9)
	require.Equal(t, model.ActionHold, allocationOf(t, res, "NEW").RecommendedAction)
}
