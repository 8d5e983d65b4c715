package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/stats"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// holdThreshold weight difference below which no trade is recommended
const holdThreshold = 0.01

// targetReturn annual return the mean-variance heuristic aims for
var targetReturn = map[model.RiskTolerance]float64{
	model.RiskLow:    0.08,
	model.RiskMedium: 0.12,
	model.RiskHigh:   0.18,
}

// maxWeight single asset cap of the mean-variance heuristic
var maxWeight = map[model.RiskTolerance]float64{
	model.RiskLow:    0.30,
	model.RiskMedium: 0.40,
	model.RiskHigh:   0.50,
}

// Optimizer target weights and rebalancing plan. Mean-variance is a heuristic projection
// favoring high Sharpe assets, not a quadratic program; portfolio risk uses the covariance diagonal only.
type Optimizer struct {
	commissionRate float64
	slippageRate   float64
}

// NewOptimizer constructor
func NewOptimizer(commissionRate, slippageRate float64) *Optimizer {
	return &Optimizer{commissionRate: commissionRate, slippageRate: slippageRate}
}

type asset struct {
	holding model.Holding
	history *model.History
	ret     float64
	vol     float64
}

func (a *asset) sharpe() float64 {
	return stats.SafeDiv(a.ret, a.vol)
}

// Optimize compute target weights with the requested method
func (o *Optimizer) Optimize(req *model.OptimizationRequest) (*model.OptimizationResult, error) {
	method, err := model.ParseOptimizationMethod(string(req.Method))
	if err != nil {
		return nil, fmt.Errorf("optimizer - Optimize: %w", err)
	}
	tolerance, err := model.ParseRiskTolerance(string(req.RiskTolerance))
	if err != nil {
		return nil, fmt.Errorf("optimizer - Optimize: %w", err)
	}
	seen := make(map[string]struct{}, len(req.Holdings))
	for _, h := range req.Holdings {
		if _, ok := seen[h.Symbol]; ok {
			return nil, fmt.Errorf("optimizer - Optimize: holding %s listed twice: %w", h.Symbol, model.ErrInvalidRequest)
		}
		seen[h.Symbol] = struct{}{}
	}
	total := req.TotalValue
	if total <= 0 {
		for _, h := range req.Holdings {
			total += h.Quantity * h.Price
		}
	}
	if total <= 0 {
		return nil, fmt.Errorf("optimizer - Optimize: total value must be positive: %w", model.ErrInvalidRequest)
	}

	res := &model.OptimizationResult{Method: method, TargetReturn: targetReturn[tolerance]}
	var assets []*asset
	excludedWeight := 0.0
	for _, h := range req.Holdings {
		hist := req.History[h.Symbol]
		if hist == nil || hist.Volatility <= 0 || h.Price <= 0 {
			res.Excluded = append(res.Excluded, h.Symbol)
			excludedWeight += h.Quantity * h.Price / total
			continue
		}
		ret, vol := stats.Annualize(hist.AverageReturn, hist.Volatility)
		assets = append(assets, &asset{holding: h, history: hist, ret: ret, vol: vol})
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("optimizer - Optimize: no symbol has usable history: %w", model.ErrDataUnavailable)
	}

	if method == model.BlendedViews {
		blend(assets, req.Views)
	}

	vols := make([]float64, len(assets))
	for i, a := range assets {
		vols[i] = a.vol
	}
	res.Covariance = stats.Rows(stats.CovarianceMatrix(vols, func(i, j int) float64 {
		return stats.Correlation(assets[i].history.Returns, assets[j].history.Returns)
	}))

	var weights []float64
	if method == model.RiskParity {
		weights = riskParity(assets)
	} else {
		weights = meanVariance(assets, res.TargetReturn, maxWeight[tolerance])
	}

	// excluded symbols keep their weight, the rest is shared by the optimized ones
	investable := math.Max(0, 1-excludedWeight)
	targets := make(map[string]float64, len(assets))
	var variance float64
	for i, a := range assets {
		w := weights[i] * investable
		targets[a.holding.Symbol] = w
		res.ExpectedReturn += w * a.ret
		variance += w * w * a.vol * a.vol
	}
	res.Risk = math.Sqrt(variance)
	res.SharpeRatio = stats.SafeDiv(res.ExpectedReturn, res.Risk)

	byHolding := make(map[string]*asset, len(assets))
	for _, a := range assets {
		byHolding[a.holding.Symbol] = a
	}
	var traded float64
	for _, h := range req.Holdings {
		value := h.Quantity * h.Price
		alloc := model.AssetAllocation{
			Symbol:            h.Symbol,
			CurrentWeight:     value / total,
			TargetWeight:      value / total,
			RecommendedAction: model.ActionHold,
		}
		if a, ok := byHolding[h.Symbol]; ok {
			alloc.TargetWeight = targets[h.Symbol]
			alloc.ExpectedReturn = a.ret
			alloc.Risk = a.vol
			alloc.SharpeRatio = a.sharpe()

			diff := alloc.TargetWeight - alloc.CurrentWeight
			if math.Abs(diff) >= holdThreshold {
				qty := math.Round((alloc.TargetWeight*total - value) / h.Price)
				alloc.Quantity = int64(math.Abs(qty))
				if qty > 0 {
					alloc.RecommendedAction = model.ActionBuy
				} else if qty < 0 {
					alloc.RecommendedAction = model.ActionSell
				}
				traded += math.Abs(qty) * h.Price
			}
		}
		if alloc.RecommendedAction != model.ActionHold {
			res.RebalancingNeeded = true
		}
		res.Allocations = append(res.Allocations, alloc)
	}
	res.EstimatedTradingCost = traded * (o.commissionRate + o.slippageRate)
	return res, nil
}

// blend equilibrium returns with confidence weighted views
func blend(assets []*asset, views map[string]model.View) {
	for _, a := range assets {
		v, ok := views[a.holding.Symbol]
		if !ok {
			continue
		}
		conf := stats.Clamp(v.Confidence, 0, 1)
		a.ret = a.ret*(1-conf) + v.Return*conf
	}
}

// riskParity weights inversely proportional to volatility
func riskParity(assets []*asset) []float64 {
	inv := make([]float64, len(assets))
	for i, a := range assets {
		inv[i] = 1 / a.vol
	}
	return stats.Normalize(inv)
}

// meanVariance scores positive Sharpe ratios, boosted when the asset reaches the target return, then caps single weights
func meanVariance(assets []*asset, target, limit float64) []float64 {
	scores := make([]float64, len(assets))
	for i, a := range assets {
		s := math.Max(a.sharpe(), 0)
		if a.ret >= target {
			s *= 1.25
		} else {
			s *= 0.75
		}
		scores[i] = s
	}
	weights := stats.Normalize(scores)
	if weights == nil {
		weights = make([]float64, len(assets))
		for i := range weights {
			weights[i] = 1 / float64(len(assets))
		}
	}
	return capWeights(weights, limit)
}

// capWeights limits every weight to limit and hands the excess to the uncapped weights pro rata
func capWeights(weights []float64, limit float64) []float64 {
	n := len(weights)
	if limit*float64(n) < 1 {
		limit = 1 / float64(n)
	}
	capped := make([]bool, n)
	for iter := 0; iter < n; iter++ {
		var excess, free float64
		for i, w := range weights {
			if !capped[i] && w > limit {
				excess += w - limit
				weights[i] = limit
				capped[i] = true
			}
		}
		if excess <= 1e-12 {
			break
		}
		var open int
		for i, w := range weights {
			if !capped[i] {
				free += w
				open++
			}
		}
		if open == 0 {
			break
		}
		for i, w := range weights {
			if capped[i] {
				continue
			}
			if free > 0 {
				weights[i] = w + excess*w/free
			} else {
				weights[i] = w + excess/float64(open)
			}
		}
	}
	return weights
}

// OptimizeUser optimize the current positions of user, history is fetched concurrently per symbol
func (p *Portfolio) OptimizeUser(ctx context.Context, user string, method model.OptimizationMethod,
	tolerance model.RiskTolerance, views map[string]model.View) (*model.OptimizationResult, error) {
	if tolerance == "" {
		tolerance = p.opts.RiskTolerance
	}
	positions, err := p.GetPositions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - OptimizeUser: %w", err)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("portfolio - OptimizeUser: no open positions: %w", model.ErrInvalidRequest)
	}

	req := &model.OptimizationRequest{
		RiskTolerance: tolerance,
		Method:        method,
		History:       make(map[string]*model.History, len(positions)),
		Views:         views,
	}
	for _, pos := range positions {
		req.Holdings = append(req.Holdings, model.Holding{
			Symbol:   pos.Symbol,
			Quantity: pos.Quantity.InexactFloat64(),
			Price:    pos.CurrentPrice.InexactFloat64(),
		})
		req.TotalValue += pos.TotalValue().InexactFloat64()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, pos := range positions {
		symbol := pos.Symbol
		g.Go(func() error {
			h, err := p.priceService.GetHistory(gctx, symbol)
			if errors.Is(err, model.ErrDataUnavailable) {
				logrus.WithField("Symbol", symbol).Debugf("portfolio - OptimizeUser - GetHistory: %v", err)
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			req.History[symbol] = h
			mu.Unlock()
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("portfolio - OptimizeUser - GetHistory: %w", err)
	}

	res, err := p.optimizer.Optimize(req)
	if err != nil {
		return nil, fmt.Errorf("portfolio - OptimizeUser: %w", err)
	}
	sort.Strings(res.Excluded)
	return res, nil
}

// Optimize run the optimizer on caller supplied positions and history
func (p *Portfolio) Optimize(_ context.Context, req *model.OptimizationRequest) (*model.OptimizationResult, error) {
	return p.optimizer.Optimize(req)
}
