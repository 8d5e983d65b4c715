// Package handler portfolio grpc handler
package handler

import (
	"context"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// PortfolioService portfolio service
//
//go:generate mockery --name=PortfolioService --case=underscore --output=./mocks
type PortfolioService interface {
	SettleTrade(ctx context.Context, req *model.TradeRequest) (*model.Transaction, error)
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.Transaction, error)
	Deposit(ctx context.Context, user string, amount decimal.Decimal) (*model.CapitalAccount, error)
	Withdraw(ctx context.Context, user string, amount decimal.Decimal) (*model.CapitalAccount, error)
	GetCapital(ctx context.Context, user string) (*model.CapitalAccount, error)
	GetAvailable(ctx context.Context, user string) (decimal.Decimal, error)
	GetPositions(ctx context.Context, user string) ([]*model.Position, error)
	GetPortfolioSummary(ctx context.Context, user string) (*model.PortfolioSummary, error)
	GetTransactions(ctx context.Context, user string) ([]*model.Transaction, error)
	RealizedPnL(ctx context.Context, user string) ([]model.RealizedPnL, error)
	AssessRisk(ctx context.Context, user string, tolerance model.RiskTolerance) (*model.RiskAssessment, error)
	GetStopLossRecommendations(ctx context.Context, user string) ([]model.StopLossRecommendation, error)
	Optimize(ctx context.Context, req *model.OptimizationRequest) (*model.OptimizationResult, error)
	OptimizeUser(ctx context.Context, user string, method model.OptimizationMethod, tolerance model.RiskTolerance,
		views map[string]model.View) (*model.OptimizationResult, error)
	Reconcile(ctx context.Context, user string) ([]model.Drift, error)
}

// StopLossWatcher arms stop-loss listeners
//
//go:generate mockery --name=StopLossWatcher --case=underscore --output=./mocks
type StopLossWatcher interface {
	Watch(ctx context.Context, user string) ([]model.StopLossRecommendation, error)
}

// Portfolio handler
type Portfolio struct {
	service PortfolioService
	watcher StopLossWatcher
}

// NewPortfolio constructor
func NewPortfolio(s PortfolioService, w StopLossWatcher) *Portfolio {
	return &Portfolio{service: s, watcher: w}
}

type userRequest struct {
	User string `json:"user"`
}

type amountRequest struct {
	User   string          `json:"user"`
	Amount decimal.Decimal `json:"amount"`
}

type riskRequest struct {
	User      string              `json:"user"`
	Tolerance model.RiskTolerance `json:"tolerance"`
}

type optimizeRequest struct {
	User string `json:"user"`
	model.OptimizationRequest
}

func decodeUser(in *structpb.Struct) (*userRequest, error) {
	req := &userRequest{}
	if err := decode(in, req); err != nil {
		return nil, err
	}
	if req.User == "" {
		return nil, status.Error(codes.InvalidArgument, "user is required")
	}
	return req, nil
}

// fail log a failed call and convert err to a status
func fail(method string, fields logrus.Fields, err error) error {
	st := toStatus(err)
	entry := logrus.WithFields(fields)
	if status.Code(st) == codes.Internal {
		entry.Errorf("portfolio - %s: %v", method, err)
	} else {
		entry.Warnf("portfolio - %s: %v", method, err)
	}
	return st
}

// SettleTrade settle a trade at the given price
func (h *Portfolio) SettleTrade(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req := &model.TradeRequest{}
	if err := decode(request, req); err != nil {
		return nil, err
	}
	transaction, err := h.service.SettleTrade(ctx, req)
	if err != nil {
		return nil, fail("SettleTrade - SettleTrade", logrus.Fields{
			"User":     req.User,
			"Symbol":   req.Symbol,
			"Side":     req.Side,
			"Quantity": req.Quantity,
			"Price":    req.Price,
		}, err)
	}
	return encode(map[string]interface{}{"transaction": transaction})
}

// PlaceOrder settle a market order at the oracle price
func (h *Portfolio) PlaceOrder(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req := &model.OrderRequest{}
	if err := decode(request, req); err != nil {
		return nil, err
	}
	transaction, err := h.service.PlaceOrder(ctx, req)
	if err != nil {
		return nil, fail("PlaceOrder - PlaceOrder", logrus.Fields{
			"User":     req.User,
			"Symbol":   req.Symbol,
			"Side":     req.Side,
			"Quantity": req.Quantity,
		}, err)
	}
	return encode(map[string]interface{}{"transaction": transaction})
}

// Deposit add cash to the capital account
func (h *Portfolio) Deposit(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req := &amountRequest{}
	if err := decode(request, req); err != nil {
		return nil, err
	}
	account, err := h.service.Deposit(ctx, req.User, req.Amount)
	if err != nil {
		return nil, fail("Deposit - Deposit", logrus.Fields{"User": req.User, "Amount": req.Amount}, err)
	}
	return encode(map[string]interface{}{"account": account})
}

// Withdraw take cash from the capital account
func (h *Portfolio) Withdraw(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req := &amountRequest{}
	if err := decode(request, req); err != nil {
		return nil, err
	}
	account, err := h.service.Withdraw(ctx, req.User, req.Amount)
	if err != nil {
		return nil, fail("Withdraw - Withdraw", logrus.Fields{"User": req.User, "Amount": req.Amount}, err)
	}
	return encode(map[string]interface{}{"account": account})
}

// GetCapital capital account
func (h *Portfolio) GetCapital(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	account, err := h.service.GetCapital(ctx, req.User)
	if err != nil {
		return nil, fail("GetCapital - GetCapital", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"account": account})
}

// GetAvailable capital not tied up in positions
func (h *Portfolio) GetAvailable(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	available, err := h.service.GetAvailable(ctx, req.User)
	if err != nil {
		return nil, fail("GetAvailable - GetAvailable", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"available": available})
}

// GetPositions open positions
func (h *Portfolio) GetPositions(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	positions, err := h.service.GetPositions(ctx, req.User)
	if err != nil {
		return nil, fail("GetPositions - GetPositions", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"positions": positionsToResponse(positions)})
}

// GetPortfolioSummary totals over open positions
func (h *Portfolio) GetPortfolioSummary(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	summary, err := h.service.GetPortfolioSummary(ctx, req.User)
	if err != nil {
		return nil, fail("GetPortfolioSummary - GetPortfolioSummary", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"summary": summary})
}

// GetTransactions transaction log
func (h *Portfolio) GetTransactions(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	transactions, err := h.service.GetTransactions(ctx, req.User)
	if err != nil {
		return nil, fail("GetTransactions - GetTransactions", logrus.Fields{"User": req.User}, err)
	}
	if transactions == nil {
		transactions = []*model.Transaction{}
	}
	return encode(map[string]interface{}{"transactions": transactions})
}

// GetRealizedPnL realized results per symbol
func (h *Portfolio) GetRealizedPnL(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	pnl, err := h.service.RealizedPnL(ctx, req.User)
	if err != nil {
		return nil, fail("GetRealizedPnL - RealizedPnL", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"realized": pnl})
}

// AssessRisk risk assessment of the open positions
func (h *Portfolio) AssessRisk(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req := &riskRequest{}
	if err := decode(request, req); err != nil {
		return nil, err
	}
	assessment, err := h.service.AssessRisk(ctx, req.User, req.Tolerance)
	if err != nil {
		return nil, fail("AssessRisk - AssessRisk", logrus.Fields{"User": req.User, "Tolerance": req.Tolerance}, err)
	}
	return encode(map[string]interface{}{"assessment": assessment})
}

// GetStopLossRecommendations stop levels per position
func (h *Portfolio) GetStopLossRecommendations(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	recs, err := h.service.GetStopLossRecommendations(ctx, req.User)
	if err != nil {
		return nil, fail("GetStopLossRecommendations - GetStopLossRecommendations", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"stopLosses": recs})
}

// Watch arm stop-loss listeners for every open position
func (h *Portfolio) Watch(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	recs, err := h.watcher.Watch(ctx, req.User)
	if err != nil {
		return nil, fail("Watch - Watch", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"stopLosses": recs})
}

// Optimize optimize caller supplied holdings, or the open positions of user when no holdings are given
func (h *Portfolio) Optimize(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req := &optimizeRequest{}
	if err := decode(request, req); err != nil {
		return nil, err
	}

	var res *model.OptimizationResult
	var err error
	if len(req.Holdings) > 0 {
		res, err = h.service.Optimize(ctx, &req.OptimizationRequest)
	} else {
		if req.User == "" {
			return nil, status.Error(codes.InvalidArgument, "user or holdings are required")
		}
		res, err = h.service.OptimizeUser(ctx, req.User, req.Method, req.RiskTolerance, req.Views)
	}
	if err != nil {
		return nil, fail("Optimize - Optimize", logrus.Fields{
			"User":     req.User,
			"Method":   req.Method,
			"Holdings": len(req.Holdings),
		}, err)
	}
	return encode(map[string]interface{}{"result": res})
}

// Reconcile compare live positions with the transaction log
func (h *Portfolio) Reconcile(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeUser(request)
	if err != nil {
		return nil, err
	}
	drifts, err := h.service.Reconcile(ctx, req.User)
	if err != nil {
		return nil, fail("Reconcile - Reconcile", logrus.Fields{"User": req.User}, err)
	}
	return encode(map[string]interface{}{"drifts": drifts, "consistent": len(drifts) == 0})
}

// positionResponse position with its derived values
type positionResponse struct {
	*model.Position
	TotalValue        decimal.Decimal `json:"totalValue"`
	ProfitLoss        decimal.Decimal `json:"profitLoss"`
	ProfitLossPercent decimal.Decimal `json:"profitLossPercent"`
}

func positionsToResponse(positions []*model.Position) []positionResponse {
	res := make([]positionResponse, len(positions))
	for i, p := range positions {
		res[i] = positionResponse{
			Position:          p,
			TotalValue:        p.TotalValue(),
			ProfitLoss:        p.ProfitLoss(),
			ProfitLossPercent: p.ProfitLossPercent().Round(4),
		}
	}
	return res
}
