package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func validateTrade(req *model.TradeRequest) error {
	if req.User == "" || req.Symbol == "" || !req.AssetType.Valid() {
		return fmt.Errorf("user, symbol and asset type are required: %w", model.ErrInvalidRequest)
	}
	if req.Side != model.SideBuy && req.Side != model.SideSell {
		return fmt.Errorf("side %q: %w", req.Side, model.ErrInvalidRequest)
	}
	if !req.Quantity.IsPositive() || !req.Price.IsPositive() || req.Commission.IsNegative() {
		return model.ErrInvalidQuantityOrPrice
	}
	return nil
}

// averagePrice cost-weighted average after buying qty at price, commission is not part of the cost
func averagePrice(oldQty, oldAvg, qty, price decimal.Decimal) decimal.Decimal {
	newQty := oldQty.Add(qty)
	return oldAvg.Mul(oldQty).Add(price.Mul(qty)).Div(newQty)
}

// SettleTrade apply trade to the position and append it to the transaction log as one atomic unit
func (p *Portfolio) SettleTrade(ctx context.Context, in *model.TradeRequest) (*model.Transaction, error) {
	normalized := *in
	normalized.Symbol = strings.ToUpper(in.Symbol)
	req := &normalized
	if err := validateTrade(req); err != nil {
		return nil, fmt.Errorf("portfolio - SettleTrade: %w", err)
	}

	var transaction *model.Transaction
	err := p.atomically(ctx, func(ctx context.Context) error {
		var err error
		if req.Side == model.SideBuy {
			err = p.applyBuy(ctx, req)
		} else {
			err = p.applySell(ctx, req)
		}
		if err != nil {
			return err
		}

		transaction = p.tradeTransaction(req)
		return p.transactionsRepository.CreateTransaction(ctx, transaction)
	})
	if err != nil {
		return nil, fmt.Errorf("portfolio - SettleTrade: %w", err)
	}
	p.invalidate(ctx, req.User)

	logrus.WithFields(logrus.Fields{
		"User":     req.User,
		"Symbol":   req.Symbol,
		"Side":     req.Side,
		"Quantity": req.Quantity,
		"Price":    req.Price,
	}).Debug("portfolio - SettleTrade: settled")
	return transaction, nil
}

// applyBuy the first buy of a symbol inserts the row, concurrent first buys lose the insert and lock the winner's row
func (p *Portfolio) applyBuy(ctx context.Context, req *model.TradeRequest) error {
	position, err := p.positionsRepository.GetPositionForUpdate(ctx, req.User, req.Symbol)
	if errors.Is(err, model.ErrNoSuchPosition) {
		created, err := p.positionsRepository.CreatePosition(ctx, &model.Position{
			User:         req.User,
			Symbol:       req.Symbol,
			AssetType:    req.AssetType,
			Quantity:     req.Quantity,
			AveragePrice: req.Price,
			CurrentPrice: req.Price,
		})
		if err != nil || created {
			return err
		}
		position, err = p.positionsRepository.GetPositionForUpdate(ctx, req.User, req.Symbol)
		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if err = sameAssetType(position, req); err != nil {
		return err
	}

	position.AveragePrice = averagePrice(position.Quantity, position.AveragePrice, req.Quantity, req.Price)
	position.Quantity = position.Quantity.Add(req.Quantity)
	position.CurrentPrice = req.Price
	return p.positionsRepository.UpdatePosition(ctx, position)
}

func (p *Portfolio) applySell(ctx context.Context, req *model.TradeRequest) error {
	position, err := p.positionsRepository.GetPositionForUpdate(ctx, req.User, req.Symbol)
	if err != nil {
		return err
	}
	if err = sameAssetType(position, req); err != nil {
		return err
	}
	if position.Quantity.LessThan(req.Quantity) {
		return fmt.Errorf("holding %s %s, selling %s: %w",
			position.Quantity, req.Symbol, req.Quantity, model.ErrInsufficientHoldings)
	}

	position.Quantity = position.Quantity.Sub(req.Quantity)
	if position.Quantity.IsZero() {
		return p.positionsRepository.DeletePosition(ctx, req.User, req.Symbol)
	}
	position.CurrentPrice = req.Price
	return p.positionsRepository.UpdatePosition(ctx, position)
}

// sameAssetType a symbol keeps the asset type of its first buy
func sameAssetType(position *model.Position, req *model.TradeRequest) error {
	if position.AssetType != req.AssetType {
		return fmt.Errorf("%s is held as %s, not %s: %w",
			req.Symbol, position.AssetType, req.AssetType, model.ErrInvalidRequest)
	}
	return nil
}

func (p *Portfolio) tradeTransaction(req *model.TradeRequest) *model.Transaction {
	t := req.Side.TransactionType()
	return &model.Transaction{
		ID:          p.newID(),
		User:        req.User,
		Symbol:      req.Symbol,
		AssetType:   req.AssetType,
		Type:        t,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Commission:  req.Commission,
		TotalAmount: model.TradeTotal(t, req.Quantity, req.Price, req.Commission),
		Timestamp:   p.now(),
		Notes:       req.Notes,
	}
}

// PlaceOrder price a market order with the oracle and settle it, commission is charged at the configured rate
func (p *Portfolio) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.Transaction, error) {
	if req.Symbol == "" {
		return nil, fmt.Errorf("portfolio - PlaceOrder: symbol is required: %w", model.ErrInvalidRequest)
	}
	symbol := strings.ToUpper(req.Symbol)
	price, err := p.priceService.GetPrice(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("portfolio - PlaceOrder - GetPrice: %w", err)
	}
	if price <= 0 {
		return nil, fmt.Errorf("portfolio - PlaceOrder - GetPrice: %s: %w", symbol, model.ErrDataUnavailable)
	}

	px := decimal.NewFromFloat(price)
	commission := req.Quantity.Mul(px).Mul(decimal.NewFromFloat(p.opts.CommissionRate)).Round(8)
	return p.SettleTrade(ctx, &model.TradeRequest{
		User:       req.User,
		Symbol:     symbol,
		AssetType:  req.AssetType,
		Side:       req.Side,
		Quantity:   req.Quantity,
		Price:      px,
		Commission: commission,
		Notes:      "market order",
	})
}

// GetPositions open positions of user valued at oracle prices, the last trade price is kept when the oracle has none
func (p *Portfolio) GetPositions(ctx context.Context, user string) ([]*model.Position, error) {
	positions, err := p.positionsRepository.GetUserPositions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - GetPositions - GetUserPositions: %w", err)
	}
	if len(positions) == 0 {
		return positions, nil
	}

	symbols := make([]string, len(positions))
	for i, pos := range positions {
		symbols[i] = pos.Symbol
	}
	prices, err := p.priceService.GetPrices(ctx, symbols)
	if err != nil {
		logrus.WithField("User", user).Warnf("portfolio - GetPositions - GetPrices: %v", err)
		return positions, nil
	}
	bySymbol := make(map[string]float64, len(prices))
	for _, pr := range prices {
		bySymbol[pr.Symbol] = pr.Price
	}
	for _, pos := range positions {
		if price, ok := bySymbol[pos.Symbol]; ok {
			pos.CurrentPrice = decimal.NewFromFloat(price)
		}
	}
	return positions, nil
}

// GetPortfolioSummary totals over the open positions of user
func (p *Portfolio) GetPortfolioSummary(ctx context.Context, user string) (*model.PortfolioSummary, error) {
	positions, err := p.GetPositions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - GetPortfolioSummary: %w", err)
	}
	current, err := p.currentCapital(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - GetPortfolioSummary: %w", err)
	}

	summary := &model.PortfolioSummary{AssetCount: len(positions)}
	for _, pos := range positions {
		summary.TotalValue = summary.TotalValue.Add(pos.TotalValue())
		summary.TotalCost = summary.TotalCost.Add(pos.Cost())
	}
	summary.TotalProfitLoss = summary.TotalValue.Sub(summary.TotalCost)
	if summary.TotalCost.IsPositive() {
		summary.TotalProfitLossPercentage = summary.TotalProfitLoss.Div(summary.TotalCost).Mul(decimal.NewFromInt(100))
	}
	summary.AvailableCapital = available(current, summary.TotalValue)
	return summary, nil
}

// GetTransactions transaction log of user
func (p *Portfolio) GetTransactions(ctx context.Context, user string) ([]*model.Transaction, error) {
	transactions, err := p.transactionsRepository.GetUserTransactions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - GetTransactions: %w", err)
	}
	return transactions, nil
}
