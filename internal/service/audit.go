package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// driftTolerance largest difference between live and replayed values still considered equal
var driftTolerance = decimal.New(1, -8)

// ReplayPositions fold buy and sell transactions in log order with the settlement formulas
func ReplayPositions(transactions []*model.Transaction) map[string]*model.Position {
	positions := make(map[string]*model.Position)
	for _, t := range transactions {
		switch t.Type {
		case model.Buy:
			pos, ok := positions[t.Symbol]
			if !ok {
				positions[t.Symbol] = &model.Position{
					User:         t.User,
					Symbol:       t.Symbol,
					AssetType:    t.AssetType,
					Quantity:     t.Quantity,
					AveragePrice: t.Price,
					CurrentPrice: t.Price,
				}
				continue
			}
			pos.AveragePrice = averagePrice(pos.Quantity, pos.AveragePrice, t.Quantity, t.Price)
			pos.Quantity = pos.Quantity.Add(t.Quantity)
			pos.CurrentPrice = t.Price
		case model.Sell:
			pos, ok := positions[t.Symbol]
			if !ok {
				continue
			}
			pos.Quantity = pos.Quantity.Sub(t.Quantity)
			pos.CurrentPrice = t.Price
			if !pos.Quantity.IsPositive() {
				delete(positions, t.Symbol)
			}
		}
	}
	return positions
}

// RealizedFromLog realized result per traded symbol: sold quantity times the gain over the average price,
// less every commission paid on the symbol
func RealizedFromLog(transactions []*model.Transaction) []model.RealizedPnL {
	type state struct {
		qty, avg decimal.Decimal
		pnl      model.RealizedPnL
	}
	bySymbol := make(map[string]*state)
	for _, t := range transactions {
		if t.Type != model.Buy && t.Type != model.Sell {
			continue
		}
		s, ok := bySymbol[t.Symbol]
		if !ok {
			s = &state{pnl: model.RealizedPnL{Symbol: t.Symbol}}
			bySymbol[t.Symbol] = s
		}
		s.pnl.Fees = s.pnl.Fees.Add(t.Commission)
		if t.Type == model.Buy {
			if s.qty.IsZero() {
				s.avg = t.Price
			} else {
				s.avg = averagePrice(s.qty, s.avg, t.Quantity, t.Price)
			}
			s.qty = s.qty.Add(t.Quantity)
			continue
		}
		sold := decimal.Min(t.Quantity, s.qty)
		s.pnl.Gross = s.pnl.Gross.Add(sold.Mul(t.Price.Sub(s.avg)))
		s.qty = s.qty.Sub(sold)
	}

	res := make([]model.RealizedPnL, 0, len(bySymbol))
	for _, s := range bySymbol {
		s.pnl.Net = s.pnl.Gross.Sub(s.pnl.Fees)
		res = append(res, s.pnl)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Symbol < res[j].Symbol })
	return res
}

// RealizedPnL realized results of user derived from the transaction log
func (p *Portfolio) RealizedPnL(ctx context.Context, user string) ([]model.RealizedPnL, error) {
	transactions, err := p.transactionsRepository.GetUserTransactions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("portfolio - RealizedPnL: %w", err)
	}
	return RealizedFromLog(transactions), nil
}

// Reconcile compare live positions of user with a replay of its transaction log
func (p *Portfolio) Reconcile(ctx context.Context, user string) ([]model.Drift, error) {
	var transactions []*model.Transaction
	var live []*model.Position
	// both reads must see the same snapshot, otherwise a trade settled in between shows up as drift
	err := p.transactor.WithinTransactionWithOptions(ctx, func(ctx context.Context) error {
		var err error
		transactions, err = p.transactionsRepository.GetUserTransactions(ctx, user)
		if err != nil {
			return err
		}
		live, err = p.positionsRepository.GetUserPositions(ctx, user)
		return err
	}, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("portfolio - Reconcile: %w", err)
	}

	replay := ReplayPositions(transactions)
	drifts := make([]model.Drift, 0)
	for _, pos := range live {
		r, ok := replay[pos.Symbol]
		delete(replay, pos.Symbol)
		if !ok {
			r = &model.Position{}
		}
		if differ(pos.Quantity, r.Quantity) || differ(pos.AveragePrice, r.AveragePrice) {
			drifts = append(drifts, model.Drift{
				User:             user,
				Symbol:           pos.Symbol,
				LiveQuantity:     pos.Quantity,
				ReplayQuantity:   r.Quantity,
				LiveAveragePrice: pos.AveragePrice,
				ReplayAvgPrice:   r.AveragePrice,
			})
		}
	}
	for symbol, r := range replay {
		drifts = append(drifts, model.Drift{
			User:           user,
			Symbol:         symbol,
			ReplayQuantity: r.Quantity,
			ReplayAvgPrice: r.AveragePrice,
		})
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].Symbol < drifts[j].Symbol })
	return drifts, nil
}

func differ(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().GreaterThan(driftTolerance)
}

// ReconcileAll reconcile every user with a transaction log and log drift, returns number of drifted positions
func (p *Portfolio) ReconcileAll(ctx context.Context) (int, error) {
	users, err := p.transactionsRepository.GetUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("portfolio - ReconcileAll: %w", err)
	}

	var total int
	for _, user := range users {
		drifts, err := p.Reconcile(ctx, user)
		if err != nil {
			return total, fmt.Errorf("portfolio - ReconcileAll: %w", err)
		}
		for _, d := range drifts {
			logrus.WithFields(logrus.Fields{
				"User":             d.User,
				"Symbol":           d.Symbol,
				"LiveQuantity":     d.LiveQuantity,
				"ReplayQuantity":   d.ReplayQuantity,
				"LiveAveragePrice": d.LiveAveragePrice,
				"ReplayAvgPrice":   d.ReplayAvgPrice,
			}).Warn("portfolio - ReconcileAll: position drifted from transaction log")
		}
		total += len(drifts)
	}
	logrus.WithFields(logrus.Fields{"Users": len(users), "Drifts": total}).Info("portfolio - ReconcileAll: done")
	return total, nil
}
