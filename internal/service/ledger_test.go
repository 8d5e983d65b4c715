package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/repository"
	"github.com/OVantsevich/Portfolio-Service/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func trade(user, symbol string, side model.Side, qty, price, commission string) *model.TradeRequest {
	return &model.TradeRequest{
		User:       user,
		Symbol:     symbol,
		AssetType:  model.Stock,
		Side:       side,
		Quantity:   d(qty),
		Price:      d(price),
		Commission: d(commission),
	}
}

func TestPortfolio_SettleTrade_BuyBuySellAll(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	tx, err := p.SettleTrade(ctx, trade(user, "sber", model.SideBuy, "10", "250", "25"))
	require.NoError(t, err)
	require.Equal(t, "SBER", tx.Symbol)
	require.True(t, tx.TotalAmount.Equal(d("2525")))

	_, err = p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "10", "270", "27"))
	require.NoError(t, err)

	positions, err := p.GetPositions(ctx, user)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	require.True(t, positions[0].Quantity.Equal(d("20")))
	require.True(t, positions[0].AveragePrice.Equal(d("260")), positions[0].AveragePrice.String())

	tx, err = p.SettleTrade(ctx, trade(user, "SBER", model.SideSell, "20", "280", "56"))
	require.NoError(t, err)
	require.True(t, tx.TotalAmount.Equal(d("5544")))

	positions, err = p.GetPositions(ctx, user)
	require.NoError(t, err)
	require.Empty(t, positions)

	transactions, err := p.GetTransactions(ctx, user)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	pnl, err := p.RealizedPnL(ctx, user)
	require.NoError(t, err)
	require.Len(t, pnl, 1)
	require.True(t, pnl[0].Gross.Equal(d("400")))
	require.True(t, pnl[0].Fees.Equal(d("108")))
	require.True(t, pnl[0].Net.Equal(d("292")))
}

func TestPortfolio_SettleTrade_PartialSellKeepsAverage(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	_, err := p.SettleTrade(ctx, trade(user, "GAZP", model.SideBuy, "4", "100", "0"))
	require.NoError(t, err)
	_, err = p.SettleTrade(ctx, trade(user, "GAZP", model.SideSell, "1.5", "130", "0"))
	require.NoError(t, err)

	pos, err := store.GetPositionForUpdate(ctx, user, "GAZP")
	require.NoError(t, err)
	require.True(t, pos.Quantity.Equal(d("2.5")))
	require.True(t, pos.AveragePrice.Equal(d("100")))
	require.True(t, pos.CurrentPrice.Equal(d("130")))
}

func TestPortfolio_SettleTrade_SellMoreThanHeld(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	_, err := p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "5", "100", "1"))
	require.NoError(t, err)

	_, err = p.SettleTrade(ctx, trade(user, "SBER", model.SideSell, "6", "110", "1"))
	require.ErrorIs(t, err, model.ErrInsufficientHoldings)

	pos, err := store.GetPositionForUpdate(ctx, user, "SBER")
	require.NoError(t, err)
	require.True(t, pos.Quantity.Equal(d("5")))
	require.True(t, pos.CurrentPrice.Equal(d("100")))

	transactions, err := p.GetTransactions(ctx, user)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
}

func TestPortfolio_SettleTrade_SellWithoutPosition(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	user := uuid.NewString()

	_, err := p.SettleTrade(context.Background(), trade(user, "SBER", model.SideSell, "1", "100", "0"))
	require.ErrorIs(t, err, model.ErrNoSuchPosition)
	require.Empty(t, store.transactions)
}

func TestPortfolio_SettleTrade_CancelledMidSettlement(t *testing.T) {
	store := newMemStore()
	user := uuid.NewString()
	_, err := newTestPortfolio(store, newFakePrices()).
		SettleTrade(context.Background(), trade(user, "SBER", model.SideBuy, "10", "100", "1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := NewPortfolio(&cancelOnUpdate{memStore: store, cancel: cancel}, store, store, newFakePrices(), store, nil,
		Options{MaxRetries: 3})

	_, err = p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "5", "130", "1"))
	require.ErrorIs(t, err, context.Canceled)

	pos, err := store.GetPositionForUpdate(context.Background(), user, "SBER")
	require.NoError(t, err)
	require.True(t, pos.Quantity.Equal(d("10")))
	require.True(t, pos.AveragePrice.Equal(d("100")))
	require.True(t, pos.CurrentPrice.Equal(d("100")))
	require.Len(t, store.transactions, 1)
}

func TestPortfolio_SettleTrade_KeepsRequest(t *testing.T) {
	p := newTestPortfolio(newMemStore(), newFakePrices())
	req := trade(uuid.NewString(), "sber", model.SideBuy, "1", "100", "0")

	tx, err := p.SettleTrade(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "SBER", tx.Symbol)
	require.Equal(t, "sber", req.Symbol)
}

func TestPortfolio_SettleTrade_AssetTypeMismatch(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	_, err := p.SettleTrade(ctx, trade(user, "USD", model.SideBuy, "100", "1", "0"))
	require.NoError(t, err)

	for _, side := range []model.Side{model.SideBuy, model.SideSell} {
		req := trade(user, "USD", side, "10", "1", "0")
		req.AssetType = model.Currency
		_, err = p.SettleTrade(ctx, req)
		require.ErrorIs(t, err, model.ErrInvalidRequest)
	}

	pos, err := store.GetPositionForUpdate(ctx, user, "USD")
	require.NoError(t, err)
	require.Equal(t, model.Stock, pos.AssetType)
	require.True(t, pos.Quantity.Equal(d("100")))
	require.Len(t, store.transactions, 1)
}

func TestPortfolio_SettleTrade_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *model.TradeRequest
		err  error
	}{
		{"zero quantity", trade("u", "SBER", model.SideBuy, "0", "100", "0"), model.ErrInvalidQuantityOrPrice},
		{"negative quantity", trade("u", "SBER", model.SideBuy, "-1", "100", "0"), model.ErrInvalidQuantityOrPrice},
		{"zero price", trade("u", "SBER", model.SideSell, "1", "0", "0"), model.ErrInvalidQuantityOrPrice},
		{"negative commission", trade("u", "SBER", model.SideBuy, "1", "100", "-0.1"), model.ErrInvalidQuantityOrPrice},
		{"empty user", trade("", "SBER", model.SideBuy, "1", "100", "0"), model.ErrInvalidRequest},
		{"empty symbol", trade("u", "", model.SideBuy, "1", "100", "0"), model.ErrInvalidRequest},
		{"unknown side", trade("u", "SBER", model.Side("HOLD"), "1", "100", "0"), model.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no expectations: any repository call fails the test
			p := NewPortfolio(mocks.NewPositionsRepository(t), mocks.NewCapitalRepository(t),
				mocks.NewTransactionsRepository(t), mocks.NewPriceService(t), mocks.NewTransactor(t), nil, Options{})
			_, err := p.SettleTrade(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPortfolio_SettleTrade_LogFailureRollsBack(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	_, err := p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "5", "100", "0"))
	require.NoError(t, err)

	store.failAppend = errors.New("disk full")
	_, err = p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "5", "200", "0"))
	require.Error(t, err)

	pos, err := store.GetPositionForUpdate(ctx, user, "SBER")
	require.NoError(t, err)
	require.True(t, pos.Quantity.Equal(d("5")))
	require.True(t, pos.AveragePrice.Equal(d("100")))
}

func TestPortfolio_SettleTrade_ConcurrentBuys(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "1", "100", "0"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	pos, err := store.GetPositionForUpdate(ctx, user, "SBER")
	require.NoError(t, err)
	require.True(t, pos.Quantity.Equal(decimal.NewFromInt(n)))
	require.True(t, pos.AveragePrice.Equal(d("100")))
	require.Len(t, store.transactions, n)
}

func TestPortfolio_SettleTrade_RetriesConcurrentModification(t *testing.T) {
	positions := mocks.NewPositionsRepository(t)
	transactions := mocks.NewTransactionsRepository(t)
	transactor := mocks.NewTransactor(t)
	p := NewPortfolio(positions, mocks.NewCapitalRepository(t), transactions, mocks.NewPriceService(t), transactor, nil,
		Options{MaxRetries: 3})

	transactor.On("WithinTransaction", mock.Anything, mock.Anything).
		Return(fmt.Errorf("tx: %w", model.ErrConcurrentModification)).Once()
	transactor.On("WithinTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }).Once()
	positions.On("GetPositionForUpdate", mock.Anything, "u1", "SBER").
		Return(&model.Position{User: "u1", Symbol: "SBER", Quantity: d("1"), AveragePrice: d("100")}, nil).Once()
	positions.On("UpdatePosition", mock.Anything, mock.MatchedBy(func(pos *model.Position) bool {
		return pos.Quantity.Equal(d("2")) && pos.AveragePrice.Equal(d("150"))
	})).Return(nil).Once()
	transactions.On("CreateTransaction", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil).Once()

	_, err := p.SettleTrade(context.Background(), trade("u1", "SBER", model.SideBuy, "1", "200", "0"))
	require.NoError(t, err)
	transactor.AssertNumberOfCalls(t, "WithinTransaction", 2)
}

func TestPortfolio_SettleTrade_GivesUpAfterRetries(t *testing.T) {
	transactor := mocks.NewTransactor(t)
	p := NewPortfolio(mocks.NewPositionsRepository(t), mocks.NewCapitalRepository(t), mocks.NewTransactionsRepository(t),
		mocks.NewPriceService(t), transactor, nil, Options{MaxRetries: 2})

	transactor.On("WithinTransaction", mock.Anything, mock.Anything).Return(model.ErrConcurrentModification)

	_, err := p.SettleTrade(context.Background(), trade("u1", "SBER", model.SideBuy, "1", "200", "0"))
	require.ErrorIs(t, err, model.ErrConcurrentModification)
	transactor.AssertNumberOfCalls(t, "WithinTransaction", 3)
}

func TestPortfolio_PlaceOrder(t *testing.T) {
	store := newMemStore()
	prices := newFakePrices()
	prices.set("BTC", 50000)
	p := newTestPortfolio(store, prices)
	user := uuid.NewString()

	tx, err := p.PlaceOrder(context.Background(), &model.OrderRequest{
		User:      user,
		Symbol:    "btc",
		AssetType: model.Crypto,
		Side:      model.SideBuy,
		Quantity:  d("0.5"),
	})
	require.NoError(t, err)
	require.Equal(t, "BTC", tx.Symbol)
	require.True(t, tx.Price.Equal(d("50000")))
	require.True(t, tx.Commission.Equal(d("25")))
	require.True(t, tx.TotalAmount.Equal(d("25025")))

	_, err = p.PlaceOrder(context.Background(), &model.OrderRequest{
		User: user, Symbol: "ETH", AssetType: model.Crypto, Side: model.SideBuy, Quantity: d("1"),
	})
	require.ErrorIs(t, err, model.ErrDataUnavailable)
}

func TestPortfolio_GetPortfolioSummary(t *testing.T) {
	store := newMemStore()
	prices := newFakePrices()
	p := newTestPortfolio(store, prices)
	ctx := context.Background()
	user := uuid.NewString()

	_, err := p.Deposit(ctx, user, d("10000"))
	require.NoError(t, err)
	_, err = p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "10", "100", "1"))
	require.NoError(t, err)
	_, err = p.SettleTrade(ctx, trade(user, "GAZP", model.SideBuy, "20", "50", "1"))
	require.NoError(t, err)
	prices.set("SBER", 120)

	summary, err := p.GetPortfolioSummary(ctx, user)
	require.NoError(t, err)
	require.Equal(t, 2, summary.AssetCount)
	require.True(t, summary.TotalValue.Equal(d("2200")), summary.TotalValue.String())
	require.True(t, summary.TotalCost.Equal(d("2000")))
	require.True(t, summary.TotalProfitLoss.Equal(d("200")))
	require.True(t, summary.TotalProfitLossPercentage.Equal(d("10")))
	require.True(t, summary.AvailableCapital.Equal(d("7800")))
}

func TestPortfolio_Reconcile(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	steps := []*model.TradeRequest{
		trade(user, "SBER", model.SideBuy, "3", "101.5", "0.3"),
		trade(user, "GAZP", model.SideBuy, "7", "33.3", "0.2"),
		trade(user, "SBER", model.SideBuy, "2", "97.25", "0.2"),
		trade(user, "SBER", model.SideSell, "4", "110", "0.4"),
		trade(user, "GAZP", model.SideSell, "7", "35", "0.2"),
		trade(user, "LKOH", model.SideBuy, "1", "7000", "7"),
	}
	for _, s := range steps {
		_, err := p.SettleTrade(ctx, s)
		require.NoError(t, err)
	}

	drifts, err := p.Reconcile(ctx, user)
	require.NoError(t, err)
	require.Empty(t, drifts)

	transactions, err := p.GetTransactions(ctx, user)
	require.NoError(t, err)
	live, err := store.GetUserPositions(ctx, user)
	require.NoError(t, err)
	replay := ReplayPositions(transactions)
	require.Len(t, replay, len(live))
	for _, pos := range live {
		require.True(t, replay[pos.Symbol].Quantity.Equal(pos.Quantity))
		require.True(t, replay[pos.Symbol].AveragePrice.Equal(pos.AveragePrice))
	}

	// tamper with the live table
	pos := store.positions[positionKey(user, "LKOH")]
	pos.Quantity = d("2")
	store.positions[positionKey(user, "LKOH")] = pos
	delete(store.positions, positionKey(user, "SBER"))

	drifts, err = p.Reconcile(ctx, user)
	require.NoError(t, err)
	require.Len(t, drifts, 2)
	require.Equal(t, "LKOH", drifts[0].Symbol)
	require.True(t, drifts[0].LiveQuantity.Equal(d("2")))
	require.True(t, drifts[0].ReplayQuantity.Equal(d("1")))
	require.Equal(t, "SBER", drifts[1].Symbol)
	require.True(t, drifts[1].LiveQuantity.IsZero())

	total, err := p.ReconcileAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestRealizedFromLog(t *testing.T) {
	tx := func(typ model.TransactionType, symbol, qty, price, commission string) *model.Transaction {
		return &model.Transaction{Type: typ, Symbol: symbol, Quantity: d(qty), Price: d(price), Commission: d(commission)}
	}
	res := RealizedFromLog([]*model.Transaction{
		tx(model.Deposit, model.CashSymbol, "1000", "1", "0"),
		tx(model.Buy, "B", "2", "10", "1"),
		tx(model.Buy, "A", "1", "100", "0"),
		tx(model.Sell, "B", "1", "15", "1"),
		tx(model.Buy, "B", "1", "20", "0"),
		tx(model.Sell, "B", "2", "5", "0"),
	})
	require.Len(t, res, 2)
	require.Equal(t, "A", res[0].Symbol)
	require.True(t, res[0].Net.IsZero())
	// B: avg 10, sells 1 at 15 (+5), then avg 15 and 2 sold at 5 (-20)
	require.Equal(t, "B", res[1].Symbol)
	require.True(t, res[1].Gross.Equal(d("-15")), res[1].Gross.String())
	require.True(t, res[1].Fees.Equal(d("2")))
	require.True(t, res[1].Net.Equal(d("-17")))
}
