package service

import (
	"context"
	"testing"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPortfolio_Deposit_Withdraw(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())
	ctx := context.Background()
	user := uuid.NewString()

	account, err := p.Deposit(ctx, user, d("50000"))
	require.NoError(t, err)
	require.True(t, account.InitialCapital.Equal(d("50000")))
	require.True(t, account.CurrentCapital.Equal(d("50000")))

	account, err = p.Deposit(ctx, user, d("1500.25"))
	require.NoError(t, err)
	require.True(t, account.InitialCapital.Equal(d("50000")))
	require.True(t, account.CurrentCapital.Equal(d("51500.25")))

	account, err = p.Withdraw(ctx, user, d("1500.25"))
	require.NoError(t, err)
	require.True(t, account.CurrentCapital.Equal(d("50000")))

	_, err = p.Withdraw(ctx, user, d("60000"))
	require.ErrorIs(t, err, model.ErrInsufficientFunds)

	account, err = p.GetCapital(ctx, user)
	require.NoError(t, err)
	require.True(t, account.CurrentCapital.Equal(d("50000")))

	transactions, err := p.GetTransactions(ctx, user)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	for _, tr := range transactions {
		require.Equal(t, model.CashSymbol, tr.Symbol)
		require.True(t, tr.Price.Equal(decimal.NewFromInt(1)))
	}
	require.Equal(t, model.Withdraw, transactions[2].Type)
}

func TestPortfolio_Withdraw_WithoutAccount(t *testing.T) {
	store := newMemStore()
	p := newTestPortfolio(store, newFakePrices())

	_, err := p.Withdraw(context.Background(), uuid.NewString(), d("1"))
	require.ErrorIs(t, err, model.ErrInsufficientFunds)
	require.Empty(t, store.capital)
}

func TestPortfolio_Deposit_InvalidAmount(t *testing.T) {
	p := newTestPortfolio(newMemStore(), newFakePrices())
	ctx := context.Background()

	_, err := p.Deposit(ctx, "u", decimal.Zero)
	require.ErrorIs(t, err, model.ErrInvalidAmount)
	_, err = p.Withdraw(ctx, "u", d("-5"))
	require.ErrorIs(t, err, model.ErrInvalidAmount)
	_, err = p.Deposit(ctx, "", d("5"))
	require.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestPortfolio_GetAvailable(t *testing.T) {
	store := newMemStore()
	prices := newFakePrices()
	p := newTestPortfolio(store, prices)
	ctx := context.Background()
	user := uuid.NewString()

	free, err := p.GetAvailable(ctx, user)
	require.NoError(t, err)
	require.True(t, free.IsZero())

	_, err = p.Deposit(ctx, user, d("1000"))
	require.NoError(t, err)
	_, err = p.SettleTrade(ctx, trade(user, "SBER", model.SideBuy, "5", "100", "0"))
	require.NoError(t, err)

	free, err = p.GetAvailable(ctx, user)
	require.NoError(t, err)
	require.True(t, free.Equal(d("500")))

	// positions worth more than the account never make it negative
	prices.set("SBER", 400)
	free, err = p.GetAvailable(ctx, user)
	require.NoError(t, err)
	require.True(t, free.IsZero())

	account, err := p.GetCapital(ctx, user)
	require.NoError(t, err)
	require.True(t, free.LessThanOrEqual(account.CurrentCapital))
}
