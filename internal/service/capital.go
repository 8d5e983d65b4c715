package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Deposit add cash, the first deposit opens the account with it as initial capital
func (p *Portfolio) Deposit(ctx context.Context, user string, amount decimal.Decimal) (*model.CapitalAccount, error) {
	if user == "" {
		return nil, fmt.Errorf("portfolio - Deposit: user is required: %w", model.ErrInvalidRequest)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("portfolio - Deposit: %w", model.ErrInvalidAmount)
	}

	var account *model.CapitalAccount
	err := p.atomically(ctx, func(ctx context.Context) error {
		var err error
		account, err = p.capitalRepository.GetCapitalForUpdate(ctx, user)
		if errors.Is(err, repository.ErrNoCapitalAccount) {
			account = &model.CapitalAccount{User: user, InitialCapital: amount, CurrentCapital: amount}
			var created bool
			created, err = p.capitalRepository.CreateCapital(ctx, account)
			if err != nil {
				return err
			}
			if created {
				return p.transactionsRepository.CreateTransaction(ctx, p.cashTransaction(user, model.Deposit, amount))
			}
			account, err = p.capitalRepository.GetCapitalForUpdate(ctx, user)
		}
		if err != nil {
			return err
		}

		account.CurrentCapital = account.CurrentCapital.Add(amount)
		if err = p.capitalRepository.UpdateCapital(ctx, account); err != nil {
			return err
		}
		return p.transactionsRepository.CreateTransaction(ctx, p.cashTransaction(user, model.Deposit, amount))
	})
	if err != nil {
		return nil, fmt.Errorf("portfolio - Deposit: %w", err)
	}

	logrus.WithFields(logrus.Fields{"User": user, "Amount": amount}).Debug("portfolio - Deposit: done")
	return account, nil
}

// Withdraw take cash out, never below zero
func (p *Portfolio) Withdraw(ctx context.Context, user string, amount decimal.Decimal) (*model.CapitalAccount, error) {
	if user == "" {
		return nil, fmt.Errorf("portfolio - Withdraw: user is required: %w", model.ErrInvalidRequest)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("portfolio - Withdraw: %w", model.ErrInvalidAmount)
	}

	var account *model.CapitalAccount
	err := p.atomically(ctx, func(ctx context.Context) error {
		var err error
		account, err = p.capitalRepository.GetCapitalForUpdate(ctx, user)
		if errors.Is(err, repository.ErrNoCapitalAccount) {
			return fmt.Errorf("balance 0, withdrawing %s: %w", amount, model.ErrInsufficientFunds)
		}
		if err != nil {
			return err
		}
		if amount.GreaterThan(account.CurrentCapital) {
			return fmt.Errorf("balance %s, withdrawing %s: %w", account.CurrentCapital, amount, model.ErrInsufficientFunds)
		}

		account.CurrentCapital = account.CurrentCapital.Sub(amount)
		if err = p.capitalRepository.UpdateCapital(ctx, account); err != nil {
			return err
		}
		return p.transactionsRepository.CreateTransaction(ctx, p.cashTransaction(user, model.Withdraw, amount))
	})
	if err != nil {
		return nil, fmt.Errorf("portfolio - Withdraw: %w", err)
	}

	logrus.WithFields(logrus.Fields{"User": user, "Amount": amount}).Debug("portfolio - Withdraw: done")
	return account, nil
}

// GetCapital capital account of user, zero valued when the user never deposited
func (p *Portfolio) GetCapital(ctx context.Context, user string) (*model.CapitalAccount, error) {
	account, err := p.capitalRepository.GetCapital(ctx, user)
	if errors.Is(err, repository.ErrNoCapitalAccount) {
		return &model.CapitalAccount{User: user}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("portfolio - GetCapital: %w", err)
	}
	return account, nil
}

// GetAvailable capital not tied up in positions, floored at zero
func (p *Portfolio) GetAvailable(ctx context.Context, user string) (decimal.Decimal, error) {
	current, err := p.currentCapital(ctx, user)
	if err != nil {
		return decimal.Zero, fmt.Errorf("portfolio - GetAvailable: %w", err)
	}
	positions, err := p.GetPositions(ctx, user)
	if err != nil {
		return decimal.Zero, fmt.Errorf("portfolio - GetAvailable: %w", err)
	}

	invested := decimal.Zero
	for _, pos := range positions {
		invested = invested.Add(pos.TotalValue())
	}
	return available(current, invested), nil
}

func (p *Portfolio) currentCapital(ctx context.Context, user string) (decimal.Decimal, error) {
	account, err := p.GetCapital(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}
	return account.CurrentCapital, nil
}

func available(current, invested decimal.Decimal) decimal.Decimal {
	free := current.Sub(invested)
	if free.IsNegative() {
		return decimal.Zero
	}
	return free
}

func (p *Portfolio) cashTransaction(user string, t model.TransactionType, amount decimal.Decimal) *model.Transaction {
	return &model.Transaction{
		ID:          p.newID(),
		User:        user,
		Symbol:      model.CashSymbol,
		Type:        t,
		Quantity:    amount,
		Price:       decimal.NewFromInt(1),
		Commission:  decimal.Zero,
		TotalAmount: amount,
		Timestamp:   p.now(),
	}
}
