package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrNoCapitalAccount user never deposited
var ErrNoCapitalAccount = errors.New("capital account not found")

// Capital postgres entity
type Capital struct {
	runner PgxWithinTransactionRunner
}

// NewCapitalRepository creating new Capital repository
func NewCapitalRepository(runner PgxWithinTransactionRunner) *Capital {
	return &Capital{runner: runner}
}

const capitalColumns = `user_id, initial_capital, current_capital, created, updated`

// CreateCapital insert account, returns false if the user already has one
func (r *Capital) CreateCapital(ctx context.Context, account *model.CapitalAccount) (bool, error) {
	account.Created = time.Now().UTC()
	account.Updated = account.Created
	tag, err := r.runner.Exec(ctx,
		`insert into capital_accounts (`+capitalColumns+`) values ($1, $2, $3, $4, $5)
			 on conflict (user_id) do nothing`,
		account.User, account.InitialCapital, account.CurrentCapital, account.Created, account.Updated)
	if err != nil {
		return false, fmt.Errorf("capital - CreateCapital - Exec: %w", classify(err))
	}

	return tag.RowsAffected() == 1, nil
}

// GetCapitalForUpdate get account and lock its row until the end of the surrounding transaction
func (r *Capital) GetCapitalForUpdate(ctx context.Context, user string) (*model.CapitalAccount, error) {
	account, err := scanCapital(r.runner.QueryRow(ctx,
		`select `+capitalColumns+` from capital_accounts where user_id = $1 for update`, user))
	if err != nil {
		return nil, fmt.Errorf("capital - GetCapitalForUpdate - QueryRow: %w", err)
	}

	return account, nil
}

// GetCapital get account without locking
func (r *Capital) GetCapital(ctx context.Context, user string) (*model.CapitalAccount, error) {
	account, err := scanCapital(r.runner.QueryRow(ctx,
		`select `+capitalColumns+` from capital_accounts where user_id = $1`, user))
	if err != nil {
		return nil, fmt.Errorf("capital - GetCapital - QueryRow: %w", err)
	}

	return account, nil
}

// UpdateCapital set current capital
func (r *Capital) UpdateCapital(ctx context.Context, account *model.CapitalAccount) error {
	account.Updated = time.Now().UTC()
	tag, err := r.runner.Exec(ctx,
		`update capital_accounts set current_capital=$1, updated=$2 where user_id=$3`,
		account.CurrentCapital, account.Updated, account.User)
	if err != nil {
		return fmt.Errorf("capital - UpdateCapital - Exec: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("capital - UpdateCapital: %w", ErrNoCapitalAccount)
	}

	return nil
}

func scanCapital(row pgx.Row) (*model.CapitalAccount, error) {
	account := &model.CapitalAccount{}
	err := row.Scan(&account.User, &account.InitialCapital, &account.CurrentCapital, &account.Created, &account.Updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoCapitalAccount
	}
	if err != nil {
		return nil, classify(err)
	}

	return account, nil
}
