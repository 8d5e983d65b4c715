package repository

import (
	"context"
	"fmt"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
)

// Transaction postgres entity, append only
type Transaction struct {
	runner PgxWithinTransactionRunner
}

// NewTransactionRepository creating new Transaction repository
func NewTransactionRepository(runner PgxWithinTransactionRunner) *Transaction {
	return &Transaction{runner: runner}
}

const transactionColumns = `id, user_id, symbol, asset_type, type, quantity, price, commission, total_amount, timestamp, notes`

// CreateTransaction append transaction to the log
func (r *Transaction) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	_, err := r.runner.Exec(ctx,
		`insert into transactions (`+transactionColumns+`) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		transaction.ID, transaction.User, transaction.Symbol, transaction.AssetType, transaction.Type,
		transaction.Quantity, transaction.Price, transaction.Commission, transaction.TotalAmount,
		transaction.Timestamp, transaction.Notes)
	if err != nil {
		return fmt.Errorf("transaction - CreateTransaction - Exec: %w", classify(err))
	}

	return nil
}

// GetUserTransactions get user transactions in the order they were written
func (r *Transaction) GetUserTransactions(ctx context.Context, user string) ([]*model.Transaction, error) {
	rows, err := r.runner.Query(ctx,
		`select `+transactionColumns+` from transactions where user_id = $1 order by seq`, user)
	if err != nil {
		return nil, fmt.Errorf("transaction - GetUserTransactions - Query: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		t := &model.Transaction{}
		err = rows.Scan(&t.ID, &t.User, &t.Symbol, &t.AssetType, &t.Type, &t.Quantity, &t.Price,
			&t.Commission, &t.TotalAmount, &t.Timestamp, &t.Notes)
		if err != nil {
			return nil, fmt.Errorf("transaction - GetUserTransactions - Scan: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("transaction - GetUserTransactions - Rows: %w", err)
	}

	return transactions, nil
}

// GetUsers get every user that has at least one transaction
func (r *Transaction) GetUsers(ctx context.Context) ([]string, error) {
	rows, err := r.runner.Query(ctx, `select distinct user_id from transactions order by user_id`)
	if err != nil {
		return nil, fmt.Errorf("transaction - GetUsers - Query: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var user string
		if err = rows.Scan(&user); err != nil {
			return nil, fmt.Errorf("transaction - GetUsers - Scan: %w", err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("transaction - GetUsers - Rows: %w", err)
	}

	return users, nil
}
