// Package repository position
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/jackc/pgx/v5"
)

// Position postgres entity
type Position struct {
	runner PgxWithinTransactionRunner
}

// NewPositionRepository creating new Position repository
func NewPositionRepository(runner PgxWithinTransactionRunner) *Position {
	return &Position{runner: runner}
}

const positionColumns = `user_id, symbol, asset_type, quantity, average_price, current_price, created, updated`

// CreatePosition insert position, returns false if a position for the same user and symbol already exists
func (r *Position) CreatePosition(ctx context.Context, position *model.Position) (bool, error) {
	position.Created = time.Now().UTC()
	position.Updated = position.Created
	tag, err := r.runner.Exec(ctx,
		`insert into positions (`+positionColumns+`) values ($1, $2, $3, $4, $5, $6, $7, $8)
			 on conflict (user_id, symbol) do nothing`,
		position.User, position.Symbol, position.AssetType, position.Quantity, position.AveragePrice,
		position.CurrentPrice, position.Created, position.Updated)
	if err != nil {
		return false, fmt.Errorf("position - CreatePosition - Exec: %w", classify(err))
	}

	return tag.RowsAffected() == 1, nil
}

// GetPositionForUpdate get position and lock its row until the end of the surrounding transaction
func (r *Position) GetPositionForUpdate(ctx context.Context, user, symbol string) (*model.Position, error) {
	pos, err := scanPosition(r.runner.QueryRow(ctx,
		`select `+positionColumns+` from positions where user_id = $1 and symbol = $2 for update`, user, symbol))
	if err != nil {
		return nil, fmt.Errorf("position - GetPositionForUpdate - QueryRow: %w", err)
	}

	return pos, nil
}

// GetPosition get position without locking
func (r *Position) GetPosition(ctx context.Context, user, symbol string) (*model.Position, error) {
	pos, err := scanPosition(r.runner.QueryRow(ctx,
		`select `+positionColumns+` from positions where user_id = $1 and symbol = $2`, user, symbol))
	if err != nil {
		return nil, fmt.Errorf("position - GetPosition - QueryRow: %w", err)
	}

	return pos, nil
}

// GetUserPositions get all open positions of user
func (r *Position) GetUserPositions(ctx context.Context, user string) ([]*model.Position, error) {
	rows, err := r.runner.Query(ctx,
		`select `+positionColumns+` from positions where user_id = $1 order by symbol`, user)
	if err != nil {
		return nil, fmt.Errorf("position - GetUserPositions - Query: %w", err)
	}
	defer rows.Close()

	var positions []*model.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("position - GetUserPositions - Scan: %w", err)
		}
		positions = append(positions, pos)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("position - GetUserPositions - Rows: %w", err)
	}

	return positions, nil
}

// UpdatePosition update quantity, average and current price
func (r *Position) UpdatePosition(ctx context.Context, position *model.Position) error {
	position.Updated = time.Now().UTC()
	tag, err := r.runner.Exec(ctx,
		`update positions set quantity=$1, average_price=$2, current_price=$3, updated=$4 where user_id=$5 and symbol=$6`,
		position.Quantity, position.AveragePrice, position.CurrentPrice, position.Updated, position.User, position.Symbol)
	if err != nil {
		return fmt.Errorf("position - UpdatePosition - Exec: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("position - UpdatePosition: %w", model.ErrNoSuchPosition)
	}

	return nil
}

// DeletePosition delete fully liquidated position
func (r *Position) DeletePosition(ctx context.Context, user, symbol string) error {
	tag, err := r.runner.Exec(ctx, `delete from positions where user_id=$1 and symbol=$2`, user, symbol)
	if err != nil {
		return fmt.Errorf("position - DeletePosition - Exec: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("position - DeletePosition: %w", model.ErrNoSuchPosition)
	}

	return nil
}

func scanPosition(row pgx.Row) (*model.Position, error) {
	pos := &model.Position{}
	err := row.Scan(&pos.User, &pos.Symbol, &pos.AssetType, &pos.Quantity, &pos.AveragePrice,
		&pos.CurrentPrice, &pos.Created, &pos.Updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNoSuchPosition
	}
	if err != nil {
		return nil, classify(err)
	}

	return pos, nil
}
