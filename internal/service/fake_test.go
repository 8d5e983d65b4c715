package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/repository"

	"github.com/jackc/pgx/v5"
)

// memStore in-memory stand-in for the postgres repositories: transactions are serialized
// and rolled back by restoring a snapshot
type memStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	positions    map[string]model.Position
	capital      map[string]model.CapitalAccount
	transactions []model.Transaction

	failAppend error
}

func newMemStore() *memStore {
	return &memStore{
		positions: make(map[string]model.Position),
		capital:   make(map[string]model.CapitalAccount),
	}
}

func positionKey(user, symbol string) string {
	return user + "|" + symbol
}

func (s *memStore) WithinTransaction(ctx context.Context, txFn repository.TxFunc) error {
	return s.WithinTransactionWithOptions(ctx, txFn, pgx.TxOptions{})
}

func (s *memStore) WithinTransactionWithOptions(ctx context.Context, txFn repository.TxFunc, _ pgx.TxOptions) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	positions := make(map[string]model.Position, len(s.positions))
	for k, v := range s.positions {
		positions[k] = v
	}
	capital := make(map[string]model.CapitalAccount, len(s.capital))
	for k, v := range s.capital {
		capital[k] = v
	}
	transactions := len(s.transactions)
	s.mu.RUnlock()

	err := txFn(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.positions, s.capital, s.transactions = positions, capital, s.transactions[:transactions]
		s.mu.Unlock()
	}
	return err
}

func (s *memStore) CreatePosition(_ context.Context, position *model.Position) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := positionKey(position.User, position.Symbol)
	if _, ok := s.positions[key]; ok {
		return false, nil
	}
	s.positions[key] = *position
	return true, nil
}

func (s *memStore) GetPositionForUpdate(_ context.Context, user, symbol string) (*model.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.positions[positionKey(user, symbol)]
	if !ok {
		return nil, fmt.Errorf("memStore: %w", model.ErrNoSuchPosition)
	}
	return &pos, nil
}

func (s *memStore) GetUserPositions(_ context.Context, user string) ([]*model.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var positions []*model.Position
	for _, pos := range s.positions {
		if pos.User == user {
			p := pos
			positions = append(positions, &p)
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })
	return positions, nil
}

func (s *memStore) UpdatePosition(_ context.Context, position *model.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := positionKey(position.User, position.Symbol)
	if _, ok := s.positions[key]; !ok {
		return model.ErrNoSuchPosition
	}
	s.positions[key] = *position
	return nil
}

func (s *memStore) DeletePosition(_ context.Context, user, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := positionKey(user, symbol)
	if _, ok := s.positions[key]; !ok {
		return model.ErrNoSuchPosition
	}
	delete(s.positions, key)
	return nil
}

func (s *memStore) CreateCapital(_ context.Context, account *model.CapitalAccount) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.capital[account.User]; ok {
		return false, nil
	}
	s.capital[account.User] = *account
	return true, nil
}

func (s *memStore) GetCapitalForUpdate(ctx context.Context, user string) (*model.CapitalAccount, error) {
	return s.GetCapital(ctx, user)
}

func (s *memStore) GetCapital(_ context.Context, user string) (*model.CapitalAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.capital[user]
	if !ok {
		return nil, repository.ErrNoCapitalAccount
	}
	return &account, nil
}

func (s *memStore) UpdateCapital(_ context.Context, account *model.CapitalAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.capital[account.User]; !ok {
		return repository.ErrNoCapitalAccount
	}
	s.capital[account.User] = *account
	return nil
}

func (s *memStore) CreateTransaction(_ context.Context, transaction *model.Transaction) error {
	if s.failAppend != nil {
		return s.failAppend
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, *transaction)
	return nil
}

func (s *memStore) GetUserTransactions(_ context.Context, user string) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var transactions []*model.Transaction
	for _, t := range s.transactions {
		if t.User == user {
			tr := t
			transactions = append(transactions, &tr)
		}
	}
	return transactions, nil
}

func (s *memStore) GetUsers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var users []string
	for _, t := range s.transactions {
		if _, ok := seen[t.User]; !ok {
			seen[t.User] = struct{}{}
			users = append(users, t.User)
		}
	}
	sort.Strings(users)
	return users, nil
}

// fakePrices price oracle backed by maps
type fakePrices struct {
	mu      sync.RWMutex
	prices  map[string]float64
	history map[string]*model.History
}

func newFakePrices() *fakePrices {
	return &fakePrices{prices: make(map[string]float64), history: make(map[string]*model.History)}
}

func (f *fakePrices) set(symbol string, price float64) {
	f.mu.Lock()
	f.prices[symbol] = price
	f.mu.Unlock()
}

func (f *fakePrices) GetPrice(_ context.Context, symbol string) (float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	price, ok := f.prices[symbol]
	if !ok {
		return 0, model.ErrDataUnavailable
	}
	return price, nil
}

func (f *fakePrices) GetPrices(_ context.Context, symbols []string) ([]*model.Price, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var prices []*model.Price
	for _, s := range symbols {
		if price, ok := f.prices[s]; ok {
			prices = append(prices, &model.Price{Symbol: s, Price: price})
		}
	}
	return prices, nil
}

func (f *fakePrices) GetHistory(_ context.Context, symbol string) (*model.History, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	h, ok := f.history[symbol]
	if !ok {
		return nil, model.ErrDataUnavailable
	}
	return h, nil
}

func newTestPortfolio(store *memStore, prices *fakePrices) *Portfolio {
	return NewPortfolio(store, store, store, prices, store, nil, Options{
		CommissionRate: 0.001,
		SlippageRate:   0.0005,
		MaxRetries:     3,
	})
}

// cancelOnUpdate cancels the settling context right after the position row is written
type cancelOnUpdate struct {
	*memStore
	cancel context.CancelFunc
}

func (c *cancelOnUpdate) UpdatePosition(ctx context.Context, position *model.Position) error {
	err := c.memStore.UpdatePosition(ctx, position)
	c.cancel()
	return err
}
