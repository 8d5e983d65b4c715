// Package service portfolio ledger, capital account and analytics
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/OVantsevich/Portfolio-Service/internal/cache"
	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// PositionsRepository positions repository
//
//go:generate mockery --name=PositionsRepository --case=underscore --output=./mocks
type PositionsRepository interface {
	CreatePosition(ctx context.Context, position *model.Position) (bool, error)
	GetPositionForUpdate(ctx context.Context, user, symbol string) (*model.Position, error)
	GetUserPositions(ctx context.Context, user string) ([]*model.Position, error)
	UpdatePosition(ctx context.Context, position *model.Position) error
	DeletePosition(ctx context.Context, user, symbol string) error
}

// CapitalRepository capital accounts repository
//
//go:generate mockery --name=CapitalRepository --case=underscore --output=./mocks
type CapitalRepository interface {
	CreateCapital(ctx context.Context, account *model.CapitalAccount) (bool, error)
	GetCapitalForUpdate(ctx context.Context, user string) (*model.CapitalAccount, error)
	GetCapital(ctx context.Context, user string) (*model.CapitalAccount, error)
	UpdateCapital(ctx context.Context, account *model.CapitalAccount) error
}

// TransactionsRepository append-only transaction log
//
//go:generate mockery --name=TransactionsRepository --case=underscore --output=./mocks
type TransactionsRepository interface {
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetUserTransactions(ctx context.Context, user string) ([]*model.Transaction, error)
	GetUsers(ctx context.Context) ([]string, error)
}

// PriceService price oracle
//
//go:generate mockery --name=PriceService --case=underscore --output=./mocks
type PriceService interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
	GetPrices(ctx context.Context, symbols []string) ([]*model.Price, error)
	GetHistory(ctx context.Context, symbol string) (*model.History, error)
}

// Transactor runs a unit of work in one database transaction
//
//go:generate mockery --name=Transactor --case=underscore --output=./mocks
type Transactor interface {
	WithinTransaction(ctx context.Context, txFn repository.TxFunc) error
	WithinTransactionWithOptions(ctx context.Context, txFn repository.TxFunc, opts pgx.TxOptions) error
}

// Options tunables of the portfolio service
type Options struct {
	CommissionRate float64
	SlippageRate   float64
	RiskTolerance  model.RiskTolerance
	MaxRetries     uint64
	RetryBase      time.Duration
	AnalyticsTTL   time.Duration
}

// Portfolio portfolio service
type Portfolio struct {
	positionsRepository    PositionsRepository
	capitalRepository      CapitalRepository
	transactionsRepository TransactionsRepository
	priceService           PriceService
	transactor             Transactor
	cache                  cache.Cache

	risk      *RiskAssessor
	optimizer *Optimizer
	opts      Options

	now   func() time.Time
	newID func() string
}

// NewPortfolio constructor
func NewPortfolio(pr PositionsRepository, cr CapitalRepository, tr TransactionsRepository, ps PriceService,
	transactor Transactor, c cache.Cache, opts Options) *Portfolio {
	if opts.RetryBase <= 0 {
		opts.RetryBase = 10 * time.Millisecond
	}
	if opts.RiskTolerance == "" {
		opts.RiskTolerance = model.RiskMedium
	}
	return &Portfolio{
		positionsRepository:    pr,
		capitalRepository:      cr,
		transactionsRepository: tr,
		priceService:           ps,
		transactor:             transactor,
		cache:                  c,
		risk:                   NewRiskAssessor(DefaultRiskPolicy()),
		optimizer:              NewOptimizer(opts.CommissionRate, opts.SlippageRate),
		opts:                   opts,
		now:                    func() time.Time { return time.Now().UTC() },
		newID:                  uuid.NewString,
	}
}

// atomically runs txFn in a transaction, retrying it from scratch on lock conflicts
func (p *Portfolio) atomically(ctx context.Context, txFn repository.TxFunc) error {
	backoff := retry.WithMaxRetries(p.opts.MaxRetries, retry.NewExponential(p.opts.RetryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := p.transactor.WithinTransaction(ctx, txFn)
		if errors.Is(err, model.ErrConcurrentModification) {
			logrus.WithError(err).Debug("portfolio - atomically: retrying transaction")
			return retry.RetryableError(err)
		}
		return err
	})
}

func riskCacheKey(user string, tolerance model.RiskTolerance) string {
	return "risk:" + user + ":" + string(tolerance)
}

// invalidate drops cached analytics of user after its positions changed
func (p *Portfolio) invalidate(ctx context.Context, user string) {
	if p.cache == nil {
		return
	}
	err := p.cache.Delete(ctx,
		riskCacheKey(user, model.RiskLow), riskCacheKey(user, model.RiskMedium), riskCacheKey(user, model.RiskHigh))
	if err != nil {
		logrus.WithField("User", user).Warnf("portfolio - invalidate - Delete: %v", err)
	}
}

func (p *Portfolio) cached(ctx context.Context, key string, dst interface{}) bool {
	if p.cache == nil {
		return false
	}
	b, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		logrus.WithField("Key", key).Debugf("portfolio - cached - Get: %v", err)
		return false
	}
	return ok && json.Unmarshal(b, dst) == nil
}

func (p *Portfolio) store(ctx context.Context, key string, v interface{}) {
	if p.cache == nil || p.opts.AnalyticsTTL <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err = p.cache.Set(ctx, key, b, p.opts.AnalyticsTTL); err != nil {
		logrus.WithField("Key", key).Debugf("portfolio - store - Set: %v", err)
	}
}
