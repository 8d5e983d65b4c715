package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/repository"

	"github.com/sirupsen/logrus"
)

// ListenersRepository pool of stop-loss listener goroutines
//
//go:generate mockery --name=ListenersRepository --case=underscore --output=./mocks
type ListenersRepository interface {
	CreateListener(ctx context.Context, notify *model.Notification) error
	RemoveListener(user, symbol string) error
	ReleaseListener(notify *model.Notification) error
	Symbols() []string
	SendPrices(prices []*model.Price)
	NextBreach(ctx context.Context) (*model.Notification, error)
}

// Watcher keeps stop-loss listeners of watched users fed with oracle prices
type Watcher struct {
	ctx                 context.Context
	portfolio           *Portfolio
	listenersRepository ListenersRepository
	priceService        PriceService
}

// NewWatcher constructor, listeners live as long as ctx
func NewWatcher(ctx context.Context, portfolio *Portfolio, lr ListenersRepository, ps PriceService) *Watcher {
	return &Watcher{ctx: ctx, portfolio: portfolio, listenersRepository: lr, priceService: ps}
}

// Watch (re)arm stop-loss listeners at the recommended levels of every open position of user
func (w *Watcher) Watch(ctx context.Context, user string) ([]model.StopLossRecommendation, error) {
	recs, err := w.portfolio.GetStopLossRecommendations(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("watcher - Watch: %w", err)
	}
	for _, rec := range recs {
		notify := &model.Notification{User: user, Symbol: rec.Symbol, StopLoss: rec.RecommendedStopLoss}
		err = w.listenersRepository.CreateListener(w.ctx, notify)
		if errors.Is(err, repository.ErrListenerExists) {
			if err = w.listenersRepository.RemoveListener(user, rec.Symbol); err != nil {
				return nil, fmt.Errorf("watcher - Watch - RemoveListener: %w", err)
			}
			err = w.listenersRepository.CreateListener(w.ctx, notify)
		}
		if err != nil {
			return nil, fmt.Errorf("watcher - Watch - CreateListener: %w", err)
		}
	}
	return recs, nil
}

// PollPrices push current oracle prices of watched symbols to the listeners
func (w *Watcher) PollPrices(ctx context.Context) error {
	symbols := w.listenersRepository.Symbols()
	if len(symbols) == 0 {
		return nil
	}
	prices, err := w.priceService.GetPrices(ctx, symbols)
	if err != nil {
		return fmt.Errorf("watcher - PollPrices - GetPrices: %w", err)
	}
	w.listenersRepository.SendPrices(prices)
	return nil
}

// NextBreach wait for the next breached stop level, the fired listener is removed unless it was re-armed since
func (w *Watcher) NextBreach(ctx context.Context) (*model.Notification, error) {
	notify, err := w.listenersRepository.NextBreach(ctx)
	if err != nil {
		return nil, fmt.Errorf("watcher - NextBreach: %w", err)
	}
	if err = w.listenersRepository.ReleaseListener(notify); err != nil {
		logrus.WithFields(logrus.Fields{
			"User":   notify.User,
			"Symbol": notify.Symbol,
		}).Debugf("watcher - NextBreach - RemoveListener: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"User":     notify.User,
		"Symbol":   notify.Symbol,
		"StopLoss": notify.StopLoss,
		"Price":    notify.Price,
	}).Warn("watcher - NextBreach: stop-loss level breached")
	return notify, nil
}
