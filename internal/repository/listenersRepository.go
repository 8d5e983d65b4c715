// Package repository listeners repository
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/OVantsevich/Portfolio-Service/internal/model"
)

// ErrListenerExists stop-loss listener for the user and symbol is already running
var ErrListenerExists = errors.New("listener with this symbol and user already exist")

// ErrListenerNotFound no stop-loss listener for the user and symbol
var ErrListenerNotFound = errors.New("listener with this symbol and user doesn't exist")

type armed struct {
	prices     chan float64
	generation uint64
}

// ListenersRepository pool of stop-loss listener goroutines, one per user and symbol
type ListenersRepository struct {
	mu         sync.RWMutex
	generation uint64
	breaches   chan *model.Notification
	listeners  map[string]map[string]armed
}

// NewListenersRepository constructor
func NewListenersRepository() *ListenersRepository {
	return &ListenersRepository{
		breaches:  make(chan *model.Notification, 64),
		listeners: make(map[string]map[string]armed),
	}
}

// CreateListener start stop-loss listener, notify.Generation is set to the generation of the new listener
func (l *ListenersRepository) CreateListener(ctx context.Context, notify *model.Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	lis, ok := l.listeners[notify.Symbol]
	if !ok {
		lis = make(map[string]armed)
		l.listeners[notify.Symbol] = lis
	}
	if _, ok = lis[notify.User]; ok {
		return fmt.Errorf("listenersRepository - CreateListener: %w", ErrListenerExists)
	}
	l.generation++
	notify.Generation = l.generation
	channel := make(chan float64, 1)
	sendNotify := *notify
	go listener(ctx, channel, l.breaches, &sendNotify)
	lis[notify.User] = armed{prices: channel, generation: l.generation}
	return nil
}

// RemoveListener stop stop-loss listener of user and symbol whatever its generation
func (l *ListenersRepository) RemoveListener(user, symbol string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.remove(user, symbol, 0) {
		return fmt.Errorf("listenersRepository - RemoveListener: %w", ErrListenerNotFound)
	}
	return nil
}

// ReleaseListener remove the listener that fired notify, a listener armed after it is kept
func (l *ListenersRepository) ReleaseListener(notify *model.Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.remove(notify.User, notify.Symbol, notify.Generation) {
		return fmt.Errorf("listenersRepository - ReleaseListener: %w", ErrListenerNotFound)
	}
	return nil
}

// remove listener under l.mu, generation 0 matches any
func (l *ListenersRepository) remove(user, symbol string, generation uint64) bool {
	lis := l.listeners[symbol]
	a, ok := lis[user]
	if !ok || (generation != 0 && a.generation != generation) {
		return false
	}
	close(a.prices)
	delete(lis, user)
	if len(lis) == 0 {
		delete(l.listeners, symbol)
	}
	return true
}

// Symbols symbols with at least one listener
func (l *ListenersRepository) Symbols() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	symbols := make([]string, 0, len(l.listeners))
	for s := range l.listeners {
		symbols = append(symbols, s)
	}
	return symbols
}

// SendPrices sending prices for all listeners, a listener still busy with the previous price gets the newest one
func (l *ListenersRepository) SendPrices(prices []*model.Price) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range prices {
		for _, a := range l.listeners[p.Symbol] {
			lis := a.prices
			select {
			case lis <- p.Price:
			default:
				select {
				case <-lis:
				default:
				}
				select {
				case lis <- p.Price:
				default:
				}
			}
		}
	}
}

// NextBreach sync await for the next stop-loss breach
func (l *ListenersRepository) NextBreach(ctx context.Context) (*model.Notification, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("listenersRepository - NextBreach: %w", ctx.Err())
	case notify := <-l.breaches:
		return notify, nil
	}
}

func listener(ctx context.Context, cin chan float64, cout chan *model.Notification, notify *model.Notification) {
	var price float64
	var ok bool
	for {
		select {
		case <-ctx.Done():
			return
		case price, ok = <-cin:
			if !ok {
				return
			}
			if price <= notify.StopLoss {
				notify.Price = price
				select {
				case cout <- notify:
				case <-ctx.Done():
				}
				return
			}
		}
	}
}
