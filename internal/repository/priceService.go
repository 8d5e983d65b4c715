// Package repository price service
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/OVantsevich/Portfolio-Service/internal/cache"
	"github.com/OVantsevich/Portfolio-Service/internal/model"
	"github.com/OVantsevich/Portfolio-Service/internal/stats"

	"github.com/redis/go-redis/v9"
)

// key layout written by the external price feed
const (
	priceKeyPrefix   = "price:"
	historyKeyPrefix = "history:"
	cacheKeyPrefix   = "oracle:"
)

// PriceService price oracle reading the latest prices and return series published into redis by a feed
type PriceService struct {
	client redis.UniversalClient
	cache  cache.Cache
	ttl    time.Duration
}

// NewPriceServiceRepository price service repository constructor
func NewPriceServiceRepository(client redis.UniversalClient, c cache.Cache, ttl time.Duration) *PriceService {
	return &PriceService{client: client, cache: c, ttl: ttl}
}

// GetPrice current price of symbol
func (ps *PriceService) GetPrice(ctx context.Context, symbol string) (float64, error) {
	key := cacheKeyPrefix + priceKeyPrefix + symbol
	if b, ok, err := ps.cache.Get(ctx, key); err == nil && ok {
		if price, err := strconv.ParseFloat(string(b), 64); err == nil {
			return price, nil
		}
	}

	raw, err := ps.client.Get(ctx, priceKeyPrefix+symbol).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("priceService - GetPrice - %s: %w", symbol, model.ErrDataUnavailable)
	}
	if err != nil {
		return 0, fmt.Errorf("priceService - GetPrice - Get: %w", err)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("priceService - GetPrice - %s: bad price %q: %w", symbol, raw, model.ErrDataUnavailable)
	}

	_ = ps.cache.Set(ctx, key, []byte(raw), ps.ttl)
	return price, nil
}

// GetPrices current prices of symbols, symbols without a price are omitted
func (ps *PriceService) GetPrices(ctx context.Context, symbols []string) ([]*model.Price, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	keys := make([]string, len(symbols))
	for i, s := range symbols {
		keys[i] = priceKeyPrefix + s
	}
	values, err := ps.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("priceService - GetPrices - MGet: %w", err)
	}

	prices := make([]*model.Price, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price <= 0 {
			continue
		}
		prices = append(prices, &model.Price{Symbol: symbols[i], Price: price})
	}
	return prices, nil
}

// historyRecord wire format of a published return series
type historyRecord struct {
	Returns       []float64 `json:"returns"`
	Volatility    *float64  `json:"volatility,omitempty"`
	AverageReturn *float64  `json:"averageReturn,omitempty"`
}

// GetHistory historical return series of symbol, missing volatility or average are derived from returns
func (ps *PriceService) GetHistory(ctx context.Context, symbol string) (*model.History, error) {
	key := cacheKeyPrefix + historyKeyPrefix + symbol
	b, ok, err := ps.cache.Get(ctx, key)
	if err != nil || !ok {
		b, err = ps.client.Get(ctx, historyKeyPrefix+symbol).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("priceService - GetHistory - %s: %w", symbol, model.ErrDataUnavailable)
		}
		if err != nil {
			return nil, fmt.Errorf("priceService - GetHistory - Get: %w", err)
		}
		_ = ps.cache.Set(ctx, key, b, ps.ttl)
	}

	rec := historyRecord{}
	if err = json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("priceService - GetHistory - Unmarshal: %v: %w", err, model.ErrDataUnavailable)
	}
	h := &model.History{Symbol: symbol, Returns: rec.Returns}
	if rec.AverageReturn != nil {
		h.AverageReturn = *rec.AverageReturn
	} else {
		h.AverageReturn = stats.Mean(rec.Returns)
	}
	if rec.Volatility != nil {
		h.Volatility = *rec.Volatility
	} else {
		h.Volatility = stats.StdDev(rec.Returns)
	}
	if len(h.Returns) == 0 && rec.Volatility == nil {
		return nil, fmt.Errorf("priceService - GetHistory - %s: empty series: %w", symbol, model.ErrDataUnavailable)
	}
	return h, nil
}

// PublishPrice write a price the way the feed does, used by tooling and tests
func (ps *PriceService) PublishPrice(ctx context.Context, symbol string, price float64) error {
	err := ps.client.Set(ctx, priceKeyPrefix+symbol, strconv.FormatFloat(price, 'f', -1, 64), 0).Err()
	if err != nil {
		return fmt.Errorf("priceService - PublishPrice - Set: %w", err)
	}
	return ps.cache.Delete(ctx, cacheKeyPrefix+priceKeyPrefix+symbol)
}
