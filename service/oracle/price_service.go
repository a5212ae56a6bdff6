package oracle

import (
	"context"
	"fmt"
	"time"

	"gearbox/core"
	"gearbox/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

const priceCacheExpire = 10 * time.Second

// PriceService price service backed by the price store, fronted by a small
// expiring cache
type PriceService struct {
	Config       *core.Config
	PriceStore   core.IPriceStore
	BlockService core.IBlockService

	cache gcache.Cache
}

// New new oracle price service
func New(config *core.Config, priceStore core.IPriceStore, blockSrv core.IBlockService) core.IPriceOracleService {
	return &PriceService{
		Config:       config,
		PriceStore:   priceStore,
		BlockService: blockSrv,
		cache:        gcache.New(256).LRU().Build(),
	}
}

// GetPrice current price of an asset; a missing or non-positive price is
// ErrUnpricedAsset, never a zero fallback
func (s *PriceService) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if v, err := s.cache.Get(assetID); err == nil {
		if price, ok := v.(decimal.Decimal); ok {
			return price, nil
		}
	}

	record, err := s.PriceStore.LatestByAsset(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	if !record.Price.IsPositive() {
		return decimal.Zero, core.ErrUnpricedAsset
	}

	_ = s.cache.SetWithExpire(assetID, record.Price, priceCacheExpire)

	return record.Price, nil
}

// PullPriceTicker pull price ticker
func (s *PriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.Config.PriceOracle.EndPoint, assetID, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	var price core.PriceTicker
	err = resthttp.ParseResponse(resp, &price)
	if err != nil {
		return nil, err
	}

	return &price, nil
}

// PullAllPriceTickers pull all price tickers
func (s *PriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/tickers?ts=%d", s.Config.PriceOracle.EndPoint, t.UTC().Unix())
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	var prices []*core.PriceTicker
	err = resthttp.ParseResponse(resp, &prices)
	if err != nil {
		return nil, err
	}

	return prices, nil
}
