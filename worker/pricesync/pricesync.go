package pricesync

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "pricesync_checkpoint"

// Worker price sync worker, pulls the off-chain feed onto store/price rows
type Worker struct {
	worker.BaseJob
	Config       *core.Config
	DB           *db.DB
	Property     property.Store
	PriceStore   core.IPriceStore
	BlockService core.IBlockService
	PriceService core.IPriceOracleService
}

// New new price sync worker
func New(cfg *core.Config,
	database *db.DB,
	propertyStore property.Store,
	priceStore core.IPriceStore,
	blockService core.IBlockService,
	priceService core.IPriceOracleService) *Worker {
	job := Worker{
		Config:       cfg,
		DB:           database,
		Property:     propertyStore,
		PriceStore:   priceStore,
		BlockService: blockService,
		PriceService: priceService,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 5s"
	job.Cron.AddFunc(spec, job.Tick)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricesync")

	currentBlock, err := w.BlockService.CurrentBlock(ctx)
	if err != nil {
		log.WithError(err).Errorln("blocks.CurrentBlock")
		return err
	}

	v, err := w.Property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	if v.Int64() >= currentBlock {
		return nil
	}

	tickers, err := w.PriceService.PullAllPriceTickers(ctx, time.Now())
	if err != nil {
		log.WithError(err).Errorln("prices.PullAllPriceTickers")
		return err
	}

	for _, ticker := range tickers {
		if !ticker.Price.IsPositive() {
			log.Infoln("skip invalid ticker:", ticker.Symbol, ticker.Price)
			continue
		}

		price := core.Price{
			AssetID:     ticker.AssetID,
			BlockNumber: currentBlock,
			Price:       ticker.Price,
		}

		if err := w.PriceStore.Save(ctx, w.DB, &price); err != nil {
			log.WithError(err).Errorln("prices.Save", ticker.AssetID)
			return err
		}
	}

	if err := w.Property.Save(ctx, checkpointKey, currentBlock); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
