package liquidator

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/worker"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

const checkpointKey = "liquidator_checkpoint"

// Worker liquidation bot, force-closes accounts whose health dropped below 1
type Worker struct {
	worker.BaseJob
	Config        *core.Config
	DB            *db.DB
	Property      property.Store
	PoolStore     core.IPoolStore
	AccountStore  core.ICreditAccountStore
	FilterService core.ICreditFilterService
	BlockService  core.IBlockService
	Managers      map[string]core.ICreditManagerService

	attempted gcache.Cache
}

// New new liquidator worker
func New(cfg *core.Config,
	database *db.DB,
	propertyStore property.Store,
	poolStore core.IPoolStore,
	accountStore core.ICreditAccountStore,
	filterService core.ICreditFilterService,
	blockService core.IBlockService,
	managers map[string]core.ICreditManagerService) *Worker {
	job := Worker{
		Config:        cfg,
		DB:            database,
		Property:      propertyStore,
		PoolStore:     poolStore,
		AccountStore:  accountStore,
		FilterService: filterService,
		BlockService:  blockService,
		Managers:      managers,
		attempted:     gcache.New(1024).LRU().Expiration(time.Minute).Build(),
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.Tick)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "liquidator")

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

	accounts, err := w.AccountStore.AllActive(ctx)
	if err != nil {
		log.WithError(err).Errorln("accounts.AllActive")
		return err
	}

	for _, account := range accounts {
		if _, err := w.attempted.Get(account.Trace); err == nil {
			continue
		}

		w.scanAccount(ctx, account)
	}

	if err := w.Property.Save(ctx, checkpointKey, currentBlock); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

func (w *Worker) scanAccount(ctx context.Context, account *core.CreditAccount) {
	log := logger.FromContext(ctx).WithField("worker", "liquidator")

	pool, err := w.PoolStore.Find(ctx, account.AssetID)
	if err != nil {
		log.WithError(err).Errorln("pools.Find", account.AssetID)
		return
	}

	healthFactor, err := w.FilterService.CalcHealthFactor(ctx, w.DB, account, pool)
	if err != nil {
		log.WithError(err).Infoln("health check", account.Trace)
		return
	}

	if healthFactor.GreaterThanOrEqual(decimal.New(1, 0)) {
		return
	}

	manager, ok := w.Managers[account.AssetID]
	if !ok {
		log.Errorln("no manager wired for pool", account.AssetID)
		return
	}

	w.attempted.Set(account.Trace, struct{}{})

	err = w.DB.Tx(func(tx *db.DB) error {
		return manager.LiquidateCreditAccount(ctx, tx, w.Config.App.Liquidator, account.Owner, w.Config.App.Liquidator)
	})
	if err != nil {
		log.WithError(err).Infoln("liquidate", account.Trace)
		return
	}

	log.Infoln("liquidated", account.Trace, "health", healthFactor)
}
