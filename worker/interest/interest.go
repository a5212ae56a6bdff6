package interest

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Worker interest worker, accrues every pool as blocks elapse
type Worker struct {
	worker.BaseJob
	Config      *core.Config
	DB          *db.DB
	PoolStore   core.IPoolStore
	PoolService core.IPoolService
}

// New new interest worker
func New(cfg *core.Config,
	database *db.DB,
	poolStore core.IPoolStore,
	poolService core.IPoolService) *Worker {
	job := Worker{
		Config:      cfg,
		DB:          database,
		PoolStore:   poolStore,
		PoolService: poolService,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1s"
	job.Cron.AddFunc(spec, job.Tick)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	pools, err := w.PoolStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("pools.All")
		return err
	}

	for _, pool := range pools {
		pool := pool
		err := w.DB.Tx(func(tx *db.DB) error {
			if err := w.PoolService.AccrueInterest(ctx, tx, pool, time.Now()); err != nil {
				return err
			}

			return w.PoolStore.Update(ctx, tx, pool)
		})

		if err != nil {
			// conflicts resolve themselves on the next tick
			log.WithError(err).Infoln("accrue", pool.AssetID)
		}
	}

	return nil
}
