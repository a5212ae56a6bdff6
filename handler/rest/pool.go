package rest

import (
	"net/http"

	"gearbox/core"
	"gearbox/handler/param"
	"gearbox/handler/render"
	"gearbox/handler/views"
	"gearbox/internal/gearbox"

	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func poolView(pool *core.Pool) *views.Pool {
	return &views.Pool{
		Pool:              *pool,
		BorrowRatePerYear: pool.BorrowRatePerBlock.Mul(gearbox.BlocksPerYear),
		SupplyRatePerYear: pool.SupplyRatePerBlock.Mul(gearbox.BlocksPerYear),
	}
}

func allPoolsHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pools, err := deps.PoolStore.All(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		poolViews := make([]*views.Pool, 0, len(pools))
		for _, pool := range pools {
			poolViews = append(poolViews, poolView(pool))
		}

		render.JSON(w, poolViews)
	}
}

func poolHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := deps.PoolStore.Find(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		render.JSON(w, poolView(pool))
	}
}

func depositHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID       string          `json:"user_id"`
			Amount       decimal.Decimal `json:"amount"`
			ReferralCode string          `json:"referral_code"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		pool, err := deps.PoolStore.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		err = deps.DB.Tx(func(tx *db.DB) error {
			return deps.PoolService.AddLiquidity(ctx, tx, pool, params.Amount, params.UserID, params.ReferralCode)
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, poolView(pool))
	}
}

func withdrawHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string          `json:"user_id"`
			Amount decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		pool, err := deps.PoolStore.Find(ctx, chi.URLParam(r, "asset"))
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		err = deps.DB.Tx(func(tx *db.DB) error {
			return deps.PoolService.RemoveLiquidity(ctx, tx, pool, params.Amount, params.UserID)
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, poolView(pool))
	}
}
