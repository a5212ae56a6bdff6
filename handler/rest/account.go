package rest

import (
	"net/http"
	"time"

	"gearbox/core"
	"gearbox/handler/param"
	"gearbox/handler/render"
	"gearbox/handler/views"

	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func accountHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		account, err := deps.AccountStore.FindActiveByOwner(ctx, chi.URLParam(r, "owner"))
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		pool, err := deps.PoolStore.Find(ctx, account.AssetID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view := views.Account{CreditAccount: *account}
		if view.TotalValue, err = deps.FilterService.CalcTotalValue(ctx, deps.DB, account); err != nil {
			render.BadRequest(w, err)
			return
		}
		if view.HealthFactor, err = deps.FilterService.CalcHealthFactor(ctx, deps.DB, account, pool); err != nil {
			render.BadRequest(w, err)
			return
		}
		if view.Balances, err = deps.BalanceStore.FindByHolder(ctx, deps.DB, account.Trace); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, view)
	}
}

func openAccountHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID         string          `json:"user_id"`
			AssetID        string          `json:"asset_id"`
			Amount         decimal.Decimal `json:"amount"`
			LeverageFactor int64           `json:"leverage_factor"`
			ReferralCode   string          `json:"referral_code"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		manager, ok := deps.Managers[params.AssetID]
		if !ok {
			render.NotFoundRequest(w, core.ErrPoolNotFound)
			return
		}

		var account *core.CreditAccount
		err := deps.DB.Tx(func(tx *db.DB) error {
			var err error
			account, err = manager.OpenCreditAccount(ctx, tx, params.UserID, params.Amount, params.LeverageFactor, params.ReferralCode)
			return err
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, account)
	}
}

func addCollateralHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		owner := chi.URLParam(r, "owner")

		var params struct {
			AssetID string          `json:"asset_id"`
			Amount  decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		manager, err := deps.managerFor(r, owner)
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		err = deps.DB.Tx(func(tx *db.DB) error {
			return manager.AddCollateral(ctx, tx, owner, params.AssetID, params.Amount)
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func repayHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		owner := chi.URLParam(r, "owner")

		var params struct {
			To string `json:"to"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}
		if params.To == "" {
			params.To = owner
		}

		manager, err := deps.managerFor(r, owner)
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		err = deps.DB.Tx(func(tx *db.DB) error {
			return manager.RepayCreditAccount(ctx, tx, owner, params.To)
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func swapHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		owner := chi.URLParam(r, "owner")

		var params struct {
			Target       string          `json:"target"`
			Side         string          `json:"side"`
			AmountIn     decimal.Decimal `json:"amount_in"`
			AmountOutMin decimal.Decimal `json:"amount_out_min"`
			AmountOut    decimal.Decimal `json:"amount_out"`
			AmountInMax  decimal.Decimal `json:"amount_in_max"`
			Path         []string        `json:"path"`
			To           string          `json:"to"`
			Deadline     int64           `json:"deadline"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		manager, err := deps.managerFor(r, owner)
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		order := core.SwapOrder{
			Side:         params.Side,
			AmountIn:     params.AmountIn,
			AmountOutMin: params.AmountOutMin,
			AmountOut:    params.AmountOut,
			AmountInMax:  params.AmountInMax,
			Path:         params.Path,
			To:           params.To,
			Deadline:     time.Unix(params.Deadline, 0),
		}

		var result *core.SwapResult
		err = deps.DB.Tx(func(tx *db.DB) error {
			var err error
			result, err = manager.ExecuteOrder(ctx, tx, owner, params.Target, &order)
			return err
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, result)
	}
}
