package rest

import (
	"net/http"
	"strings"

	"gearbox/core"
	"gearbox/handler/param"
	"gearbox/handler/render"

	"github.com/shopspring/decimal"
)

func quoteHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Side   string          `json:"side"`
			Amount decimal.Decimal `json:"amount"`
			Path   string          `json:"path"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		path := strings.Split(params.Path, ",")
		if len(path) < 2 {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		var (
			amounts []decimal.Decimal
			err     error
		)
		switch params.Side {
		case core.SwapSideExactOut:
			amounts, err = deps.DexService.GetAmountsIn(ctx, params.Amount, path)
		default:
			amounts, err = deps.DexService.GetAmountsOut(ctx, params.Amount, path)
		}
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"path":    path,
			"amounts": amounts,
		})
	}
}

func allowlistHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		contracts, err := deps.FilterStore.AllContracts(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		tokens, err := deps.FilterStore.AllTokens(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"contracts": contracts,
			"tokens":    tokens,
		})
	}
}

func transactionsHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User   string `json:"user"`
			FromID uint64 `json:"from_id"`
			Limit  int    `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := params.Limit
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		var (
			transactions []*core.Transaction
			err          error
		)
		if params.User != "" {
			transactions, err = deps.TransactionStore.ListByUser(ctx, params.User, limit)
		} else {
			transactions, err = deps.TransactionStore.List(ctx, params.FromID, limit)
		}
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
