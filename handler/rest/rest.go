package rest

import (
	"errors"
	"net/http"

	"gearbox/core"
	"gearbox/handler/render"

	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
)

// Deps everything the rest surface depends on
type Deps struct {
	DB               *db.DB
	System           *core.System
	PoolStore        core.IPoolStore
	AccountStore     core.ICreditAccountStore
	BalanceStore     core.IBalanceStore
	FilterStore      core.ICreditFilterStore
	TransactionStore core.ITransactionStore
	PoolService      core.IPoolService
	FilterService    core.ICreditFilterService
	DexService       core.IDexService
	Managers         map[string]core.ICreditManagerService
}

// Handle handle rest api request
func Handle(deps Deps) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pools", allPoolsHandler(deps))
	router.Get("/pools/{asset}", poolHandler(deps))
	router.Post("/pools/{asset}/deposits", depositHandler(deps))
	router.Post("/pools/{asset}/withdrawals", withdrawHandler(deps))

	router.Get("/accounts/{owner}", accountHandler(deps))
	router.Post("/accounts", openAccountHandler(deps))
	router.Post("/accounts/{owner}/collateral", addCollateralHandler(deps))
	router.Post("/accounts/{owner}/repay", repayHandler(deps))
	router.Post("/accounts/{owner}/swaps", swapHandler(deps))

	router.Get("/quotes", quoteHandler(deps))
	router.Get("/allowlist", allowlistHandler(deps))
	router.Post("/allowlist/tokens", adminOnly(deps, allowTokenHandler(deps)))
	router.Delete("/allowlist/tokens/{asset}", adminOnly(deps, disallowTokenHandler(deps)))
	router.Post("/allowlist/contracts", adminOnly(deps, allowContractHandler(deps)))
	router.Delete("/allowlist/contracts/{target}", adminOnly(deps, disallowContractHandler(deps)))
	router.Get("/transactions", transactionsHandler(deps))

	return router
}

// manager for the pool backing the owner's active account
func (deps Deps) managerFor(r *http.Request, owner string) (core.ICreditManagerService, error) {
	account, err := deps.AccountStore.FindActiveByOwner(r.Context(), owner)
	if err != nil {
		return nil, err
	}

	manager, ok := deps.Managers[account.AssetID]
	if !ok {
		return nil, core.ErrPoolNotFound
	}

	return manager, nil
}
