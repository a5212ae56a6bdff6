package rest

import (
	"net/http"

	"gearbox/core"
	"gearbox/handler/param"
	"gearbox/handler/render"

	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
)

// adminOnly guards allow-list mutations: the operator id carried in the
// X-Operator-ID header must be on the configured admin list
func adminOnly(deps Deps, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !deps.System.IsAdmin(r.Header.Get("X-Operator-ID")) {
			render.Error(w, http.StatusForbidden, int(core.ErrOperationForbidden), core.ErrOperationForbidden)
			return
		}

		next(w, r)
	}
}

func allowTokenHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			AssetID string `json:"asset_id"`
			Symbol  string `json:"symbol"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}
		if params.AssetID == "" {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		token := core.AllowedToken{
			AssetID: params.AssetID,
			Symbol:  params.Symbol,
		}
		err := deps.DB.Tx(func(tx *db.DB) error {
			return deps.FilterStore.SaveToken(ctx, tx, &token)
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, token)
	}
}

func disallowTokenHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		err := deps.DB.Tx(func(tx *db.DB) error {
			return deps.FilterStore.DeleteToken(ctx, tx, chi.URLParam(r, "asset"))
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func allowContractHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			TargetID  string `json:"target_id"`
			AdapterID string `json:"adapter_id"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}
		if params.TargetID == "" || params.AdapterID == "" {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		entry := core.AllowedContract{
			TargetID:  params.TargetID,
			AdapterID: params.AdapterID,
		}
		err := deps.DB.Tx(func(tx *db.DB) error {
			return deps.FilterStore.SaveContract(ctx, tx, &entry)
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, entry)
	}
}

func disallowContractHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		err := deps.DB.Tx(func(tx *db.DB) error {
			return deps.FilterStore.DeleteContract(ctx, tx, chi.URLParam(r, "target"))
		})
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}
