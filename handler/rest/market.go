package rest

import (
	"encoding/json"
	"net/http"

	"cdp/core"
	"cdp/handler/param"
	"cdp/handler/render"
	"cdp/handler/views"

	"github.com/go-chi/chi"
)

func registryHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, engine.Registry().Pairs())
	}
}

func constantsHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policy := engine.Policy()
		render.JSON(w, policy.Constants())
	}
}

func priceHandler(oracle core.IPriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		asset := chi.URLParam(r, "asset")

		round, err := oracle.Round(ctx, asset)
		if err != nil {
			render.Err(w, err)
			return
		}

		price, err := oracle.Price(ctx, asset)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset_id":   asset,
			"round":      round,
			"price":      views.NewBalance("", price),
			"updated_at": round.UpdatedAt,
		})
	}
}

func valueHandler(oracle core.IPriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount json.Number `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := param.Amount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		asset := chi.URLParam(r, "asset")
		usd, err := oracle.ValueOf(r.Context(), asset, amount)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.NewBalance("", usd))
	}
}

func amountForHandler(oracle core.IPriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			USD json.Number `json:"usd" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		usd, err := param.Amount(params.USD)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		asset := chi.URLParam(r, "asset")
		amount, err := oracle.AmountFor(r.Context(), asset, usd)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.NewBalance(asset, amount))
	}
}
