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

func savingsHandler(engine core.IEngine, savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		position, err := savings.SavingsPosition(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.SavingsView(engine.Policy().SavingsAsset, position))
	}
}

func borrowHandler(engine core.IEngine, savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		address := chi.URLParam(r, "address")

		position, err := savings.BorrowPosition(ctx, address)
		if err != nil {
			render.Err(w, err)
			return
		}

		view := views.BorrowView(engine.Registry().Assets(), engine.Policy().SavingsAsset, position)
		if position.Open() {
			hf, err := savings.BorrowHealthFactor(ctx, address)
			if err != nil {
				render.Err(w, err)
				return
			}

			b := views.NewBalance("", hf)
			view.HealthFactor = &b
		}

		render.JSON(w, view)
	}
}

func poolsHandler(engine core.IEngine, savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := savings.Status(r.Context())
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.PoolsView(engine.Registry().Assets(), engine.Policy().SavingsAsset, status))
	}
}

func savingsDepositHandler(savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string      `json:"account" valid:"required"`
			Amount  json.Number `json:"amount" valid:"required"`
			Lock    json.Number `json:"lock" valid:"required"`
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

		lock, err := param.Duration(params.Lock)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := savings.Deposit(r.Context(), params.Account, amount, lock); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func savingsWithdrawHandler(savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string      `json:"account" valid:"required"`
			Amount  json.Number `json:"amount" valid:"required"`
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

		yield, err := savings.Withdraw(r.Context(), params.Account, amount)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{
			"yield": views.NewBalance("", yield),
		})
	}
}

func borrowCreateHandler(savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account    string      `json:"account" valid:"required"`
			Asset      string      `json:"asset" valid:"required"`
			Collateral json.Number `json:"collateral" valid:"required"`
			Amount     json.Number `json:"amount" valid:"required"`
			Lock       json.Number `json:"lock" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		collateral, err := param.Amount(params.Collateral)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := param.Amount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		lock, err := param.Duration(params.Lock)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		net, err := savings.Borrow(r.Context(), params.Account, params.Asset, collateral, amount, lock)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{
			"disbursed": views.NewBalance("", net),
		})
	}
}

func borrowCollateralHandler(savings core.ISavingsService) http.HandlerFunc {
	return collateralHandler(savings.AddCollateral)
}

func settleHandler(engine core.IEngine, savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string `json:"account" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		returned, err := savings.Settle(r.Context(), params.Account)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, render.H{
			"returned": views.Balances(engine.Registry().Assets(), returned),
		})
	}
}

func liquidateBorrowHandler(savings core.ISavingsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Liquidator string `json:"liquidator" valid:"required"`
			Target     string `json:"target" valid:"required"`
			Asset      string `json:"asset" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := savings.LiquidateBorrow(r.Context(), params.Liquidator, params.Target, params.Asset); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}
