package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"cdp/core"
	"cdp/handler/param"
	"cdp/handler/render"
	"cdp/handler/views"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
)

func accountHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := engine.Account(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.AccountView(engine.Registry().Assets(), snapshot))
	}
}

func healthFactorHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hf, err := engine.HealthFactor(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.NewBalance("", hf))
	}
}

func collateralValueHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usd, err := engine.CollateralValue(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.NewBalance("", usd))
	}
}

type collateralRequest struct {
	Account string      `json:"account" valid:"required"`
	Asset   string      `json:"asset" valid:"required"`
	Amount  json.Number `json:"amount" valid:"required"`
}

func depositCollateralHandler(engine core.IEngine) http.HandlerFunc {
	return collateralHandler(engine.DepositCollateral)
}

func redeemCollateralHandler(engine core.IEngine) http.HandlerFunc {
	return collateralHandler(engine.RedeemCollateral)
}

func collateralHandler(fn func(ctx context.Context, account, asset string, amount *uint256.Int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params collateralRequest
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := param.Amount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := fn(r.Context(), params.Account, params.Asset, amount); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

type debtRequest struct {
	Account string      `json:"account" valid:"required"`
	Amount  json.Number `json:"amount" valid:"required"`
}

func mintHandler(engine core.IEngine) http.HandlerFunc {
	return debtHandler(engine.MintDebt)
}

func burnHandler(engine core.IEngine) http.HandlerFunc {
	return debtHandler(engine.BurnDebt)
}

func debtHandler(fn func(ctx context.Context, account string, amount *uint256.Int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params debtRequest
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := param.Amount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := fn(r.Context(), params.Account, amount); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

type pairRequest struct {
	Account    string      `json:"account" valid:"required"`
	Asset      string      `json:"asset" valid:"required"`
	Collateral json.Number `json:"collateral" valid:"required"`
	Debt       json.Number `json:"debt" valid:"required"`
}

func depositAndMintHandler(engine core.IEngine) http.HandlerFunc {
	return pairHandler(engine.DepositAndMint)
}

func redeemAndBurnHandler(engine core.IEngine) http.HandlerFunc {
	return pairHandler(engine.RedeemAndBurn)
}

func pairHandler(fn func(ctx context.Context, account, asset string, collateral, debt *uint256.Int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params pairRequest
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		collateral, err := param.Amount(params.Collateral)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		debt, err := param.Amount(params.Debt)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := fn(r.Context(), params.Account, params.Asset, collateral, debt); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func liquidateHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Liquidator  string      `json:"liquidator" valid:"required"`
			Asset       string      `json:"asset" valid:"required"`
			Target      string      `json:"target" valid:"required"`
			DebtToCover json.Number `json:"debt_to_cover" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		debt, err := param.Amount(params.DebtToCover)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := engine.Liquidate(r.Context(), params.Liquidator, params.Asset, params.Target, debt); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}
