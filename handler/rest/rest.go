package rest

import (
	"errors"
	"net/http"

	"cdp/core"
	"cdp/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	engine core.IEngine,
	savings core.ISavingsService,
	oracle core.IPriceOracle,
	transactions core.ITransactionStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/registry", registryHandler(engine))
	router.Get("/constants", constantsHandler(engine))
	router.Get("/transactions", transactionsHandler(transactions))

	router.Route("/prices/{asset}", func(r chi.Router) {
		r.Get("/", priceHandler(oracle))
		r.Get("/value", valueHandler(oracle))
		r.Get("/amount-for", amountForHandler(oracle))
	})

	router.Route("/accounts/{address}", func(r chi.Router) {
		r.Get("/", accountHandler(engine))
		r.Get("/health-factor", healthFactorHandler(engine))
		r.Get("/collateral-value", collateralValueHandler(engine))
		r.Get("/savings", savingsHandler(engine, savings))
		r.Get("/borrow", borrowHandler(engine, savings))
	})

	router.Get("/pools", poolsHandler(engine, savings))

	router.Post("/collateral/deposit", depositCollateralHandler(engine))
	router.Post("/collateral/redeem", redeemCollateralHandler(engine))
	router.Post("/debt/mint", mintHandler(engine))
	router.Post("/debt/burn", burnHandler(engine))
	router.Post("/deposit-and-mint", depositAndMintHandler(engine))
	router.Post("/redeem-and-burn", redeemAndBurnHandler(engine))
	router.Post("/liquidate", liquidateHandler(engine))

	router.Post("/savings/deposit", savingsDepositHandler(savings))
	router.Post("/savings/withdraw", savingsWithdrawHandler(savings))
	router.Post("/borrows", borrowCreateHandler(savings))
	router.Post("/borrows/collateral", borrowCollateralHandler(savings))
	router.Post("/borrows/settle", settleHandler(engine, savings))
	router.Post("/borrows/liquidate", liquidateBorrowHandler(savings))

	return router
}
