package rest

import (
	"net/http"

	"cdp/core"
	"cdp/handler/param"
	"cdp/handler/render"
)

// response account transactions
func transactionsHandler(transactionStr core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Account string `json:"account" valid:"required"`
			Offset  string `json:"offset"`
			Limit   int    `json:"limit"`
		}

		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		limit := params.Limit
		if limit <= 0 {
			limit = 500
		}

		transactions, e := transactionStr.ListByAccount(ctx, params.Account, param.Time(params.Offset), limit)
		if e != nil {
			render.Err(w, e)
			return
		}

		if transactions == nil {
			transactions = []*core.Transaction{}
		}

		render.JSON(w, transactions)
	}
}
