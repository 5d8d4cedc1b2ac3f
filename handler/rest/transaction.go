package rest

import (
	"net/http"
	"time"

	"yieldpool/core"
	"yieldpool/handler/param"
	"yieldpool/handler/render"
)

// response pool transactions, of one user when user is given
func transactionsHandler(poolSrv core.IPoolService, transactionStr core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User   string `json:"user"`
			Offset string `json:"offset"`
			Limit  int    `json:"limit" valid:"range(0|500)"`
		}

		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		limit := params.Limit
		if limit <= 0 {
			limit = 500
		}

		offsetTime, err := time.Parse(time.RFC3339Nano, params.Offset)
		if err != nil {
			offsetTime = time.Time{}
		}

		pool, err := poolSrv.Pool(ctx)
		if err != nil {
			render.Failed(w, err)
			return
		}

		var transactions []*core.Transaction
		if params.User != "" {
			transactions, err = transactionStr.ListByUser(ctx, pool.ID, params.User, offsetTime, limit)
		} else {
			transactions, err = transactionStr.List(ctx, pool.ID, offsetTime, limit)
		}

		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
