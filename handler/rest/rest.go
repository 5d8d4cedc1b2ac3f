package rest

import (
	"errors"
	"net/http"

	"yieldpool/core"
	"yieldpool/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	poolSrv core.IPoolService,
	depositStr core.IDepositStore,
	transactionStr core.TransactionStore,
	marketSrv core.IMarketService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pool", poolHandler(poolSrv, depositStr))
	router.Get("/balances/{user}", balanceHandler(poolSrv))
	router.Get("/transactions", transactionsHandler(poolSrv, transactionStr))
	router.Get("/market", marketHandler(marketSrv))

	return router
}
