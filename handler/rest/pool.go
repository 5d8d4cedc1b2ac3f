package rest

import (
	"net/http"

	"yieldpool/core"
	"yieldpool/handler/render"
	"yieldpool/handler/views"
	"yieldpool/internal/compound"

	"github.com/go-chi/chi"
)

func poolHandler(poolSrv core.IPoolService, depositStr core.IDepositStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pool, err := poolSrv.Pool(ctx)
		if err != nil {
			render.Failed(w, err)
			return
		}

		excess, err := poolSrv.Excess(ctx)
		if err != nil {
			render.Failed(w, err)
			return
		}

		depositors, err := depositStr.CountOfDepositors(ctx, pool.ID)
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, views.Pool{
			Pool:       *pool,
			Excess:     excess,
			Depositors: depositors,
		})
	}
}

func balanceHandler(poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := chi.URLParam(r, "user")

		principal, err := poolSrv.BalanceOf(r.Context(), user)
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, views.Balance{
			UserID:    user,
			Principal: principal,
		})
	}
}

func marketHandler(marketSrv core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market, err := marketSrv.Market(r.Context())
		if err != nil {
			render.Failed(w, err)
			return
		}

		render.JSON(w, views.Market{
			Market:    *market,
			SupplyAPY: compound.CurSupplyRate(market),
			BorrowAPY: compound.CurBorrowRate(market),
		})
	}
}
