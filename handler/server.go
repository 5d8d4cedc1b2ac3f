package handler

import (
	"net/http"

	"yieldpool/core"
	"yieldpool/handler/render"
	"yieldpool/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	poolService      core.IPoolService
	depositStore     core.IDepositStore
	transactionStore core.TransactionStore
	marketService    core.IMarketService
}

// New new server function
func New(
	poolSrv core.IPoolService,
	depositStr core.IDepositStore,
	transactionStr core.TransactionStore,
	marketSrv core.IMarketService,
) Server {
	return Server{
		poolService:      poolSrv,
		depositStore:     depositStr,
		transactionStore: transactionStr,
		marketService:    marketSrv,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Failed(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.poolService, s.depositStore, s.transactionStore, s.marketService))
	return r
}
