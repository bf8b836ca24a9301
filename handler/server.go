package handler

import (
	"errors"
	"net/http"

	"cdp/core"
	"cdp/handler/render"
	"cdp/handler/rest"

	"github.com/go-chi/chi"
)

// Server server
type Server struct {
	engine       core.IEngine
	savings      core.ISavingsService
	oracle       core.IPriceOracle
	transactions core.ITransactionStore
}

// New new server function
func New(
	engine core.IEngine,
	savings core.ISavingsService,
	oracle core.IPriceOracle,
	transactions core.ITransactionStore,
) Server {
	return Server{
		engine:       engine,
		savings:      savings,
		oracle:       oracle,
		transactions: transactions,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	r.Mount("/", rest.Handle(s.engine, s.savings, s.oracle, s.transactions))
	return r
}
