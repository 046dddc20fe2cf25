package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/finlog/finlog-backend/internal/handlers"
	"github.com/finlog/finlog-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	ush := handlers.NewUserHandlers(deps)
	csh := handlers.NewCategoryHandlers(deps)
	tsh := handlers.NewTransactionHandlers(deps)
	psh := handlers.NewPlaidHandlers(deps)

	m := middleware.NewMiddleware(deps.Firebase)
	r.Group(func(r chi.Router) {
		r.Use(m.FirebaseAuth)
		r.Mount("/users", ush.UserRoutes())
		r.Mount("/category", csh.CategoryRoutes())
		r.Mount("/transaction", tsh.TransactionRoutes())
		r.Mount("/plaid", psh.PlaidRoutes())
	})

	return r
}
