package server

import (
	"context"
	"net/http"

	"github.com/harshbaid-13/Cake-Manager/internal/handlers"
	applog "github.com/harshbaid-13/Cake-Manager/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/unlock", handlers.Unlock)

	gated := func(h http.HandlerFunc) http.Handler {
		return handlers.RequireUnlocked(h)
	}
	mux.Handle("/ingredients", gated(handlers.IngredientResource))
	mux.Handle("/recipes", gated(handlers.RecipeResource))
	mux.Handle("/orders", gated(handlers.OrderResource))
	mux.Handle("/expenses", gated(handlers.ExpenseResource))
	mux.Handle("/sessions", gated(handlers.SessionResource))
	mux.Handle("/dashboard", gated(handlers.Dashboard))

	return mux
}
