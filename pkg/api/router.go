package api

import (
	"net/http"

	"github.com/mklimuk/intent-pilot/pkg/ai"
	"github.com/mklimuk/intent-pilot/pkg/db"
	"github.com/mklimuk/intent-pilot/pkg/intention"
	"github.com/mklimuk/intent-pilot/pkg/notify"
	"github.com/mklimuk/intent-pilot/pkg/reminder"
	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// NewRouter creates a new HTTP router
func NewRouter(repo *db.Repository, resolver *intention.Resolver, dispatcher notify.Dispatcher, policy *reminder.Policy, aiClient ai.Generator, widget intention.WidgetSync, cal scope.Config) *http.ServeMux {
	mux := http.NewServeMux()

	h := &Handler{
		Repo:       repo,
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Policy:     policy,
		AI:         aiClient,
		Widget:     widget,
		Cal:        cal,
	}

	mux.HandleFunc("POST /intentions", h.HandleCreateIntention)
	mux.HandleFunc("GET /intentions", h.HandleListIntentions)
	mux.HandleFunc("GET /intentions/active", h.HandleGetActive)
	mux.HandleFunc("PATCH /intentions/{id}", h.HandleUpdateIntention)
	mux.HandleFunc("DELETE /intentions/{id}", h.HandleDeleteIntention)
	mux.HandleFunc("GET /settings", h.HandleGetSettings)
	mux.HandleFunc("PUT /settings", h.HandleUpdateSettings)
	mux.HandleFunc("POST /suggest", h.HandleSuggest)

	return mux
}
