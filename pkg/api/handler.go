package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mklimuk/intent-pilot/pkg/ai"
	"github.com/mklimuk/intent-pilot/pkg/db"
	"github.com/mklimuk/intent-pilot/pkg/intention"
	"github.com/mklimuk/intent-pilot/pkg/notify"
	"github.com/mklimuk/intent-pilot/pkg/reminder"
	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// Handler holds dependencies for API handlers
type Handler struct {
	Repo       *db.Repository
	Resolver   *intention.Resolver
	Dispatcher notify.Dispatcher
	Policy     *reminder.Policy
	AI         ai.Generator
	Widget     intention.WidgetSync
	Cal        scope.Config
}

// CreateIntentionRequest is the payload for creating an intention.
type CreateIntentionRequest struct {
	Text        string     `json:"text"`
	Scope       string     `json:"scope"`
	AnchorDate  *time.Time `json:"anchor_date,omitempty"`
	Quote       string     `json:"quote,omitempty"`
	Theme       string     `json:"theme,omitempty"`
	Font        string     `json:"font,omitempty"`
	AIGenerated bool       `json:"ai_generated,omitempty"`
}

// HandleCreateIntention handles POST /intentions
func (h *Handler) HandleCreateIntention(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s, err := scope.Parse(req.Scope)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	anchor := time.Now()
	if req.AnchorDate != nil {
		anchor = *req.AnchorDate
	}
	// Week and month intentions are anchored at their range start, the
	// same normalization the response router applies.
	if s != scope.Day {
		anchor = h.Cal.Start(s, anchor)
	}

	it, err := intention.New(req.Text, s, anchor, req.AIGenerated)
	if err != nil {
		writeIntentionError(w, err)
		return
	}
	it.Quote = req.Quote
	it.Theme = req.Theme
	it.Font = req.Font

	if err := h.Repo.Create(r.Context(), it); err != nil {
		writeIntentionError(w, err)
		return
	}

	h.refreshWidget(r.Context())

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(it)
}

// HandleListIntentions handles GET /intentions. Without a scope query
// parameter all scopes are returned.
func (h *Handler) HandleListIntentions(w http.ResponseWriter, r *http.Request) {
	scopes := []scope.Scope{scope.Day, scope.Week, scope.Month}
	if q := r.URL.Query().Get("scope"); q != "" {
		s, err := scope.Parse(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		scopes = []scope.Scope{s}
	}

	out := []intention.Intention{}
	for _, s := range scopes {
		items, err := h.Repo.FindAll(r.Context(), s)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to list intentions: %v", err), http.StatusInternalServerError)
			return
		}
		out = append(out, items...)
	}

	json.NewEncoder(w).Encode(map[string]any{"intentions": out})
}

// HandleGetActive handles GET /intentions/active
func (h *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.Resolver.ResolveActive(r.Context(), time.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to resolve active intention: %v", err), http.StatusInternalServerError)
		return
	}
	if active == nil {
		http.Error(w, "No active intention", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(active)
}

// UpdateIntentionRequest is the payload for PATCH /intentions/{id}.
// Absent fields are left untouched.
type UpdateIntentionRequest struct {
	Text  *string `json:"text,omitempty"`
	Quote *string `json:"quote,omitempty"`
	Theme *string `json:"theme,omitempty"`
	Font  *string `json:"font,omitempty"`
}

// HandleUpdateIntention handles PATCH /intentions/{id}
func (h *Handler) HandleUpdateIntention(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpdateIntentionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	it, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeIntentionError(w, err)
		return
	}

	if req.Text != nil {
		// Re-run the text rules through the constructor rather than
		// duplicating them here.
		validated, err := intention.New(*req.Text, it.Scope, it.AnchorDate, it.AIGenerated)
		if err != nil {
			writeIntentionError(w, err)
			return
		}
		it.Text = validated.Text
	}
	if req.Quote != nil {
		it.Quote = *req.Quote
	}
	if req.Theme != nil {
		it.Theme = *req.Theme
	}
	if req.Font != nil {
		it.Font = *req.Font
	}

	if err := h.Repo.Update(r.Context(), it); err != nil {
		writeIntentionError(w, err)
		return
	}

	h.refreshWidget(r.Context())
	json.NewEncoder(w).Encode(it)
}

// HandleDeleteIntention handles DELETE /intentions/{id}
func (h *Handler) HandleDeleteIntention(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeIntentionError(w, err)
		return
	}
	h.refreshWidget(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetSettings handles GET /settings
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.LoadSettings(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load settings: %v", err), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(s)
}

// HandleUpdateSettings handles PUT /settings. The stored settings are
// replaced and the whole reminder schedule is rebuilt: cancel
// everything, then install the new trigger set. A trigger the
// dispatcher rejects is logged and skipped; the rest still install.
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s reminder.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if _, err := reminder.ParseFrequency(string(s.Frequency)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.SaveSettings(r.Context(), s); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save settings: %v", err), http.StatusInternalServerError)
		return
	}

	triggers := h.Policy.BuildSchedule(s)
	h.Dispatcher.CancelAll()
	installed := 0
	for _, t := range triggers {
		if err := h.Dispatcher.Schedule(t); err != nil {
			log.Printf("api: trigger %s rejected: %v", t.ID, err)
			continue
		}
		installed++
	}

	json.NewEncoder(w).Encode(map[string]any{
		"settings":  s,
		"triggers":  triggers,
		"installed": installed,
	})
}

// SuggestRequest is the payload for POST /suggest.
type SuggestRequest struct {
	Scope string `json:"scope"`
}

// HandleSuggest handles POST /suggest
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if h.AI == nil {
		http.Error(w, "Suggestions are not configured", http.StatusServiceUnavailable)
		return
	}

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	s, err := scope.Parse(req.Scope)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Give the model the few latest intentions of this scope so it
	// does not suggest a repeat.
	var recent []string
	if items, err := h.Repo.FindAll(r.Context(), s); err == nil {
		for i, it := range items {
			if i == 5 {
				break
			}
			recent = append(recent, it.Text)
		}
	}

	suggestion, err := h.AI.GenerateText(r.Context(), ai.SuggestIntentionPrompt(s.String(), recent))
	if err != nil {
		http.Error(w, fmt.Sprintf("Suggestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"scope": s.String(), "suggestion": suggestion})
}

func (h *Handler) refreshWidget(ctx context.Context) {
	if h.Widget == nil {
		return
	}
	if err := h.Widget.Refresh(ctx); err != nil {
		log.Printf("api: widget refresh failed: %v", err)
	}
}

func writeIntentionError(w http.ResponseWriter, err error) {
	var verr *intention.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, intention.ErrDuplicateRange):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, intention.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, fmt.Sprintf("Storage error: %v", err), http.StatusInternalServerError)
	}
}
