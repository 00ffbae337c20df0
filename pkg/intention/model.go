package intention

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// MaxTextLength is the limit in characters, applied after trimming.
const MaxTextLength = 100

// Intention is a single commitment for one time horizon. AnchorDate
// identifies which calendar range it belongs to; it is any instant
// inside that range, not necessarily the moment of creation.
type Intention struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	Scope       scope.Scope `json:"scope"`
	AnchorDate  time.Time   `json:"anchor_date"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	AIGenerated bool        `json:"ai_generated"`
	Theme       string      `json:"theme,omitempty"`
	Quote       string      `json:"quote,omitempty"`
	Font        string      `json:"font,omitempty"`
}

// ValidationError reports a rejected intention field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid intention %s: %s", e.Field, e.Reason)
}

// New builds a validated intention with a fresh id and timestamps.
func New(text string, s scope.Scope, anchor time.Time, aiGenerated bool) (*Intention, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return nil, &ValidationError{Field: "text", Reason: fmt.Sprintf("must be at most %d characters", MaxTextLength)}
	}

	now := time.Now().UTC()
	return &Intention{
		ID:          uuid.NewString(),
		Text:        text,
		Scope:       s,
		AnchorDate:  anchor,
		CreatedAt:   now,
		UpdatedAt:   now,
		AIGenerated: aiGenerated,
	}, nil
}
