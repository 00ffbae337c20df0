package telegram

import (
	"testing"

	"github.com/mklimuk/intent-pilot/pkg/reminder"
)

func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		category string
	}{
		{"set daily", reminder.ActionSetIntention, reminder.CategoryDailyIntention},
		{"set weekly", reminder.ActionSetIntention, reminder.CategoryWeeklyIntention},
		{"skip monthly", reminder.ActionSkip, reminder.CategoryMonthlyIntention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := BuildCallback(tt.action, tt.category)
			action, category := ParseCallback(data)
			if action != tt.action {
				t.Errorf("action = %q, want %q", action, tt.action)
			}
			if category != tt.category {
				t.Errorf("category = %q, want %q", category, tt.category)
			}
		})
	}
}

func TestParseCallbackWithoutSeparator(t *testing.T) {
	action, category := ParseCallback("SOMETHING")
	if action != "SOMETHING" || category != "" {
		t.Errorf("got (%q, %q)", action, category)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCmd  string
		wantArgs string
	}{
		{
			name:     "set with text",
			input:    "/set Exercise more",
			wantCmd:  "/set",
			wantArgs: "Exercise more",
		},
		{
			name:     "set without text",
			input:    "/set",
			wantCmd:  "/set",
			wantArgs: "",
		},
		{
			name:     "suggest with scope",
			input:    "/suggest week",
			wantCmd:  "/suggest",
			wantArgs: "week",
		},
		{
			name:     "status",
			input:    "/status",
			wantCmd:  "/status",
			wantArgs: "",
		},
		{
			name:     "plain text",
			input:    "just some words",
			wantCmd:  "",
			wantArgs: "just some words",
		},
		{
			name:     "command prefix without space is not a command",
			input:    "/settle down",
			wantCmd:  "",
			wantArgs: "/settle down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseCommand(tt.input)
			if cmd != tt.wantCmd {
				t.Errorf("ParseCommand(%q) command = %q, want %q", tt.input, cmd, tt.wantCmd)
			}
			if args != tt.wantArgs {
				t.Errorf("ParseCommand(%q) args = %q, want %q", tt.input, args, tt.wantArgs)
			}
		})
	}
}
