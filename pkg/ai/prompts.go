package ai

import (
	"fmt"
	"strings"
)

// SuggestIntentionPrompt returns a prompt asking for one intention
// suggestion for the given time horizon. recent lists the user's
// latest intentions so the suggestion does not repeat them.
func SuggestIntentionPrompt(scopeName string, recent []string) string {
	history := "(none yet)"
	if len(recent) > 0 {
		var sb strings.Builder
		for _, r := range recent {
			sb.WriteString("- ")
			sb.WriteString(r)
			sb.WriteString("\n")
		}
		history = sb.String()
	}

	return fmt.Sprintf(`
You help people pick a single intention for a time horizon.

Horizon: one %s
Recent intentions:
%s

Suggest ONE new intention for the coming %s. Rules:
1. At most 100 characters.
2. Actionable and positive.
3. Do not repeat a recent intention.
4. Answer with the intention text only, no quotes, no explanation.
`, scopeName, history, scopeName)
}
