package widget

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mklimuk/intent-pilot/pkg/gitsync"
	"github.com/mklimuk/intent-pilot/pkg/intention"
)

// SnapshotFile is the note name the widget reads.
const SnapshotFile = "intention.md"

// Frontmatter is the simplified projection of the active intention.
type Frontmatter struct {
	Active      bool   `yaml:"active"`
	ID          string `yaml:"id,omitempty"`
	Text        string `yaml:"text,omitempty"`
	Scope       string `yaml:"scope,omitempty"`
	ScopeDate   string `yaml:"scope_date,omitempty"`
	Quote       string `yaml:"quote,omitempty"`
	AIGenerated bool   `yaml:"ai_generated,omitempty"`
	Theme       string `yaml:"theme,omitempty"`
	Font        string `yaml:"font,omitempty"`
	Updated     string `yaml:"updated"`
}

// Writer projects the currently active intention into a markdown
// snapshot note with yaml frontmatter. It implements the widget-sync
// collaborator used by the response router and the API.
type Writer struct {
	dir      string
	resolver *intention.Resolver
	git      *gitsync.Manager
	now      func() time.Time
}

// NewWriter creates a snapshot writer. git may be nil when the
// snapshot directory is not a repository.
func NewWriter(dir string, resolver *intention.Resolver, git *gitsync.Manager) *Writer {
	return &Writer{dir: dir, resolver: resolver, git: git, now: time.Now}
}

// Refresh resolves the active intention and rewrites the snapshot
// note. With no active intention the note is written in its cleared
// form rather than deleted, so the widget can tell "nothing set"
// apart from "never synced".
func (w *Writer) Refresh(ctx context.Context) error {
	now := w.now()
	active, err := w.resolver.ResolveActive(ctx, now)
	if err != nil {
		return fmt.Errorf("resolve active intention: %w", err)
	}

	fm := Frontmatter{Updated: now.UTC().Format(time.RFC3339)}
	body := "No active intention.\n"
	message := "Clear intention snapshot"

	if active != nil {
		fm.Active = true
		fm.ID = active.ID
		fm.Text = active.Text
		fm.Scope = active.Scope.String()
		fm.ScopeDate = active.AnchorDate.UTC().Format("2006-01-02")
		fm.Quote = active.Quote
		fm.AIGenerated = active.AIGenerated
		fm.Theme = active.Theme
		fm.Font = active.Font
		body = "# " + active.Text + "\n"
		if active.Quote != "" {
			body += "\n> " + active.Quote + "\n"
		}
		message = "Update intention snapshot: " + active.Text
	}

	if err := w.write(fm, body); err != nil {
		return err
	}

	if w.git != nil {
		go func() {
			if err := w.git.Sync(message); err != nil {
				log.Printf("widget: git sync failed: %v", err)
			}
		}()
	}

	return nil
}

func (w *Writer) write(fm Frontmatter, body string) error {
	fmData, err := yaml.Marshal(fm)
	if err != nil {
		return fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	content := fmt.Sprintf("---\n%s---\n%s", string(fmData), body)

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.dir, SnapshotFile), []byte(content), 0644)
}
