package gitsync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// Manager commits and pushes the snapshot directory after projection
// writes so other devices can pick the note up.
type Manager struct {
	RepoPath string
}

// NewManager creates a Manager for the repo at repoPath.
func NewManager(repoPath string) *Manager {
	return &Manager{RepoPath: repoPath}
}

// Sync stages everything, commits with the given message and pushes.
// A clean worktree and an up-to-date remote are both treated as
// success.
func (m *Manager) Sync(message string) error {
	r, err := git.PlainOpen(m.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to open repo: %w", err)
	}

	w, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	if _, err := w.Add("."); err != nil {
		return fmt.Errorf("failed to add changes: %w", err)
	}

	if message == "" {
		message = fmt.Sprintf("Snapshot sync: %s", time.Now().Format(time.RFC3339))
	}

	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Intent Pilot",
			Email: "pilot@intent.local",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	// go-git has no credential-helper support; use the default SSH
	// key when present and fall back to an unauthenticated push.
	home, _ := os.UserHomeDir()
	keyPath := filepath.Join(home, ".ssh", "id_rsa")

	auth, err := ssh.NewPublicKeysFromFile("git", keyPath, "")
	if err != nil {
		err = r.Push(&git.PushOptions{})
	} else {
		err = r.Push(&git.PushOptions{Auth: auth})
	}
	if err != nil {
		if err == git.NoErrAlreadyUpToDate {
			return nil
		}
		return fmt.Errorf("failed to push: %w", err)
	}

	return nil
}
