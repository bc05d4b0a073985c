package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/callumalpass/inkwell-sub004/internal/models"
)

const (
	historyAuthorName  = "inkwell"
	historyAuthorEmail = "inkwell@localhost"
)

// HistoryService versions the data root with git (pure Go, no git binary
// dependency). Every mutation commits the resulting state, so any notebook
// can be inspected or recovered with stock git tooling. The service is
// optional; services hold a nil pointer when history is disabled.
type HistoryService struct {
	dataRoot string
	repo     *gogit.Repository
	mu       sync.Mutex
}

// NewHistoryService opens the repository at dataRoot, initializing it on
// first use.
func NewHistoryService(dataRoot string) (*HistoryService, error) {
	if err := EnsureDir(dataRoot); err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpen(dataRoot)
	if err != nil {
		// Not a repo yet — initialize.
		repo, err = gogit.PlainInit(dataRoot, false)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize git repo: %w", err)
		}
		cfg, err := repo.Config()
		if err != nil {
			return nil, fmt.Errorf("failed to read git config: %w", err)
		}
		cfg.User.Name = historyAuthorName
		cfg.User.Email = historyAuthorEmail
		if err := repo.SetConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to write git config: %w", err)
		}
		// Lock files hold flocks, not data; keep them out of history.
		ignore := filepath.Join(dataRoot, ".gitignore")
		if err := os.WriteFile(ignore, []byte(".lock\n.env\n"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write .gitignore: %w", err)
		}
	}

	return &HistoryService{dataRoot: dataRoot, repo: repo}, nil
}

// Record commits the current state of the data root with a message naming
// the operation that produced it. A clean worktree commits nothing.
func (h *HistoryService) Record(ctx context.Context, op, resource, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, err := h.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := w.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("failed to get worktree status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	now := time.Now()
	sig := &object.Signature{Name: historyAuthorName, Email: historyAuthorEmail, When: now}
	msg := fmt.Sprintf("%s %s %s", op, resource, id)
	if _, err := w.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig}); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Change is one recorded mutation of the data root.
type Change struct {
	Hash    string           `json:"hash"`
	Message string           `json:"message"`
	When    models.Timestamp `json:"when"`
}

// History returns the commits touching relPath (data-root relative),
// newest first, limited to n entries. relPath may name a directory, in
// which case any change beneath it counts.
func (h *HistoryService) History(ctx context.Context, relPath string, n int) ([]Change, error) {
	if n <= 0 || n > 1000 {
		n = 1000
	}

	opts := &gogit.LogOptions{}
	if relPath != "" && relPath != "." {
		opts.PathFilter = func(p string) bool {
			return p == relPath || strings.HasPrefix(p, relPath+"/")
		}
	}
	iter, err := h.repo.Log(opts)
	if err != nil {
		return nil, nil // no commits yet is not an error
	}
	defer iter.Close()

	changes := []Change{}
	for range n {
		c, err := iter.Next()
		if err != nil {
			break
		}
		subject, _, _ := strings.Cut(c.Message, "\n")
		changes = append(changes, Change{
			Hash:    c.Hash.String(),
			Message: subject,
			When:    models.TimestampOf(c.Author.When),
		})
	}
	return changes, nil
}

// recordHistory commits best-effort. History must never fail the write
// that triggered it, so failures only warn.
func recordHistory(ctx context.Context, h *HistoryService, op, resource, id string) {
	if h == nil {
		return
	}
	if err := h.Record(ctx, op, resource, id); err != nil {
		slog.Warn("failed to record history", "op", op, "resource", resource, "id", id, "err", err)
	}
}
