package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/callumalpass/inkwell-sub004/internal/models"
)

// NotebookService handles notebook business logic.
type NotebookService struct {
	store   *FileStore
	history *HistoryService // may be nil
}

// NewNotebookService creates a new notebook service.
func NewNotebookService(store *FileStore, history *HistoryService) *NotebookService {
	return &NotebookService{store: store, history: history}
}

// List returns every readable notebook, most recently updated first.
// Directories without a parseable meta.json are skipped, not fatal.
func (s *NotebookService) List(ctx context.Context) ([]*models.NotebookMeta, error) {
	root := s.store.NotebooksRoot()
	if err := EnsureDir(root); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list notebooks: %w", err)
	}

	notebooks := []*models.NotebookMeta{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := ReadJSON[models.NotebookMeta](s.store.NotebookMetaFile(e.Name()))
		if err != nil {
			return nil, err
		}
		if meta == nil {
			continue
		}
		notebooks = append(notebooks, meta)
	}

	// Timestamps carry a fixed-width encoding, so string order is
	// chronological order.
	slices.SortStableFunc(notebooks, func(a, b *models.NotebookMeta) int {
		return strings.Compare(string(b.UpdatedAt), string(a.UpdatedAt))
	})
	return notebooks, nil
}

// Get retrieves a notebook by ID. A missing or unreadable notebook yields
// (nil, nil).
func (s *NotebookService) Get(ctx context.Context, id string) (*models.NotebookMeta, error) {
	return ReadJSON[models.NotebookMeta](s.store.NotebookMetaFile(id))
}

// Create materializes a notebook from the caller-supplied metadata,
// persisting it verbatim. The caller owns ID uniqueness and timestamps.
func (s *NotebookService) Create(ctx context.Context, meta *models.NotebookMeta) error {
	if err := EnsureDir(s.store.NotebookDir(meta.ID)); err != nil {
		return err
	}
	if err := EnsureDir(s.store.PagesDir(meta.ID)); err != nil {
		return err
	}
	if err := WriteJSON(s.store.NotebookMetaFile(meta.ID), meta); err != nil {
		return err
	}
	recordHistory(ctx, s.history, "create", "notebook", meta.ID)
	return nil
}

// NotebookPatch is a partial notebook update. Nil fields are left
// unchanged; a non-nil Settings replaces the whole settings object.
type NotebookPatch struct {
	Title    *string
	Settings *models.NotebookSettings
}

// Update applies patch to an existing notebook and stamps its updatedAt.
// A missing notebook yields (nil, nil).
func (s *NotebookService) Update(ctx context.Context, id string, patch NotebookPatch) (*models.NotebookMeta, error) {
	meta, err := s.Get(ctx, id)
	if err != nil || meta == nil {
		return nil, err
	}
	if patch.Title != nil {
		meta.Title = *patch.Title
	}
	if patch.Settings != nil {
		meta.Settings = patch.Settings
	}
	meta.UpdatedAt = models.Now()
	if err := WriteJSON(s.store.NotebookMetaFile(id), meta); err != nil {
		return nil, err
	}
	recordHistory(ctx, s.history, "update", "notebook", id)
	return meta, nil
}

// Delete removes a notebook and everything in it, then drops its pages
// from the page index. It reports whether the notebook existed.
func (s *NotebookService) Delete(ctx context.Context, id string) (bool, error) {
	dir := s.store.NotebookDir(id)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	// Collect page IDs before the tree goes away. A notebook without a
	// pages directory is legal.
	var pageIDs []string
	entries, err := os.ReadDir(s.store.PagesDir(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to list pages of %s: %w", id, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			pageIDs = append(pageIDs, e.Name())
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("failed to delete notebook %s: %w", id, err)
	}

	if len(pageIDs) > 0 {
		err := WithLock(s.store.DataRoot(), func() error {
			idx, err := loadPageIndex(s.store)
			if err != nil {
				return err
			}
			for _, pid := range pageIDs {
				delete(idx, pid)
			}
			return savePageIndex(s.store, idx)
		})
		if err != nil {
			return false, err
		}
	}

	recordHistory(ctx, s.history, "delete", "notebook", id)
	return true, nil
}
