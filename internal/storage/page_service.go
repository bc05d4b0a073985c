package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/maruel/ksid"

	"github.com/callumalpass/inkwell-sub004/internal/models"
)

// PageService handles page business logic. Pages always belong to a
// notebook on disk, but the API addresses them by page ID alone; the page
// index provides the reverse mapping.
type PageService struct {
	store   *FileStore
	history *HistoryService // may be nil
}

// NewPageService creates a new page service.
func NewPageService(store *FileStore, history *HistoryService) *PageService {
	return &PageService{store: store, history: history}
}

// Create adds a new page to the notebook and registers it in the page
// index. A missing notebook yields (nil, nil).
func (s *PageService) Create(ctx context.Context, notebookID string) (*models.PageMeta, error) {
	notebook, err := ReadJSON[models.NotebookMeta](s.store.NotebookMetaFile(notebookID))
	if err != nil || notebook == nil {
		return nil, err
	}

	now := models.Now()
	page := &models.PageMeta{
		ID:         ksid.NewID().String(),
		NotebookID: notebookID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := EnsureDir(s.store.PageDir(notebookID, page.ID)); err != nil {
		return nil, err
	}
	if err := WriteJSON(s.store.PageMetaFile(notebookID, page.ID), page); err != nil {
		return nil, err
	}
	if err := WriteJSON(s.store.StrokesFile(notebookID, page.ID), []models.Stroke{}); err != nil {
		return nil, err
	}

	err = WithLock(s.store.DataRoot(), func() error {
		idx, err := loadPageIndex(s.store)
		if err != nil {
			return err
		}
		idx[page.ID] = models.PageIndexEntry{NotebookID: notebookID}
		return savePageIndex(s.store, idx)
	})
	if err != nil {
		return nil, err
	}

	if err := s.touchNotebook(notebook, now); err != nil {
		return nil, err
	}
	recordHistory(ctx, s.history, "create", "page", page.ID)
	return page, nil
}

// List returns the pages of a notebook in creation order. Entries without
// a parseable meta.json are skipped.
func (s *PageService) List(ctx context.Context, notebookID string) ([]*models.PageMeta, error) {
	entries, err := os.ReadDir(s.store.PagesDir(notebookID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*models.PageMeta{}, nil
		}
		return nil, fmt.Errorf("failed to list pages of %s: %w", notebookID, err)
	}

	pages := []*models.PageMeta{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := ReadJSON[models.PageMeta](s.store.PageMetaFile(notebookID, e.Name()))
		if err != nil {
			return nil, err
		}
		if meta == nil {
			continue
		}
		pages = append(pages, meta)
	}

	slices.SortStableFunc(pages, func(a, b *models.PageMeta) int {
		return strings.Compare(string(a.CreatedAt), string(b.CreatedAt))
	})
	return pages, nil
}

// Get retrieves a page by ID, resolving its notebook through the page
// index. An unknown or unreadable page yields (nil, nil).
func (s *PageService) Get(ctx context.Context, pageID string) (*models.PageMeta, error) {
	notebookID, err := s.resolve(pageID)
	if err != nil || notebookID == "" {
		return nil, err
	}
	return ReadJSON[models.PageMeta](s.store.PageMetaFile(notebookID, pageID))
}

// Delete removes a page and its index entry, reporting whether the page
// existed.
func (s *PageService) Delete(ctx context.Context, pageID string) (bool, error) {
	notebookID, err := s.resolve(pageID)
	if err != nil {
		return false, err
	}
	if notebookID == "" {
		return false, nil
	}

	if err := os.RemoveAll(s.store.PageDir(notebookID, pageID)); err != nil {
		return false, fmt.Errorf("failed to delete page %s: %w", pageID, err)
	}

	err = WithLock(s.store.DataRoot(), func() error {
		idx, err := loadPageIndex(s.store)
		if err != nil {
			return err
		}
		delete(idx, pageID)
		return savePageIndex(s.store, idx)
	})
	if err != nil {
		return false, err
	}

	// Deleting a page counts as touching the notebook.
	now := models.Now()
	if notebook, err := ReadJSON[models.NotebookMeta](s.store.NotebookMetaFile(notebookID)); err != nil {
		return false, err
	} else if notebook != nil {
		if err := s.touchNotebook(notebook, now); err != nil {
			return false, err
		}
	}

	recordHistory(ctx, s.history, "delete", "page", pageID)
	return true, nil
}

// Strokes returns the stroke data of a page. The second result reports
// whether the page exists; a page whose strokes file is missing or damaged
// yields an empty slice, never an error.
func (s *PageService) Strokes(ctx context.Context, pageID string) ([]models.Stroke, bool, error) {
	notebookID, err := s.resolve(pageID)
	if err != nil || notebookID == "" {
		return nil, false, err
	}
	strokes := []models.Stroke{}
	if _, err := ReadJSONInto(s.store.StrokesFile(notebookID, pageID), &strokes); err != nil {
		return nil, true, err
	}
	return strokes, true, nil
}

// SaveStrokes replaces the whole stroke array of a page. The client owns
// batching; the server persists exactly what it is handed. Reports whether
// the page exists; a page the index knows but whose metadata is gone is
// treated as absent rather than written into a half-deleted directory.
func (s *PageService) SaveStrokes(ctx context.Context, pageID string, strokes []models.Stroke) (bool, error) {
	notebookID, err := s.resolve(pageID)
	if err != nil {
		return false, err
	}
	if notebookID == "" {
		return false, nil
	}
	page, err := ReadJSON[models.PageMeta](s.store.PageMetaFile(notebookID, pageID))
	if err != nil || page == nil {
		return false, err
	}

	if err := WriteJSON(s.store.StrokesFile(notebookID, pageID), strokes); err != nil {
		return false, err
	}

	now := models.Now()
	page.UpdatedAt = now
	if err := WriteJSON(s.store.PageMetaFile(notebookID, pageID), page); err != nil {
		return false, err
	}
	if notebook, err := ReadJSON[models.NotebookMeta](s.store.NotebookMetaFile(notebookID)); err != nil {
		return false, err
	} else if notebook != nil {
		if err := s.touchNotebook(notebook, now); err != nil {
			return false, err
		}
	}

	recordHistory(ctx, s.history, "update", "strokes", pageID)
	return true, nil
}

// resolve maps a page ID to its owning notebook via the page index. An
// unknown page yields "".
func (s *PageService) resolve(pageID string) (string, error) {
	idx, err := loadPageIndex(s.store)
	if err != nil {
		return "", err
	}
	return idx[pageID].NotebookID, nil
}

func (s *PageService) touchNotebook(notebook *models.NotebookMeta, now models.Timestamp) error {
	notebook.UpdatedAt = now
	return WriteJSON(s.store.NotebookMetaFile(notebook.ID), notebook)
}
