package storage

import (
	"context"
	"sync"

	"github.com/callumalpass/inkwell-sub004/internal/models"
)

// SettingsService manages the single global settings document. Reads merge
// the stored file over the built-in defaults, so a fresh install and a
// partially written file both yield a complete record. In-process writers
// are serialized by a mutex; the file itself is replaced atomically.
type SettingsService struct {
	store   *FileStore
	history *HistoryService // may be nil
	mu      sync.Mutex
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store *FileStore, history *HistoryService) *SettingsService {
	return &SettingsService{store: store, history: history}
}

// Get returns the stored settings with defaults filled in.
func (s *SettingsService) Get(ctx context.Context) (models.AppSettings, error) {
	settings := models.DefaultAppSettings()
	if _, err := ReadJSONInto(s.store.SettingsFile(), &settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// SettingsPatch is a partial settings update. Nil fields are left
// unchanged. Line spacing is deliberately absent: it is only adjustable
// per notebook.
type SettingsPatch struct {
	DefaultPenStyle    *models.PenStyle
	DefaultColor       *string
	DefaultStrokeWidth *int
	DefaultGridType    *models.GridType
	DefaultViewMode    *models.ViewMode
	AutoTranscribe     *bool
}

// Update merges patch into the current settings and persists the result.
// Field validation happens at the API boundary; the store trusts its
// input.
func (s *SettingsService) Update(ctx context.Context, patch SettingsPatch) (models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Get(ctx)
	if err != nil {
		return settings, err
	}
	if patch.DefaultPenStyle != nil {
		settings.DefaultPenStyle = *patch.DefaultPenStyle
	}
	if patch.DefaultColor != nil {
		settings.DefaultColor = *patch.DefaultColor
	}
	if patch.DefaultStrokeWidth != nil {
		settings.DefaultStrokeWidth = *patch.DefaultStrokeWidth
	}
	if patch.DefaultGridType != nil {
		settings.DefaultGridType = *patch.DefaultGridType
	}
	if patch.DefaultViewMode != nil {
		settings.DefaultViewMode = *patch.DefaultViewMode
	}
	if patch.AutoTranscribe != nil {
		settings.AutoTranscribe = *patch.AutoTranscribe
	}
	if err := WriteJSON(s.store.SettingsFile(), settings); err != nil {
		return settings, err
	}
	recordHistory(ctx, s.history, "update", "settings", "app")
	return settings, nil
}
