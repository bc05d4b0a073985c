// Handles app settings reads, updates, and the settings schema.

package handlers

import (
	"context"

	"github.com/invopop/jsonschema"

	"github.com/callumalpass/inkwell-sub004/internal/server/dto"
	"github.com/callumalpass/inkwell-sub004/internal/storage"
)

// settingsSchema is reflected once; the dto type is static for the
// lifetime of the process. The schema drives the settings form in the
// frontend, so its constraints must match what Validate enforces — both
// come from the same struct tags.
var settingsSchema = func() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	return r.Reflect(&dto.UpdateSettingsRequest{})
}()

// SettingsHandler handles app settings requests.
type SettingsHandler struct {
	Svc *Services
}

// GetSettings returns the current app settings with defaults filled in.
func (h *SettingsHandler) GetSettings(ctx context.Context, req *dto.GetSettingsRequest) (*dto.AppSettings, error) {
	settings, err := h.Svc.Settings.Get(ctx)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read settings", err)
	}
	return &settings, nil
}

// UpdateSettings merges a validated partial update over the current
// settings and returns the full merged record.
func (h *SettingsHandler) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.AppSettings, error) {
	settings, err := h.Svc.Settings.Update(ctx, storage.SettingsPatch{
		DefaultPenStyle:    req.DefaultPenStyle,
		DefaultColor:       req.DefaultColor,
		DefaultStrokeWidth: req.DefaultStrokeWidth,
		DefaultGridType:    req.DefaultGridType,
		DefaultViewMode:    req.DefaultViewMode,
		AutoTranscribe:     req.AutoTranscribe,
	})
	if err != nil {
		return nil, dto.InternalWithError("Failed to update settings", err)
	}
	return &settings, nil
}

// GetSettingsSchema returns the JSON Schema of the settings update payload.
func (h *SettingsHandler) GetSettingsSchema(ctx context.Context, req *dto.GetSettingsSchemaRequest) (*jsonschema.Schema, error) {
	return settingsSchema, nil
}
