package dto

import (
	"github.com/callumalpass/inkwell-sub004/internal/models"
)

//go:generate sh -c "cd ../../.. && go tool tygo generate"

// --- Health ---

// HealthRequest is a request for the health endpoint.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}

// --- Settings ---

// GetSettingsRequest is a request to read the app settings.
type GetSettingsRequest struct{}

// Validate is a no-op for GetSettingsRequest.
func (r *GetSettingsRequest) Validate() error {
	return nil
}

// UpdateSettingsRequest is a partial update of the app settings. Only the
// fields listed here are writable through the API; anything else in the
// body is rejected before validation runs. The jsonschema tags double as
// the source of the /api/settings/schema document, so the constraints
// enforced by Validate and the ones advertised to clients cannot drift
// apart.
type UpdateSettingsRequest struct {
	DefaultPenStyle    *models.PenStyle `json:"defaultPenStyle,omitempty" jsonschema:"enum=pressure,enum=uniform,enum=ballpoint"`
	DefaultColor       *string          `json:"defaultColor,omitempty" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	DefaultStrokeWidth *int             `json:"defaultStrokeWidth,omitempty" jsonschema:"enum=2,enum=3,enum=5,enum=8"`
	DefaultGridType    *models.GridType `json:"defaultGridType,omitempty" jsonschema:"enum=none,enum=lined,enum=grid,enum=dotgrid"`
	DefaultViewMode    *models.ViewMode `json:"defaultViewMode,omitempty" jsonschema:"enum=single,enum=scroll,enum=canvas"`
	AutoTranscribe     *bool            `json:"autoTranscribe,omitempty"`
}

// Validate validates every field present in the settings update.
func (r *UpdateSettingsRequest) Validate() error {
	if r.DefaultPenStyle != nil && !r.DefaultPenStyle.Valid() {
		return InvalidFormat("defaultPenStyle", "one of pressure, uniform, ballpoint")
	}
	if r.DefaultColor != nil && !models.ValidHexColor(*r.DefaultColor) {
		return InvalidFormat("defaultColor", "a #rrggbb hex color")
	}
	if r.DefaultStrokeWidth != nil && !models.ValidStrokeWidth(*r.DefaultStrokeWidth) {
		return InvalidFormat("defaultStrokeWidth", "one of 2, 3, 5, 8")
	}
	if r.DefaultGridType != nil && !r.DefaultGridType.Valid() {
		return InvalidFormat("defaultGridType", "one of none, lined, grid, dotgrid")
	}
	if r.DefaultViewMode != nil && !r.DefaultViewMode.Valid() {
		return InvalidFormat("defaultViewMode", "one of single, scroll, canvas")
	}
	return nil
}

// GetSettingsSchemaRequest is a request for the settings update JSON Schema.
type GetSettingsSchemaRequest struct{}

// Validate is a no-op for GetSettingsSchemaRequest.
func (r *GetSettingsSchemaRequest) Validate() error {
	return nil
}

// --- Notebooks ---

// ListNotebooksRequest is a request to list all notebooks.
type ListNotebooksRequest struct{}

// Validate is a no-op for ListNotebooksRequest.
func (r *ListNotebooksRequest) Validate() error {
	return nil
}

// CreateNotebookRequest is a request to create a notebook. The server
// generates the identifier and timestamps; a missing title falls back to
// a default.
type CreateNotebookRequest struct {
	Title    string                   `json:"title,omitempty"`
	Settings *models.NotebookSettings `json:"settings,omitempty"`
}

// Validate validates the create notebook request fields.
func (r *CreateNotebookRequest) Validate() error {
	return validateNotebookSettings(r.Settings)
}

// GetNotebookRequest is a request to get a notebook.
type GetNotebookRequest struct {
	ID string `path:"id" tstype:"-"`
}

// Validate validates the get notebook request fields.
func (r *GetNotebookRequest) Validate() error {
	return ValidateID("id", r.ID)
}

// UpdateNotebookRequest is a request to update a notebook. Title and
// settings are independently optional; absent fields are left untouched.
// A present settings object replaces the stored one wholesale.
type UpdateNotebookRequest struct {
	ID       string                   `path:"id" tstype:"-"`
	Title    *string                  `json:"title,omitempty"`
	Settings *models.NotebookSettings `json:"settings,omitempty"`
}

// Validate validates the update notebook request fields.
func (r *UpdateNotebookRequest) Validate() error {
	if err := ValidateID("id", r.ID); err != nil {
		return err
	}
	if r.Title != nil && *r.Title == "" {
		return BadRequest("title must not be empty")
	}
	return validateNotebookSettings(r.Settings)
}

// DeleteNotebookRequest is a request to delete a notebook.
type DeleteNotebookRequest struct {
	ID string `path:"id" tstype:"-"`
}

// Validate validates the delete notebook request fields.
func (r *DeleteNotebookRequest) Validate() error {
	return ValidateID("id", r.ID)
}

// NotebookHistoryRequest is a request for a notebook's change history.
type NotebookHistoryRequest struct {
	ID    string `path:"id" tstype:"-"`
	Limit int    `query:"limit" tstype:"-"`
}

// Validate validates the notebook history request fields.
func (r *NotebookHistoryRequest) Validate() error {
	if err := ValidateID("id", r.ID); err != nil {
		return err
	}
	if r.Limit < 0 {
		return BadRequest("limit must not be negative")
	}
	return nil
}

// --- Pages ---

// ListPagesRequest is a request to list a notebook's pages.
type ListPagesRequest struct {
	NotebookID string `path:"id" tstype:"-"`
}

// Validate validates the list pages request fields.
func (r *ListPagesRequest) Validate() error {
	return ValidateID("id", r.NotebookID)
}

// CreatePageRequest is a request to append a page to a notebook.
type CreatePageRequest struct {
	NotebookID string `path:"id" tstype:"-"`
}

// Validate validates the create page request fields.
func (r *CreatePageRequest) Validate() error {
	return ValidateID("id", r.NotebookID)
}

// GetPageRequest is a request to get a page.
type GetPageRequest struct {
	ID string `path:"id" tstype:"-"`
}

// Validate validates the get page request fields.
func (r *GetPageRequest) Validate() error {
	return ValidateID("id", r.ID)
}

// DeletePageRequest is a request to delete a page.
type DeletePageRequest struct {
	ID string `path:"id" tstype:"-"`
}

// Validate validates the delete page request fields.
func (r *DeletePageRequest) Validate() error {
	return ValidateID("id", r.ID)
}

// GetStrokesRequest is a request for a page's strokes.
type GetStrokesRequest struct {
	ID string `path:"id" tstype:"-"`
}

// Validate validates the get strokes request fields.
func (r *GetStrokesRequest) Validate() error {
	return ValidateID("id", r.ID)
}

// SaveStrokesRequest replaces a page's strokes wholesale. The canvas
// batches its edits client-side and periodically PUTs the full array, so
// there is no per-stroke mutation endpoint.
type SaveStrokesRequest struct {
	ID      string          `path:"id" tstype:"-"`
	Strokes []models.Stroke `json:"strokes"`
}

// Validate validates the save strokes request fields.
func (r *SaveStrokesRequest) Validate() error {
	if err := ValidateID("id", r.ID); err != nil {
		return err
	}
	if r.Strokes == nil {
		return MissingField("strokes")
	}
	for i := range r.Strokes {
		s := &r.Strokes[i]
		if s.Color != "" && !models.ValidHexColor(s.Color) {
			return InvalidFormat("strokes.color", "a #rrggbb hex color")
		}
		if s.PenStyle != "" && !s.PenStyle.Valid() {
			return InvalidFormat("strokes.penStyle", "one of pressure, uniform, ballpoint")
		}
		if s.Width < 0 {
			return BadRequest("stroke width must not be negative")
		}
	}
	return nil
}

// validateNotebookSettings checks the constrained fields of a per-notebook
// settings override. Zero values mean "not overridden" and pass.
func validateNotebookSettings(s *models.NotebookSettings) error {
	if s == nil {
		return nil
	}
	if s.DefaultPenStyle != "" && !s.DefaultPenStyle.Valid() {
		return InvalidFormat("settings.defaultPenStyle", "one of pressure, uniform, ballpoint")
	}
	if s.DefaultColor != "" && !models.ValidHexColor(s.DefaultColor) {
		return InvalidFormat("settings.defaultColor", "a #rrggbb hex color")
	}
	if s.DefaultStrokeWidth != 0 && !models.ValidStrokeWidth(s.DefaultStrokeWidth) {
		return InvalidFormat("settings.defaultStrokeWidth", "one of 2, 3, 5, 8")
	}
	if s.DefaultGridType != "" && !s.DefaultGridType.Valid() {
		return InvalidFormat("settings.defaultGridType", "one of none, lined, grid, dotgrid")
	}
	if s.LineSpacing < 0 {
		return BadRequest("settings.lineSpacing must not be negative")
	}
	return nil
}
