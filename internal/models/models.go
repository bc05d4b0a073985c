// Package models defines the core data structures used throughout the application.
package models

// NotebookMeta describes a notebook as persisted in its meta.json.
type NotebookMeta struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	CreatedAt Timestamp         `json:"createdAt"`
	UpdatedAt Timestamp         `json:"updatedAt"`
	Settings  *NotebookSettings `json:"settings,omitempty"`
}

// NotebookSettings holds per-notebook overrides of the app defaults. Any
// subset of fields may be present; absent fields fall back to AppSettings.
type NotebookSettings struct {
	DefaultPenStyle    PenStyle `json:"defaultPenStyle,omitempty"`
	DefaultColor       string   `json:"defaultColor,omitempty"`
	DefaultStrokeWidth int      `json:"defaultStrokeWidth,omitempty"`
	DefaultGridType    GridType `json:"defaultGridType,omitempty"`
	LineSpacing        int      `json:"lineSpacing,omitempty"`
}

// PageMeta describes a single page of a notebook.
type PageMeta struct {
	ID         string    `json:"id"`
	NotebookID string    `json:"notebookId"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

// Stroke is one hand-drawn stroke on a page. The server stores strokes
// exactly as drawn; rendering is entirely a client concern.
type Stroke struct {
	Points    []StrokePoint `json:"points"`
	Color     string        `json:"color"`
	Width     float64       `json:"width"`
	PenStyle  PenStyle      `json:"penStyle"`
	CreatedAt Timestamp     `json:"createdAt"`
}

// StrokePoint is a sampled pen position. Pressure is in [0, 1].
type StrokePoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

// PageIndex maps page IDs to their owning notebook. It is the single
// global lookup table allowing page routes to omit the notebook ID.
type PageIndex = map[string]PageIndexEntry

// PageIndexEntry records which notebook a page belongs to.
type PageIndexEntry struct {
	NotebookID string `json:"notebookId"`
}
