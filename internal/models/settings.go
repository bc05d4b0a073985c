package models

import "regexp"

// AppSettings is the single global settings document. Every field has a
// built-in default so a fresh or partially written settings file always
// yields a complete record.
type AppSettings struct {
	DefaultPenStyle    PenStyle `json:"defaultPenStyle"`
	DefaultColor       string   `json:"defaultColor"`
	DefaultStrokeWidth int      `json:"defaultStrokeWidth"`
	DefaultGridType    GridType `json:"defaultGridType"`
	LineSpacing        int      `json:"lineSpacing"`
	DefaultViewMode    ViewMode `json:"defaultViewMode"`
	AutoTranscribe     bool     `json:"autoTranscribe"`
}

// DefaultAppSettings returns the settings used when nothing has been stored.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		DefaultPenStyle:    PenStylePressure,
		DefaultColor:       "#000000",
		DefaultStrokeWidth: 3,
		DefaultGridType:    GridTypeNone,
		LineSpacing:        40,
		DefaultViewMode:    ViewModeSingle,
		AutoTranscribe:     false,
	}
}

// PenStyle selects how stroke width responds to pen input.
type PenStyle string

const (
	// PenStylePressure varies stroke width with pen pressure.
	PenStylePressure PenStyle = "pressure"
	// PenStyleUniform draws constant-width strokes.
	PenStyleUniform PenStyle = "uniform"
	// PenStyleBallpoint mimics a ballpoint pen with slight pressure response.
	PenStyleBallpoint PenStyle = "ballpoint"
)

// Valid reports whether p is a known pen style.
func (p PenStyle) Valid() bool {
	switch p {
	case PenStylePressure, PenStyleUniform, PenStyleBallpoint:
		return true
	}
	return false
}

// GridType selects the page background ruling.
type GridType string

const (
	// GridTypeNone is a blank page.
	GridTypeNone GridType = "none"
	// GridTypeLined draws horizontal rules.
	GridTypeLined GridType = "lined"
	// GridTypeGrid draws a square grid.
	GridTypeGrid GridType = "grid"
	// GridTypeDotGrid draws a dot grid.
	GridTypeDotGrid GridType = "dotgrid"
)

// Valid reports whether g is a known grid type.
func (g GridType) Valid() bool {
	switch g {
	case GridTypeNone, GridTypeLined, GridTypeGrid, GridTypeDotGrid:
		return true
	}
	return false
}

// ViewMode selects how pages are presented.
type ViewMode string

const (
	// ViewModeSingle shows one page at a time.
	ViewModeSingle ViewMode = "single"
	// ViewModeScroll shows pages as a continuous vertical scroll.
	ViewModeScroll ViewMode = "scroll"
	// ViewModeCanvas shows pages on a free-form canvas.
	ViewModeCanvas ViewMode = "canvas"
)

// Valid reports whether v is a known view mode.
func (v ViewMode) Valid() bool {
	switch v {
	case ViewModeSingle, ViewModeScroll, ViewModeCanvas:
		return true
	}
	return false
}

// StrokeWidths are the stroke widths the UI offers.
var StrokeWidths = []int{2, 3, 5, 8}

// ValidStrokeWidth reports whether w is one of the offered stroke widths.
func ValidStrokeWidth(w int) bool {
	for _, v := range StrokeWidths {
		if w == v {
			return true
		}
	}
	return false
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidHexColor reports whether s is a #RRGGBB color.
func ValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}
