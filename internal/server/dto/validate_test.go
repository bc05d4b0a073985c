package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/callumalpass/inkwell-sub004/internal/models"
)

// codeOf extracts the ErrorCode from a validation error, or "" for nil.
func codeOf(t *testing.T, err error) ErrorCode {
	t.Helper()
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	return apiErr.Code()
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantCode ErrorCode
	}{
		{"simple", "abc123", ""},
		{"with dash and underscore", "a-b_c", ""},
		{"ksid style", "0ujsszwN8NRY24YaXiTIE2VWDTS", ""},
		{"single char", "x", ""},
		{"max length", strings.Repeat("a", 64), ""},
		{"empty", "", ErrorCodeMissingField},
		{"too long", strings.Repeat("a", 65), ErrorCodeInvalidFormat},
		{"path separator", "a/b", ErrorCodeInvalidFormat},
		{"traversal", "..", ErrorCodeInvalidFormat},
		{"space", "a b", ErrorCodeInvalidFormat},
		{"dot", "a.json", ErrorCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("id", tt.id)
			if got := codeOf(t, err); got != tt.wantCode {
				t.Errorf("ValidateID(%q) code = %q, want %q", tt.id, got, tt.wantCode)
			}
		})
	}
}

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	pen := models.PenStyleUniform
	badPen := models.PenStyle("quill")
	color := "#ff0000"
	badColor := "red"
	width := 5
	badWidth := 4
	grid := models.GridTypeDotGrid
	badGrid := models.GridType("hex")
	view := models.ViewModeScroll
	badView := models.ViewMode("spread")

	tests := []struct {
		name     string
		req      UpdateSettingsRequest
		wantCode ErrorCode
	}{
		{"empty update", UpdateSettingsRequest{}, ""},
		{"all fields valid", UpdateSettingsRequest{
			DefaultPenStyle:    &pen,
			DefaultColor:       &color,
			DefaultStrokeWidth: &width,
			DefaultGridType:    &grid,
			DefaultViewMode:    &view,
		}, ""},
		{"bad pen style", UpdateSettingsRequest{DefaultPenStyle: &badPen}, ErrorCodeInvalidFormat},
		{"bad color", UpdateSettingsRequest{DefaultColor: &badColor}, ErrorCodeInvalidFormat},
		{"bad stroke width", UpdateSettingsRequest{DefaultStrokeWidth: &badWidth}, ErrorCodeInvalidFormat},
		{"bad grid type", UpdateSettingsRequest{DefaultGridType: &badGrid}, ErrorCodeInvalidFormat},
		{"bad view mode", UpdateSettingsRequest{DefaultViewMode: &badView}, ErrorCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if got := codeOf(t, err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestCreateNotebookRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      CreateNotebookRequest
		wantCode ErrorCode
	}{
		{"no fields", CreateNotebookRequest{}, ""},
		{"title only", CreateNotebookRequest{Title: "Math"}, ""},
		{"valid settings", CreateNotebookRequest{
			Settings: &models.NotebookSettings{DefaultColor: "#0000ff", DefaultGridType: models.GridTypeLined},
		}, ""},
		{"zero valued settings pass", CreateNotebookRequest{Settings: &models.NotebookSettings{}}, ""},
		{"bad settings color", CreateNotebookRequest{
			Settings: &models.NotebookSettings{DefaultColor: "blue"},
		}, ErrorCodeInvalidFormat},
		{"bad settings width", CreateNotebookRequest{
			Settings: &models.NotebookSettings{DefaultStrokeWidth: 7},
		}, ErrorCodeInvalidFormat},
		{"negative line spacing", CreateNotebookRequest{
			Settings: &models.NotebookSettings{LineSpacing: -1},
		}, ErrorCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if got := codeOf(t, err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestUpdateNotebookRequest_Validate(t *testing.T) {
	title := "Renamed"
	empty := ""

	tests := []struct {
		name     string
		req      UpdateNotebookRequest
		wantCode ErrorCode
	}{
		{"title change", UpdateNotebookRequest{ID: "nb1", Title: &title}, ""},
		{"no changes", UpdateNotebookRequest{ID: "nb1"}, ""},
		{"missing id", UpdateNotebookRequest{Title: &title}, ErrorCodeMissingField},
		{"empty title", UpdateNotebookRequest{ID: "nb1", Title: &empty}, ErrorCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if got := codeOf(t, err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestNotebookHistoryRequest_Validate(t *testing.T) {
	if err := (&NotebookHistoryRequest{ID: "nb1", Limit: 20}).Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := (&NotebookHistoryRequest{ID: "nb1", Limit: 0}).Validate(); err != nil {
		t.Errorf("zero limit rejected: %v", err)
	}
	err := (&NotebookHistoryRequest{ID: "nb1", Limit: -1}).Validate()
	if codeOf(t, err) != ErrorCodeValidationFailed {
		t.Errorf("negative limit: code = %q, want %q", codeOf(t, err), ErrorCodeValidationFailed)
	}
}

func TestSaveStrokesRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      SaveStrokesRequest
		wantCode ErrorCode
	}{
		{"empty slice clears the page", SaveStrokesRequest{ID: "p1", Strokes: []models.Stroke{}}, ""},
		{"valid stroke", SaveStrokesRequest{ID: "p1", Strokes: []models.Stroke{
			{Points: []models.StrokePoint{{X: 1, Y: 2, Pressure: 0.5}}, Color: "#112233", Width: 3, PenStyle: models.PenStylePressure},
		}}, ""},
		{"defaulted stroke fields pass", SaveStrokesRequest{ID: "p1", Strokes: []models.Stroke{
			{Points: []models.StrokePoint{{X: 1, Y: 2}}},
		}}, ""},
		{"nil strokes", SaveStrokesRequest{ID: "p1"}, ErrorCodeMissingField},
		{"missing id", SaveStrokesRequest{Strokes: []models.Stroke{}}, ErrorCodeMissingField},
		{"bad color", SaveStrokesRequest{ID: "p1", Strokes: []models.Stroke{
			{Color: "black"},
		}}, ErrorCodeInvalidFormat},
		{"bad pen style", SaveStrokesRequest{ID: "p1", Strokes: []models.Stroke{
			{PenStyle: "crayon"},
		}}, ErrorCodeInvalidFormat},
		{"negative width", SaveStrokesRequest{ID: "p1", Strokes: []models.Stroke{
			{Width: -1},
		}}, ErrorCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if got := codeOf(t, err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}
