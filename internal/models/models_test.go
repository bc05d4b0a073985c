package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampOf(t *testing.T) {
	in := time.Date(2024, 3, 5, 9, 30, 0, 120_000_000, time.UTC)
	got := TimestampOf(in)
	want := Timestamp("2024-03-05T09:30:00.120Z")
	if got != want {
		t.Errorf("TimestampOf = %q, want %q", got, want)
	}
	if back := got.Time(); !back.Equal(in) {
		t.Errorf("Time() = %v, want %v", back, in)
	}
}

func TestTimestampOrdering(t *testing.T) {
	// Later instants must compare greater as plain strings, including
	// across sub-second boundaries where variable-width encodings break.
	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	instants := []time.Time{
		base,
		base.Add(500 * time.Millisecond),
		base.Add(time.Second),
		base.Add(time.Minute),
		base.AddDate(0, 1, 0),
	}
	for i := 1; i < len(instants); i++ {
		prev := TimestampOf(instants[i-1])
		next := TimestampOf(instants[i])
		if !(prev < next) {
			t.Errorf("TimestampOf(%v) = %q not < TimestampOf(%v) = %q", instants[i-1], prev, instants[i], next)
		}
	}
}

func TestTimestampTimeInvalid(t *testing.T) {
	if got := Timestamp("not-a-time").Time(); !got.IsZero() {
		t.Errorf("Time() = %v, want zero", got)
	}
}

func TestPenStyleValid(t *testing.T) {
	for _, p := range []PenStyle{PenStylePressure, PenStyleUniform, PenStyleBallpoint} {
		if !p.Valid() {
			t.Errorf("PenStyle(%q).Valid() = false, want true", p)
		}
	}
	for _, p := range []PenStyle{"", "fountain", "PRESSURE"} {
		if p.Valid() {
			t.Errorf("PenStyle(%q).Valid() = true, want false", p)
		}
	}
}

func TestGridTypeValid(t *testing.T) {
	for _, g := range []GridType{GridTypeNone, GridTypeLined, GridTypeGrid, GridTypeDotGrid} {
		if !g.Valid() {
			t.Errorf("GridType(%q).Valid() = false, want true", g)
		}
	}
	if GridType("graph").Valid() {
		t.Error("GridType(\"graph\").Valid() = true, want false")
	}
}

func TestViewModeValid(t *testing.T) {
	for _, v := range []ViewMode{ViewModeSingle, ViewModeScroll, ViewModeCanvas} {
		if !v.Valid() {
			t.Errorf("ViewMode(%q).Valid() = false, want true", v)
		}
	}
	if ViewMode("spread").Valid() {
		t.Error("ViewMode(\"spread\").Valid() = true, want false")
	}
}

func TestValidStrokeWidth(t *testing.T) {
	for _, w := range []int{2, 3, 5, 8} {
		if !ValidStrokeWidth(w) {
			t.Errorf("ValidStrokeWidth(%d) = false, want true", w)
		}
	}
	for _, w := range []int{0, 1, 4, 10, -3} {
		if ValidStrokeWidth(w) {
			t.Errorf("ValidStrokeWidth(%d) = true, want false", w)
		}
	}
}

func TestValidHexColor(t *testing.T) {
	valid := []string{"#000000", "#FFFFFF", "#1a2B3c"}
	for _, c := range valid {
		if !ValidHexColor(c) {
			t.Errorf("ValidHexColor(%q) = false, want true", c)
		}
	}
	invalid := []string{"", "000000", "#fff", "#12345g", "#1234567", "red"}
	for _, c := range invalid {
		if ValidHexColor(c) {
			t.Errorf("ValidHexColor(%q) = true, want false", c)
		}
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	if s.DefaultPenStyle != PenStylePressure {
		t.Errorf("DefaultPenStyle = %q, want %q", s.DefaultPenStyle, PenStylePressure)
	}
	if s.DefaultColor != "#000000" {
		t.Errorf("DefaultColor = %q, want #000000", s.DefaultColor)
	}
	if s.DefaultStrokeWidth != 3 {
		t.Errorf("DefaultStrokeWidth = %d, want 3", s.DefaultStrokeWidth)
	}
	if s.DefaultGridType != GridTypeNone {
		t.Errorf("DefaultGridType = %q, want %q", s.DefaultGridType, GridTypeNone)
	}
	if s.LineSpacing != 40 {
		t.Errorf("LineSpacing = %d, want 40", s.LineSpacing)
	}
	if s.DefaultViewMode != ViewModeSingle {
		t.Errorf("DefaultViewMode = %q, want %q", s.DefaultViewMode, ViewModeSingle)
	}
	if s.AutoTranscribe {
		t.Error("AutoTranscribe = true, want false")
	}
}

func TestNotebookMetaJSON(t *testing.T) {
	meta := NotebookMeta{
		ID:        "n1",
		Title:     "Field notes",
		CreatedAt: "2024-01-01T00:00:00.000Z",
		UpdatedAt: "2024-01-02T00:00:00.000Z",
	}
	data, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	// The settings key must be absent, not null, when no overrides exist.
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := m["settings"]; ok {
		t.Errorf("marshaled meta contains settings key: %s", data)
	}
	if m["notebookId"] != nil {
		t.Errorf("unexpected notebookId key in %s", data)
	}
}
