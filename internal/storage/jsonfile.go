package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/natefinch/atomic"
)

// EnsureDir creates dir and any missing parents. It is a no-op when dir
// already exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ReadJSON reads the JSON document at path into a fresh T. It returns
// (nil, nil) when the file does not exist, and also when the file exists
// but cannot be parsed: a single damaged record must never take the whole
// store down, so the damage is logged and the record treated as absent.
// Any other I/O failure is returned.
func ReadJSON[T any](path string) (*T, error) {
	var v T
	ok, err := ReadJSONInto(path, &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// ReadJSONInto decodes the JSON file at path into v. Keys present in the
// file overwrite the corresponding fields; absent keys leave v alone, so a
// caller may pass a defaults-populated value and get merge-over-defaults
// semantics. It reports whether a usable document was read; missing and
// unparseable files leave v untouched, with the latter logged.
func ReadJSONInto[T any](path string, v *T) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	decoded := *v
	if err := json.Unmarshal(data, &decoded); err != nil {
		slog.Warn("skipping unparseable JSON file", "path", path, "err", err)
		return false, nil
	}
	*v = decoded
	return true, nil
}

// WriteJSON pretty-prints v and replaces the file at path in one atomic
// step, so concurrent readers never observe a partial document.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
