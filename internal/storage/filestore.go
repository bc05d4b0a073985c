// Package storage implements the file-backed stores for notebooks, pages
// and settings.
//
// Everything lives under a single data root:
//   - notebooks/<id>/meta.json            notebook metadata
//   - notebooks/<id>/pages/<pid>/         one directory per page
//   - page-index.json                     page ID -> owning notebook
//   - settings.json                       global app settings
//
// Records are plain pretty-printed JSON files so the data directory stays
// inspectable and diffable; the optional history service versions it with
// git for the same reason.
package storage

import "path/filepath"

// FileStore resolves every path under the data root. The methods are pure
// path arithmetic: identifiers are used verbatim as path segments and no
// I/O happens here.
type FileStore struct {
	dataRoot string
}

// NewFileStore initializes a FileStore rooted at dataRoot, creating the
// data root and its notebooks directory if needed.
func NewFileStore(dataRoot string) (*FileStore, error) {
	fs := &FileStore{dataRoot: dataRoot}
	if err := EnsureDir(fs.NotebooksRoot()); err != nil {
		return nil, err
	}
	return fs, nil
}

// DataRoot returns the configured data directory.
func (fs *FileStore) DataRoot() string {
	return fs.dataRoot
}

// NotebooksRoot returns the directory holding all notebooks.
func (fs *FileStore) NotebooksRoot() string {
	return filepath.Join(fs.dataRoot, "notebooks")
}

// NotebookDir returns the directory of one notebook.
func (fs *FileStore) NotebookDir(id string) string {
	return filepath.Join(fs.NotebooksRoot(), id)
}

// NotebookMetaFile returns the metadata file of one notebook.
func (fs *FileStore) NotebookMetaFile(id string) string {
	return filepath.Join(fs.NotebookDir(id), "meta.json")
}

// PagesDir returns the directory holding a notebook's pages.
func (fs *FileStore) PagesDir(notebookID string) string {
	return filepath.Join(fs.NotebookDir(notebookID), "pages")
}

// PageDir returns the directory of one page.
func (fs *FileStore) PageDir(notebookID, pageID string) string {
	return filepath.Join(fs.PagesDir(notebookID), pageID)
}

// PageMetaFile returns the metadata file of one page.
func (fs *FileStore) PageMetaFile(notebookID, pageID string) string {
	return filepath.Join(fs.PageDir(notebookID, pageID), "meta.json")
}

// StrokesFile returns the stroke data file of one page.
func (fs *FileStore) StrokesFile(notebookID, pageID string) string {
	return filepath.Join(fs.PageDir(notebookID, pageID), "strokes.json")
}

// PageIndexFile returns the global page index file.
func (fs *FileStore) PageIndexFile() string {
	return filepath.Join(fs.dataRoot, "page-index.json")
}

// SettingsFile returns the global settings file.
func (fs *FileStore) SettingsFile() string {
	return filepath.Join(fs.dataRoot, "settings.json")
}
