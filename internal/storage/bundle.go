package storage

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruel/ksid"
	"gopkg.in/yaml.v3"

	"github.com/callumalpass/inkwell-sub004/internal/models"
)

const (
	bundleManifestName  = "manifest.yaml"
	bundleFormatVersion = 1
)

// ErrBadBundle reports an upload that is not a usable notebook bundle.
var ErrBadBundle = errors.New("invalid notebook bundle")

// BundleManifest describes an exported notebook bundle.
type BundleManifest struct {
	Version    int              `yaml:"version"`
	NotebookID string           `yaml:"notebookId"`
	Title      string           `yaml:"title"`
	CreatedAt  models.Timestamp `yaml:"createdAt"`
	UpdatedAt  models.Timestamp `yaml:"updatedAt"`
	Pages      int              `yaml:"pages"`
	ExportedAt models.Timestamp `yaml:"exportedAt"`
}

// BundleService packs a notebook into a portable zip bundle and unpacks
// such bundles again. Import mints fresh IDs throughout, so a bundle can
// be imported into the very instance that produced it without collisions.
type BundleService struct {
	store   *FileStore
	history *HistoryService // may be nil
}

// NewBundleService creates a new bundle service.
func NewBundleService(store *FileStore, history *HistoryService) *BundleService {
	return &BundleService{store: store, history: history}
}

// Export streams a zip bundle of the notebook to w, reporting whether the
// notebook existed.
func (s *BundleService) Export(ctx context.Context, notebookID string, w io.Writer) (bool, error) {
	meta, err := ReadJSON[models.NotebookMeta](s.store.NotebookMetaFile(notebookID))
	if err != nil || meta == nil {
		return false, err
	}

	pageCount := 0
	if entries, err := os.ReadDir(s.store.PagesDir(notebookID)); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				pageCount++
			}
		}
	}

	zw := zip.NewWriter(w)
	manifest := BundleManifest{
		Version:    bundleFormatVersion,
		NotebookID: meta.ID,
		Title:      meta.Title,
		CreatedAt:  meta.CreatedAt,
		UpdatedAt:  meta.UpdatedAt,
		Pages:      pageCount,
		ExportedAt: models.Now(),
	}
	mf, err := zw.Create(bundleManifestName)
	if err != nil {
		return true, fmt.Errorf("failed to start bundle: %w", err)
	}
	mb, err := yaml.Marshal(manifest)
	if err != nil {
		return true, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if _, err := mf.Write(mb); err != nil {
		return true, fmt.Errorf("failed to write manifest: %w", err)
	}

	root := s.store.NotebookDir(notebookID)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == lockFileName {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = f.Write(data)
		return err
	})
	if err != nil {
		return true, fmt.Errorf("failed to pack notebook %s: %w", notebookID, err)
	}
	if err := zw.Close(); err != nil {
		return true, fmt.Errorf("failed to finish bundle: %w", err)
	}
	return true, nil
}

// Import materializes the bundle in r as a brand-new notebook and
// registers its pages in the page index. The returned metadata carries the
// freshly minted notebook ID.
func (s *BundleService) Import(ctx context.Context, r io.ReaderAt, size int64) (*models.NotebookMeta, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("not a zip archive: %w", ErrBadBundle)
	}

	manifest, err := readBundleManifest(zr)
	if err != nil {
		return nil, err
	}
	if manifest.Version != bundleFormatVersion {
		return nil, fmt.Errorf("unsupported bundle version %d: %w", manifest.Version, ErrBadBundle)
	}

	// Stage entries in memory first; nothing touches disk until the
	// bundle has proven readable.
	type pageFiles struct {
		meta    []byte
		strokes []byte
	}
	var notebookMeta []byte
	pages := map[string]*pageFiles{}
	for _, f := range zr.File {
		parts := strings.Split(f.Name, "/")
		if !safeBundlePath(parts) {
			return nil, fmt.Errorf("unsafe path %q: %w", f.Name, ErrBadBundle)
		}
		isNotebookMeta := f.Name == "meta.json"
		isPageFile := len(parts) == 3 && parts[0] == "pages" &&
			(parts[2] == "meta.json" || parts[2] == "strokes.json")
		if !isNotebookMeta && !isPageFile {
			continue // tolerate unknown entries from newer exporters
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		if isNotebookMeta {
			notebookMeta = data
			continue
		}
		pf := pages[parts[1]]
		if pf == nil {
			pf = &pageFiles{}
			pages[parts[1]] = pf
		}
		if parts[2] == "meta.json" {
			pf.meta = data
		} else {
			pf.strokes = data
		}
	}

	var meta models.NotebookMeta
	if notebookMeta == nil || json.Unmarshal(notebookMeta, &meta) != nil {
		return nil, fmt.Errorf("missing or damaged meta.json: %w", ErrBadBundle)
	}
	meta.ID = ksid.NewID().String()
	meta.UpdatedAt = models.Now()

	if err := EnsureDir(s.store.PagesDir(meta.ID)); err != nil {
		return nil, err
	}
	if err := WriteJSON(s.store.NotebookMetaFile(meta.ID), &meta); err != nil {
		return nil, err
	}

	imported := []string{}
	for oldID, files := range pages {
		var pm models.PageMeta
		if files.meta == nil || json.Unmarshal(files.meta, &pm) != nil {
			slog.Warn("skipping damaged page in bundle", "pageId", oldID)
			continue
		}
		pm.ID = ksid.NewID().String()
		pm.NotebookID = meta.ID

		if err := EnsureDir(s.store.PageDir(meta.ID, pm.ID)); err != nil {
			return nil, err
		}
		if err := WriteJSON(s.store.PageMetaFile(meta.ID, pm.ID), &pm); err != nil {
			return nil, err
		}
		strokes := []models.Stroke{}
		if files.strokes != nil {
			if err := json.Unmarshal(files.strokes, &strokes); err != nil {
				slog.Warn("dropping damaged strokes in bundle", "pageId", oldID)
				strokes = []models.Stroke{}
			}
		}
		if err := WriteJSON(s.store.StrokesFile(meta.ID, pm.ID), strokes); err != nil {
			return nil, err
		}
		imported = append(imported, pm.ID)
	}

	if len(imported) > 0 {
		err := WithLock(s.store.DataRoot(), func() error {
			idx, err := loadPageIndex(s.store)
			if err != nil {
				return err
			}
			for _, pid := range imported {
				idx[pid] = models.PageIndexEntry{NotebookID: meta.ID}
			}
			return savePageIndex(s.store, idx)
		})
		if err != nil {
			return nil, err
		}
	}

	recordHistory(ctx, s.history, "import", "notebook", meta.ID)
	return &meta, nil
}

func readBundleManifest(zr *zip.Reader) (*BundleManifest, error) {
	f, err := zr.Open(bundleManifestName)
	if err != nil {
		return nil, fmt.Errorf("missing %s: %w", bundleManifestName, ErrBadBundle)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var manifest BundleManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("damaged manifest: %w", ErrBadBundle)
	}
	return &manifest, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// safeBundlePath rejects entry names that could escape the notebook
// directory.
func safeBundlePath(parts []string) bool {
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return false
		}
	}
	return true
}
