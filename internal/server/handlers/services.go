// Defines shared service dependencies for handlers.

package handlers

import (
	"github.com/callumalpass/inkwell-sub004/internal/storage"
)

// Services holds all service dependencies for handlers.
type Services struct {
	Notebooks *storage.NotebookService
	Pages     *storage.PageService
	Settings  *storage.SettingsService
	Bundles   *storage.BundleService
	History   *storage.HistoryService // may be nil
}

// Config holds configuration values needed by handlers.
type Config struct {
	Version             string
	MaxRequestBodyBytes int64
	MaxBundleBytes      int64
}
