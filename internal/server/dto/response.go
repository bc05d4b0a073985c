package dto

import (
	"github.com/callumalpass/inkwell-sub004/internal/models"
	"github.com/callumalpass/inkwell-sub004/internal/storage"
)

// The persisted notebook and page records already use the API's field
// naming, so they are aliased instead of converted.

// Notebook is the wire representation of a notebook.
type Notebook = models.NotebookMeta

// Page is the wire representation of a page.
type Page = models.PageMeta

// AppSettings is the wire representation of the app settings.
type AppSettings = models.AppSettings

// HistoryEntry is one recorded change of a notebook.
type HistoryEntry = storage.Change

// --- Common Responses ---

// OkResponse is a simple success response.
type OkResponse struct {
	Ok bool `json:"ok"`
}

// HealthResponse is the health endpoint response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// --- Notebook Responses ---

// ListNotebooksResponse is a response containing all notebooks, most
// recently updated first.
type ListNotebooksResponse struct {
	Notebooks []*Notebook `json:"notebooks"`
}

// NotebookHistoryResponse is a response containing a notebook's change
// history, newest first.
type NotebookHistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// DeleteNotebookResponse is a response from deleting a notebook.
type DeleteNotebookResponse = OkResponse

// ImportNotebookResponse is a response from importing a notebook bundle.
type ImportNotebookResponse struct {
	Notebook *Notebook `json:"notebook"`
}

// --- Page Responses ---

// ListPagesResponse is a response containing a notebook's pages in
// creation order.
type ListPagesResponse struct {
	Pages []*Page `json:"pages"`
}

// DeletePageResponse is a response from deleting a page.
type DeletePageResponse = OkResponse

// StrokesResponse is a response containing a page's strokes.
type StrokesResponse struct {
	Strokes []models.Stroke `json:"strokes"`
}
