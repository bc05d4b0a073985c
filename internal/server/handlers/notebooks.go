// Handles notebook CRUD, history, and bundle export/import.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/maruel/ksid"

	"github.com/callumalpass/inkwell-sub004/internal/models"
	"github.com/callumalpass/inkwell-sub004/internal/server/dto"
	"github.com/callumalpass/inkwell-sub004/internal/storage"
)

// defaultNotebookTitle is used when a notebook is created without a title.
const defaultNotebookTitle = "Untitled Notebook"

// NotebookHandler handles notebook-related HTTP requests.
type NotebookHandler struct {
	Svc *Services
	Cfg *Config
}

// ListNotebooks returns all notebooks, most recently updated first.
func (h *NotebookHandler) ListNotebooks(ctx context.Context, req *dto.ListNotebooksRequest) (*dto.ListNotebooksResponse, error) {
	notebooks, err := h.Svc.Notebooks.List(ctx)
	if err != nil {
		return nil, dto.InternalWithError("Failed to list notebooks", err)
	}
	return &dto.ListNotebooksResponse{Notebooks: notebooks}, nil
}

// CreateNotebook creates a notebook with a server-generated identifier.
func (h *NotebookHandler) CreateNotebook(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.Notebook, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultNotebookTitle
	}

	now := models.Now()
	meta := &models.NotebookMeta{
		ID:        ksid.NewID().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Settings:  req.Settings,
	}
	if err := h.Svc.Notebooks.Create(ctx, meta); err != nil {
		return nil, dto.InternalWithError("Failed to create notebook", err)
	}
	return meta, nil
}

// GetNotebook returns a single notebook by ID.
func (h *NotebookHandler) GetNotebook(ctx context.Context, req *dto.GetNotebookRequest) (*dto.Notebook, error) {
	meta, err := h.Svc.Notebooks.Get(ctx, req.ID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read notebook", err)
	}
	if meta == nil {
		return nil, dto.NotFound("notebook")
	}
	return meta, nil
}

// UpdateNotebook applies a partial update to a notebook.
func (h *NotebookHandler) UpdateNotebook(ctx context.Context, req *dto.UpdateNotebookRequest) (*dto.Notebook, error) {
	meta, err := h.Svc.Notebooks.Update(ctx, req.ID, storage.NotebookPatch{
		Title:    req.Title,
		Settings: req.Settings,
	})
	if err != nil {
		return nil, dto.InternalWithError("Failed to update notebook", err)
	}
	if meta == nil {
		return nil, dto.NotFound("notebook")
	}
	return meta, nil
}

// DeleteNotebook deletes a notebook with all its pages.
func (h *NotebookHandler) DeleteNotebook(ctx context.Context, req *dto.DeleteNotebookRequest) (*dto.DeleteNotebookResponse, error) {
	deleted, err := h.Svc.Notebooks.Delete(ctx, req.ID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to delete notebook", err)
	}
	if !deleted {
		return nil, dto.NotFound("notebook")
	}
	return &dto.DeleteNotebookResponse{Ok: true}, nil
}

// NotebookHistory returns the recorded changes of a notebook, newest
// first. With history disabled the list is always empty.
func (h *NotebookHandler) NotebookHistory(ctx context.Context, req *dto.NotebookHistoryRequest) (*dto.NotebookHistoryResponse, error) {
	meta, err := h.Svc.Notebooks.Get(ctx, req.ID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read notebook", err)
	}
	if meta == nil {
		return nil, dto.NotFound("notebook")
	}

	resp := &dto.NotebookHistoryResponse{History: []dto.HistoryEntry{}}
	if h.Svc.History == nil {
		return resp, nil
	}

	limit := req.Limit
	if limit == 0 {
		limit = 50
	}
	changes, err := h.Svc.History.History(ctx, path.Join("notebooks", req.ID), limit)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read history", err)
	}
	if changes != nil {
		resp.History = changes
	}
	return resp, nil
}

// ExportNotebookHandler streams a notebook as a zip bundle. This is a raw
// http.HandlerFunc because the response is not JSON.
func (h *NotebookHandler) ExportNotebookHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := dto.ValidateID("id", id); err != nil {
		writeErrorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "notebook-"+id+".zip"))

	found, err := h.Svc.Bundles.Export(r.Context(), id, w)
	if err != nil {
		// The zip stream may already be half-written, so a JSON error
		// body would corrupt it. Cut the response short instead.
		slog.ErrorContext(r.Context(), "Failed to export notebook", "id", id, "err", err)
		return
	}
	if !found {
		w.Header().Del("Content-Disposition")
		writeErrorResponse(w, dto.NotFound("notebook"))
	}
}

// ImportNotebookHandler accepts a zip bundle upload and materializes it as
// a new notebook. The bundle may arrive as a multipart "file" field or as
// the raw request body.
func (h *NotebookHandler) ImportNotebookHandler(w http.ResponseWriter, r *http.Request) {
	limit := h.Cfg.MaxBundleBytes
	if limit <= 0 {
		limit = 64 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	data, err := readBundleUpload(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeErrorResponse(w, dto.PayloadTooLarge(maxBytesErr.Limit))
			return
		}
		writeErrorResponse(w, err)
		return
	}

	meta, err := h.Svc.Bundles.Import(r.Context(), bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, storage.ErrBadBundle) {
			writeErrorResponse(w, dto.InvalidBundle(err.Error()))
			return
		}
		writeErrorResponse(w, dto.InternalWithError("Failed to import notebook", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dto.ImportNotebookResponse{Notebook: meta}); err != nil {
		slog.Error("Failed to encode import response", "error", err)
	}
}

// readBundleUpload extracts the uploaded bundle bytes from either a
// multipart form or the raw body.
func readBundleUpload(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, dto.BadRequest("Malformed multipart form").Wrap(err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, dto.MissingField("file")
		}
		defer func() {
			if err := file.Close(); err != nil {
				slog.Error("Failed to close uploaded file", "error", err)
			}
		}()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, dto.InternalWithError("Failed to read upload", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, dto.BadRequest("Failed to read request body").Wrap(err)
	}
	return data, nil
}
