// Handles page lifecycle and stroke persistence.

package handlers

import (
	"context"

	"github.com/callumalpass/inkwell-sub004/internal/server/dto"
)

// PageHandler handles page-related HTTP requests.
type PageHandler struct {
	Svc *Services
}

// ListPages returns a notebook's pages in creation order.
func (h *PageHandler) ListPages(ctx context.Context, req *dto.ListPagesRequest) (*dto.ListPagesResponse, error) {
	notebook, err := h.Svc.Notebooks.Get(ctx, req.NotebookID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read notebook", err)
	}
	if notebook == nil {
		return nil, dto.NotFound("notebook")
	}

	pages, err := h.Svc.Pages.List(ctx, req.NotebookID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to list pages", err)
	}
	return &dto.ListPagesResponse{Pages: pages}, nil
}

// CreatePage appends a blank page to a notebook.
func (h *PageHandler) CreatePage(ctx context.Context, req *dto.CreatePageRequest) (*dto.Page, error) {
	page, err := h.Svc.Pages.Create(ctx, req.NotebookID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to create page", err)
	}
	if page == nil {
		return nil, dto.NotFound("notebook")
	}
	return page, nil
}

// GetPage returns a single page by ID.
func (h *PageHandler) GetPage(ctx context.Context, req *dto.GetPageRequest) (*dto.Page, error) {
	page, err := h.Svc.Pages.Get(ctx, req.ID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read page", err)
	}
	if page == nil {
		return nil, dto.NotFound("page")
	}
	return page, nil
}

// DeletePage deletes a page and its index entry.
func (h *PageHandler) DeletePage(ctx context.Context, req *dto.DeletePageRequest) (*dto.DeletePageResponse, error) {
	deleted, err := h.Svc.Pages.Delete(ctx, req.ID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to delete page", err)
	}
	if !deleted {
		return nil, dto.NotFound("page")
	}
	return &dto.DeletePageResponse{Ok: true}, nil
}

// GetStrokes returns all strokes of a page.
func (h *PageHandler) GetStrokes(ctx context.Context, req *dto.GetStrokesRequest) (*dto.StrokesResponse, error) {
	strokes, found, err := h.Svc.Pages.Strokes(ctx, req.ID)
	if err != nil {
		return nil, dto.InternalWithError("Failed to read strokes", err)
	}
	if !found {
		return nil, dto.NotFound("page")
	}
	return &dto.StrokesResponse{Strokes: strokes}, nil
}

// SaveStrokes replaces a page's strokes wholesale.
func (h *PageHandler) SaveStrokes(ctx context.Context, req *dto.SaveStrokesRequest) (*dto.StrokesResponse, error) {
	found, err := h.Svc.Pages.SaveStrokes(ctx, req.ID, req.Strokes)
	if err != nil {
		return nil, dto.InternalWithError("Failed to save strokes", err)
	}
	if !found {
		return nil, dto.NotFound("page")
	}
	return &dto.StrokesResponse{Strokes: req.Strokes}, nil
}
