package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/kindboard/shared/api"
	"github.com/itchan-dev/kindboard/shared/domain"
	"github.com/itchan-dev/kindboard/shared/errors"
	"github.com/itchan-dev/kindboard/shared/utils"
)

const defaultPage = 1

// pageParam reads the optional ?page= query parameter.
func pageParam(r *http.Request) (int, error) {
	pageQuery := r.URL.Query().Get("page")
	if pageQuery == "" {
		return defaultPage, nil
	}
	page, err := utils.ParseIntParam(pageQuery, "page")
	if err != nil {
		return 0, err
	}
	if page < 1 {
		return 0, errors.InvalidArgument("invalid page: must be positive")
	}
	return int(page), nil
}

func idParam(r *http.Request, name string) (int64, error) {
	return utils.ParseIntParam(chi.URLParam(r, name), name)
}

// stringParam returns an unescaped path parameter; names may contain spaces.
func stringParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (h *Handler) boardResponse(view domain.BoardView) api.BoardResponse {
	return api.BoardResponse{
		Id:            view.Id,
		Title:         view.Title,
		Content:       view.Content,
		ContentHTML:   h.markdown.Render(view.Content),
		ReadCount:     view.ReadCount,
		Username:      view.OwnerUsername,
		KindBoardName: view.KindBoardName,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	}
}

func (h *Handler) boardListResponse(page domain.BoardPage) api.BoardListResponse {
	boards := make([]api.BoardResponse, len(page.Boards))
	for i, view := range page.Boards {
		boards[i] = h.boardResponse(view)
	}
	return api.BoardListResponse{Boards: boards, Page: page.Page, Total: page.Total}
}
