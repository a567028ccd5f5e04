package handler

import (
	"net/http"

	"github.com/itchan-dev/kindboard/shared/api"
	mw "github.com/itchan-dev/kindboard/shared/middleware"
	"github.com/itchan-dev/kindboard/shared/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.BoardRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	view, err := h.board.Create(r.Context(), body.Input(), user.Username)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, h.boardResponse(view))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "boardId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	view, err := h.board.Get(r.Context(), boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.boardResponse(view))
}

// UpdateBoard serves both PUT and PATCH; the request method selects the merge policy.
func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	boardId, err := idParam(r, "boardId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.BoardRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	view, err := h.board.Update(r.Context(), boardId, body.Input(), user.Username, r.Method)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.boardResponse(view))
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	boardId, err := idParam(r, "boardId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	deleted, err := h.board.Delete(r.Context(), boardId, user.Username)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if !deleted {
		http.Error(w, "Only the author can delete this board", http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boards, err := h.board.List(r.Context(), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.boardListResponse(boards))
}

func (h *Handler) GetKindBoardBoards(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boards, err := h.board.ListByKindBoard(r.Context(), stringParam(r, "kindName"), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.boardListResponse(boards))
}
