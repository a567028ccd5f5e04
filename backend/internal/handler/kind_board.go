package handler

import (
	"net/http"

	"github.com/itchan-dev/kindboard/shared/api"
	"github.com/itchan-dev/kindboard/shared/utils"
)

func (h *Handler) CreateKindBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateKindBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	kb, err := h.kindBoard.Create(r.Context(), body.Name)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewKindBoardResponse(kb))
}

func (h *Handler) GetKindBoard(w http.ResponseWriter, r *http.Request) {
	kindId, err := idParam(r, "kindId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	kb, err := h.kindBoard.GetById(r.Context(), kindId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewKindBoardResponse(kb))
}

func (h *Handler) GetKindBoardByName(w http.ResponseWriter, r *http.Request) {
	kb, err := h.kindBoard.GetByName(r.Context(), stringParam(r, "kindName"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewKindBoardResponse(kb))
}

func (h *Handler) GetKindBoards(w http.ResponseWriter, r *http.Request) {
	kinds, err := h.kindBoard.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.KindBoardListResponse{KindBoards: make([]api.KindBoardResponse, len(kinds))}
	for i, kb := range kinds {
		response.KindBoards[i] = api.NewKindBoardResponse(kb)
	}
	utils.WriteJSON(w, http.StatusOK, response)
}
