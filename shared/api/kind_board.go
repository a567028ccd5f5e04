package api

import (
	"time"

	"github.com/itchan-dev/kindboard/shared/domain"
)

type CreateKindBoardRequest struct {
	Name string `json:"kind_board_name" validate:"required,max=64"`
}

type KindBoardResponse struct {
	Id        domain.KindBoardId `json:"kind_board_id"`
	Name      string             `json:"kind_board_name"`
	CreatedAt time.Time          `json:"created_at"`
}

type KindBoardListResponse struct {
	KindBoards []KindBoardResponse `json:"kind_boards"`
}

func NewKindBoardResponse(k domain.KindBoard) KindBoardResponse {
	return KindBoardResponse{Id: k.Id, Name: k.Name, CreatedAt: k.CreatedAt}
}
