package api

import (
	"time"

	"github.com/itchan-dev/kindboard/shared/domain"
)

// Request DTOs

// BoardRequest is shared by create, PUT and PATCH. Presence of each field
// survives decoding so PATCH can tell "unchanged" from a new value.
type BoardRequest struct {
	Title         domain.Optional[string] `json:"title"`
	Content       domain.Optional[string] `json:"content"`
	KindBoardName domain.Optional[string] `json:"kind_board_name"`
}

func (r BoardRequest) Input() domain.BoardInput {
	return domain.BoardInput{
		Title:         r.Title,
		Content:       r.Content,
		KindBoardName: r.KindBoardName,
	}
}

// Response DTOs

type BoardResponse struct {
	Id            domain.BoardId `json:"board_id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	ContentHTML   string         `json:"content_html"`
	ReadCount     int64          `json:"read_count"`
	Username      string         `json:"username"`
	KindBoardName *string        `json:"kind_board_name,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
	Page   int             `json:"page"`
	Total  int             `json:"total"`
}
