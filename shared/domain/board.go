package domain

import "time"

// Board references its owner and category by id only.
type Board struct {
	Id          BoardId
	Title       BoardTitle
	Content     BoardContent
	ReadCount   int64
	OwnerId     UserId
	KindBoardId *KindBoardId
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BoardCreationData is what storage needs to insert a board.
// Owner and category are already resolved by the service.
type BoardCreationData struct {
	Title       BoardTitle
	Content     BoardContent
	OwnerId     UserId
	KindBoardId *KindBoardId
}

// BoardInput carries the caller-supplied fields of a board request.
// Each field remembers whether the caller mentioned it.
type BoardInput struct {
	Title         Optional[BoardTitle]
	Content       Optional[BoardContent]
	KindBoardName Optional[KindBoardName]
}

// BoardView is a board with its references resolved for presentation.
type BoardView struct {
	Board
	OwnerUsername Username
	KindBoardName *KindBoardName
}

type BoardPage struct {
	Boards []BoardView
	Page   int
	Total  int
}
