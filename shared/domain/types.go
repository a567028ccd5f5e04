package domain

type (
	UserId   = int64
	Username = string
	Password = string

	BoardId      = int64
	BoardTitle   = string
	BoardContent = string

	KindBoardId   = int64
	KindBoardName = string
)
