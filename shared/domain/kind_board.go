package domain

import "time"

type KindBoard struct {
	Id        KindBoardId
	Name      KindBoardName
	CreatedAt time.Time
}
