// Package storage declares the persistence contract shared by the
// memory and postgres backends.
package storage

import (
	"context"

	"github.com/itchan-dev/kindboard/shared/domain"
)

// Storage runs every unit of work inside one transaction: fn's changes are
// all visible after a nil return and none of them are after an error.
type Storage interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
}

type Tx interface {
	UserStore
	KindBoardStore
	BoardStore
}

type UserStore interface {
	// SaveUser fails with errors.ErrUsernameTaken on duplicates.
	SaveUser(user domain.User) (domain.User, error)
	UserByUsername(username domain.Username) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
}

type KindBoardStore interface {
	// SaveKindBoard fails with errors.ErrKindBoardExists on duplicates.
	SaveKindBoard(name domain.KindBoardName) (domain.KindBoard, error)
	KindBoardById(id domain.KindBoardId) (domain.KindBoard, error)
	KindBoardByName(name domain.KindBoardName) (domain.KindBoard, error)
	KindBoards() ([]domain.KindBoard, error)
}

type BoardStore interface {
	SaveBoard(data domain.BoardCreationData) (domain.Board, error)
	BoardById(id domain.BoardId) (domain.Board, error)
	// UpdateBoard writes title, content and category. Owner and read count are untouched.
	UpdateBoard(board domain.Board) (domain.Board, error)
	IncrementReadCount(id domain.BoardId) (domain.Board, error)
	DeleteBoard(id domain.BoardId) error
	// Boards returns newest first plus the total count. kindBoardId filters when non-nil.
	Boards(kindBoardId *domain.KindBoardId, limit, offset int) ([]domain.Board, int, error)
}
