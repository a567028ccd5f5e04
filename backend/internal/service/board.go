package service

import (
	"context"
	"math"
	"strings"

	"github.com/itchan-dev/kindboard/backend/internal/storage"
	"github.com/itchan-dev/kindboard/shared/domain"
	"github.com/itchan-dev/kindboard/shared/errors"
	"github.com/itchan-dev/kindboard/shared/logger"
	"github.com/itchan-dev/kindboard/shared/middleware/metrics"
)

// Update methods
const (
	MethodPut   = "PUT"   // full replace, title and content required
	MethodPatch = "PATCH" // merge, absent fields keep their value
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, input domain.BoardInput, username domain.Username) (domain.BoardView, error)
	Get(ctx context.Context, id domain.BoardId) (domain.BoardView, error)
	Update(ctx context.Context, id domain.BoardId, input domain.BoardInput, username domain.Username, method string) (domain.BoardView, error)
	Delete(ctx context.Context, id domain.BoardId, username domain.Username) (bool, error)
	List(ctx context.Context, page int) (domain.BoardPage, error)
	ListByKindBoard(ctx context.Context, kindBoardName domain.KindBoardName, page int) (domain.BoardPage, error)
}

type BoardValidator interface {
	Title(title string) error
	Content(content string) error
}

type Board struct {
	storage   storage.Storage
	validator BoardValidator
	pageSize  int
}

func NewBoard(storage storage.Storage, validator BoardValidator, pageSize int) *Board {
	return &Board{storage: storage, validator: validator, pageSize: max(1, pageSize)}
}

// Create stores a board owned by username. The kind board, when named, must exist.
func (b *Board) Create(ctx context.Context, input domain.BoardInput, username domain.Username) (domain.BoardView, error) {
	title, ok := input.Title.Get()
	if !ok {
		return domain.BoardView{}, errors.InvalidArgument("Title is required")
	}
	content, ok := input.Content.Get()
	if !ok {
		return domain.BoardView{}, errors.InvalidArgument("Content is required")
	}
	if err := b.validator.Title(title); err != nil {
		return domain.BoardView{}, err
	}
	if err := b.validator.Content(content); err != nil {
		return domain.BoardView{}, err
	}

	var view domain.BoardView
	err := b.storage.WithTx(ctx, func(tx storage.Tx) error {
		user, err := tx.UserByUsername(username)
		if err != nil {
			return err
		}

		data := domain.BoardCreationData{Title: title, Content: content, OwnerId: user.Id}
		if name, ok := input.KindBoardName.Get(); ok {
			kb, err := kindBoardByName(tx, name)
			if err != nil {
				return err
			}
			data.KindBoardId = &kb.Id
		}

		board, err := tx.SaveBoard(data)
		if err != nil {
			return err
		}
		view, err = newViewResolver(tx).view(board)
		return err
	})
	metrics.ObserveBoardOperation("create", err)
	if err != nil {
		return domain.BoardView{}, err
	}

	logger.FromContext(ctx).Info("board created", "board_id", view.Id, "user_id", view.OwnerId)
	return view, nil
}

// Get counts the read: every successful call increments the read count by one.
func (b *Board) Get(ctx context.Context, id domain.BoardId) (domain.BoardView, error) {
	var view domain.BoardView
	err := b.storage.WithTx(ctx, func(tx storage.Tx) error {
		board, err := tx.IncrementReadCount(id)
		if err != nil {
			return err
		}
		view, err = newViewResolver(tx).view(board)
		return err
	})
	metrics.ObserveBoardOperation("read", err)
	if err != nil {
		return domain.BoardView{}, err
	}
	return view, nil
}

// Update applies input with PUT or PATCH semantics. Only the owner may
// update; owner and read count never change.
func (b *Board) Update(ctx context.Context, id domain.BoardId, input domain.BoardInput, username domain.Username, method string) (domain.BoardView, error) {
	var view domain.BoardView
	err := b.storage.WithTx(ctx, func(tx storage.Tx) error {
		board, err := tx.BoardById(id)
		if err != nil {
			return err
		}

		merged, err := b.merge(board, input, method)
		if err != nil {
			return err
		}

		user, err := tx.UserByUsername(username)
		if err != nil {
			return err
		}
		if user.Id != board.OwnerId {
			return errors.ErrNotOwner
		}

		if name, ok := input.KindBoardName.Get(); ok {
			kb, err := kindBoardByName(tx, name)
			if err != nil {
				return err
			}
			merged.KindBoardId = &kb.Id
		}

		updated, err := tx.UpdateBoard(merged)
		if err != nil {
			return err
		}
		view, err = newViewResolver(tx).view(updated)
		return err
	})
	metrics.ObserveBoardOperation("update", err)
	if err != nil {
		return domain.BoardView{}, err
	}

	logger.FromContext(ctx).Info("board updated", "board_id", id, "method", method)
	return view, nil
}

// merge returns board with input applied. PUT requires every replaceable
// field, PATCH overwrites only the fields that are set.
func (b *Board) merge(board domain.Board, input domain.BoardInput, method string) (domain.Board, error) {
	switch strings.ToUpper(method) {
	case MethodPatch:
	case MethodPut:
		if !input.Title.Set || !input.Content.Set {
			return domain.Board{}, errors.InvalidArgument("PUT requires both title and content")
		}
	default:
		return domain.Board{}, errors.InvalidArgument("Unsupported update method " + method)
	}

	if title, ok := input.Title.Get(); ok {
		if err := b.validator.Title(title); err != nil {
			return domain.Board{}, err
		}
		board.Title = title
	}
	if content, ok := input.Content.Get(); ok {
		if err := b.validator.Content(content); err != nil {
			return domain.Board{}, err
		}
		board.Content = content
	}
	return board, nil
}

// Delete removes the board only when username is its owner and reports
// whether it did. Authority plays no part.
func (b *Board) Delete(ctx context.Context, id domain.BoardId, username domain.Username) (bool, error) {
	var deleted bool
	err := b.storage.WithTx(ctx, func(tx storage.Tx) error {
		board, err := tx.BoardById(id)
		if err != nil {
			return err
		}
		owner, err := tx.UserById(board.OwnerId)
		if err != nil {
			return err
		}
		if owner.Username != username {
			return nil
		}
		if err := tx.DeleteBoard(id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	metrics.ObserveBoardOperation("delete", err)
	if err != nil {
		return false, err
	}

	if deleted {
		logger.FromContext(ctx).Info("board deleted", "board_id", id)
	}
	return deleted, nil
}

func (b *Board) List(ctx context.Context, page int) (domain.BoardPage, error) {
	return b.list(ctx, nil, page)
}

func (b *Board) ListByKindBoard(ctx context.Context, kindBoardName domain.KindBoardName, page int) (domain.BoardPage, error) {
	return b.list(ctx, &kindBoardName, page)
}

func (b *Board) list(ctx context.Context, kindBoardName *domain.KindBoardName, page int) (domain.BoardPage, error) {
	page = max(1, page)

	result := domain.BoardPage{Page: page}
	err := b.storage.WithTx(ctx, func(tx storage.Tx) error {
		var kindBoardId *domain.KindBoardId
		if kindBoardName != nil {
			kb, err := kindBoardByName(tx, *kindBoardName)
			if err != nil {
				return err
			}
			kindBoardId = &kb.Id
		}

		// pages past math.MaxInt rows are empty; only the total is needed
		if page-1 > math.MaxInt/b.pageSize {
			_, total, err := tx.Boards(kindBoardId, 0, 0)
			result.Total = total
			result.Boards = []domain.BoardView{}
			return err
		}

		boards, total, err := tx.Boards(kindBoardId, b.pageSize, (page-1)*b.pageSize)
		if err != nil {
			return err
		}
		result.Total = total

		resolver := newViewResolver(tx)
		result.Boards = make([]domain.BoardView, 0, len(boards))
		for _, board := range boards {
			view, err := resolver.view(board)
			if err != nil {
				return err
			}
			result.Boards = append(result.Boards, view)
		}
		return nil
	})
	if err != nil {
		return domain.BoardPage{}, err
	}
	return result, nil
}

// viewResolver follows a board's id references, remembering what it has
// already looked up within one transaction.
type viewResolver struct {
	tx         storage.Tx
	usernames  map[domain.UserId]domain.Username
	kindBoards map[domain.KindBoardId]domain.KindBoardName
}

func newViewResolver(tx storage.Tx) *viewResolver {
	return &viewResolver{
		tx:         tx,
		usernames:  make(map[domain.UserId]domain.Username),
		kindBoards: make(map[domain.KindBoardId]domain.KindBoardName),
	}
}

func (r *viewResolver) view(board domain.Board) (domain.BoardView, error) {
	view := domain.BoardView{Board: board}

	username, ok := r.usernames[board.OwnerId]
	if !ok {
		owner, err := r.tx.UserById(board.OwnerId)
		if err != nil {
			return domain.BoardView{}, err
		}
		username = owner.Username
		r.usernames[board.OwnerId] = username
	}
	view.OwnerUsername = username

	if board.KindBoardId != nil {
		name, ok := r.kindBoards[*board.KindBoardId]
		if !ok {
			kb, err := r.tx.KindBoardById(*board.KindBoardId)
			if err != nil {
				return domain.BoardView{}, err
			}
			name = kb.Name
			r.kindBoards[kb.Id] = name
		}
		view.KindBoardName = &name
	}
	return view, nil
}
