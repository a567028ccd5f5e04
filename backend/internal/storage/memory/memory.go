// Package memory is an in-process storage backend. Entities live in arenas
// keyed by id and reference each other by id only.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/itchan-dev/kindboard/backend/internal/storage"
	"github.com/itchan-dev/kindboard/shared/domain"
	"github.com/itchan-dev/kindboard/shared/errors"
)

var _ storage.Storage = (*Storage)(nil)
var _ storage.Tx = (*tx)(nil)

type arena struct {
	users     map[domain.UserId]domain.User
	usernames map[domain.Username]domain.UserId

	kindBoards     map[domain.KindBoardId]domain.KindBoard
	kindBoardNames map[domain.KindBoardName]domain.KindBoardId

	boards map[domain.BoardId]domain.Board

	lastUserId      domain.UserId
	lastKindBoardId domain.KindBoardId
	lastBoardId     domain.BoardId
}

func newArena() *arena {
	return &arena{
		users:          make(map[domain.UserId]domain.User),
		usernames:      make(map[domain.Username]domain.UserId),
		kindBoards:     make(map[domain.KindBoardId]domain.KindBoard),
		kindBoardNames: make(map[domain.KindBoardName]domain.KindBoardId),
		boards:         make(map[domain.BoardId]domain.Board),
	}
}

// clone copies the maps. Values are plain structs; the only pointer field
// (Board.KindBoardId) is never mutated in place.
func (a *arena) clone() *arena {
	return &arena{
		users:           maps.Clone(a.users),
		usernames:       maps.Clone(a.usernames),
		kindBoards:      maps.Clone(a.kindBoards),
		kindBoardNames:  maps.Clone(a.kindBoardNames),
		boards:          maps.Clone(a.boards),
		lastUserId:      a.lastUserId,
		lastKindBoardId: a.lastKindBoardId,
		lastBoardId:     a.lastBoardId,
	}
}

type Storage struct {
	mu        sync.Mutex
	committed *arena
	now       func() time.Time
}

func New() *Storage {
	return &Storage{
		committed: newArena(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithTx serializes transactions. fn reads the committed arena directly; the
// first write switches it to a private copy, which replaces the committed
// arena only if fn succeeds. Read-only transactions never copy.
func (s *Storage) WithTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{arena: s.committed, now: s.now}
	if err := fn(t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.dirty {
		s.committed = t.arena
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

type tx struct {
	*arena
	now   func() time.Time
	dirty bool
}

// write must be called before the first mutation.
func (t *tx) write() {
	if !t.dirty {
		t.arena = t.arena.clone()
		t.dirty = true
	}
}

func (t *tx) SaveUser(user domain.User) (domain.User, error) {
	if _, ok := t.usernames[user.Username]; ok {
		return domain.User{}, errors.ErrUsernameTaken
	}
	t.write()
	t.lastUserId++
	user.Id = t.lastUserId
	user.CreatedAt = t.now()
	t.users[user.Id] = user
	t.usernames[user.Username] = user.Id
	return user, nil
}

func (t *tx) UserByUsername(username domain.Username) (domain.User, error) {
	id, ok := t.usernames[username]
	if !ok {
		return domain.User{}, errors.ErrUserNotFound
	}
	return t.users[id], nil
}

func (t *tx) UserById(id domain.UserId) (domain.User, error) {
	user, ok := t.users[id]
	if !ok {
		return domain.User{}, errors.ErrUserNotFound
	}
	return user, nil
}

func (t *tx) SaveKindBoard(name domain.KindBoardName) (domain.KindBoard, error) {
	if _, ok := t.kindBoardNames[name]; ok {
		return domain.KindBoard{}, errors.ErrKindBoardExists
	}
	t.write()
	t.lastKindBoardId++
	kb := domain.KindBoard{Id: t.lastKindBoardId, Name: name, CreatedAt: t.now()}
	t.kindBoards[kb.Id] = kb
	t.kindBoardNames[name] = kb.Id
	return kb, nil
}

func (t *tx) KindBoardById(id domain.KindBoardId) (domain.KindBoard, error) {
	kb, ok := t.kindBoards[id]
	if !ok {
		return domain.KindBoard{}, errors.ErrKindBoardNotFound
	}
	return kb, nil
}

func (t *tx) KindBoardByName(name domain.KindBoardName) (domain.KindBoard, error) {
	id, ok := t.kindBoardNames[name]
	if !ok {
		return domain.KindBoard{}, errors.ErrKindBoardNotFound
	}
	return t.kindBoards[id], nil
}

func (t *tx) KindBoards() ([]domain.KindBoard, error) {
	out := make([]domain.KindBoard, 0, len(t.kindBoards))
	for _, kb := range t.kindBoards {
		out = append(out, kb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (t *tx) SaveBoard(data domain.BoardCreationData) (domain.Board, error) {
	if _, ok := t.users[data.OwnerId]; !ok {
		return domain.Board{}, errors.ErrUserNotFound
	}
	if data.KindBoardId != nil {
		if _, ok := t.kindBoards[*data.KindBoardId]; !ok {
			return domain.Board{}, errors.ErrKindBoardNotFound
		}
	}
	t.write()
	t.lastBoardId++
	now := t.now()
	board := domain.Board{
		Id:          t.lastBoardId,
		Title:       data.Title,
		Content:     data.Content,
		OwnerId:     data.OwnerId,
		KindBoardId: copyId(data.KindBoardId),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.boards[board.Id] = board
	return board, nil
}

func (t *tx) BoardById(id domain.BoardId) (domain.Board, error) {
	board, ok := t.boards[id]
	if !ok {
		return domain.Board{}, errors.ErrBoardNotFound
	}
	return board, nil
}

func (t *tx) UpdateBoard(board domain.Board) (domain.Board, error) {
	stored, ok := t.boards[board.Id]
	if !ok {
		return domain.Board{}, errors.ErrBoardNotFound
	}
	if board.KindBoardId != nil {
		if _, ok := t.kindBoards[*board.KindBoardId]; !ok {
			return domain.Board{}, errors.ErrKindBoardNotFound
		}
	}
	t.write()
	stored.Title = board.Title
	stored.Content = board.Content
	stored.KindBoardId = copyId(board.KindBoardId)
	stored.UpdatedAt = t.now()
	t.boards[stored.Id] = stored
	return stored, nil
}

func (t *tx) IncrementReadCount(id domain.BoardId) (domain.Board, error) {
	board, ok := t.boards[id]
	if !ok {
		return domain.Board{}, errors.ErrBoardNotFound
	}
	t.write()
	board.ReadCount++
	t.boards[id] = board
	return board, nil
}

func (t *tx) DeleteBoard(id domain.BoardId) error {
	if _, ok := t.boards[id]; !ok {
		return errors.ErrBoardNotFound
	}
	t.write()
	delete(t.boards, id)
	return nil
}

func (t *tx) Boards(kindBoardId *domain.KindBoardId, limit, offset int) ([]domain.Board, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, errors.InvalidArgument("limit and offset must not be negative")
	}
	matched := make([]domain.Board, 0, len(t.boards))
	for _, b := range t.boards {
		if kindBoardId != nil && (b.KindBoardId == nil || *b.KindBoardId != *kindBoardId) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Id > matched[j].Id })

	total := len(matched)
	if offset >= total {
		return []domain.Board{}, total, nil
	}
	end := offset + min(limit, total-offset)
	return matched[offset:end], total, nil
}

func copyId(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
