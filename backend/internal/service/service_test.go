package service

import (
	"context"
	"errors"
	"testing"

	"github.com/itchan-dev/kindboard/backend/internal/storage"
	"github.com/itchan-dev/kindboard/backend/internal/storage/memory"
	"github.com/itchan-dev/kindboard/backend/internal/utils"
	"github.com/itchan-dev/kindboard/shared/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mocks ---

// MockStorage fails every transaction with err.
type MockStorage struct {
	err error
}

func (m *MockStorage) WithTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	return m.err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.err
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token-" + user.Username, nil
}

var errStorage = errors.New("storage is down")

// --- Fixtures ---

type fixture struct {
	storage *memory.Storage

	users      *User
	kindBoards *KindBoard
	boards     *Board

	admin      domain.User
	user       domain.User
	adminBoard domain.BoardView
	userBoard  domain.BoardView
	notice     domain.KindBoard
}

// setUp creates an admin and a regular user, each owning one board.
func setUp(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	s := memory.New()
	f := &fixture{
		storage:    s,
		users:      newTestUserService(s, &MockJwt{}),
		kindBoards: NewKindBoard(s, &utils.KindBoardNameValidator{}),
		boards:     NewBoard(s, &utils.BoardValidator{}, 10),
	}

	var err error
	f.admin, err = f.users.Create(ctx, domain.UserCreationData{Username: "admin", Password: "adminpass", Authority: domain.AuthorityAdmin})
	require.NoError(t, err)
	f.user, err = f.users.Create(ctx, domain.UserCreationData{Username: "user", Password: "userpass", Authority: domain.AuthorityUser})
	require.NoError(t, err)

	f.notice, err = f.kindBoards.Create(ctx, "notice")
	require.NoError(t, err)

	f.adminBoard, err = f.boards.Create(ctx, boardInput("admin title", "admin content", "notice"), f.admin.Username)
	require.NoError(t, err)
	f.userBoard, err = f.boards.Create(ctx, boardInput("user title", "user content", ""), f.user.Username)
	require.NoError(t, err)

	return f
}

func newTestUserService(s storage.Storage, jwt Jwt) *User {
	u := NewUser(s, &utils.UserValidator{}, jwt)
	u.hashCost = bcrypt.MinCost
	return u
}

// boardInput builds a fully populated input; empty kindBoardName leaves the category absent.
func boardInput(title, content, kindBoardName string) domain.BoardInput {
	input := domain.BoardInput{
		Title:   domain.Some(title),
		Content: domain.Some(content),
	}
	if kindBoardName != "" {
		input.KindBoardName = domain.Some(kindBoardName)
	}
	return input
}
