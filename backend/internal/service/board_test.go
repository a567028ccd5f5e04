package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/itchan-dev/kindboard/shared/domain"
	internal_errors "github.com/itchan-dev/kindboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves title and content", func(t *testing.T) {
		f := setUp(t)
		title, content := "  spaced *title*  ", "line one\nline <b>two</b>"

		view, err := f.boards.Create(ctx, boardInput(title, content, ""), f.user.Username)
		require.NoError(t, err)

		assert.NotZero(t, view.Id)
		assert.Equal(t, title, view.Title)
		assert.Equal(t, content, view.Content)
		assert.Zero(t, view.ReadCount)
		assert.Equal(t, f.user.Id, view.OwnerId)
		assert.Equal(t, f.user.Username, view.OwnerUsername)
		assert.Nil(t, view.KindBoardId)
		assert.Nil(t, view.KindBoardName)
	})

	t.Run("with kind board", func(t *testing.T) {
		f := setUp(t)

		view, err := f.boards.Create(ctx, boardInput("t", "c", "notice"), f.user.Username)
		require.NoError(t, err)
		require.NotNil(t, view.KindBoardId)
		assert.Equal(t, f.notice.Id, *view.KindBoardId)
		require.NotNil(t, view.KindBoardName)
		assert.Equal(t, "notice", *view.KindBoardName)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := setUp(t)

		for _, username := range []string{"ghost", "", "ADMIN"} {
			_, err := f.boards.Create(ctx, boardInput("t", "c", ""), username)
			assert.ErrorIs(t, err, internal_errors.ErrUserNotFound, "username %q", username)
		}
	})

	t.Run("unknown kind board", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Create(ctx, boardInput("t", "c", "missing"), f.user.Username)
		assert.ErrorIs(t, err, internal_errors.ErrKindBoardNotFound)

		page, err := f.boards.List(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total, "failed create must not leave a board behind")
	})

	t.Run("missing fields", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Create(ctx, domain.BoardInput{Content: domain.Some("c")}, f.user.Username)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidArgument)

		_, err = f.boards.Create(ctx, domain.BoardInput{Title: domain.Some("t")}, f.user.Username)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidArgument)

		_, err = f.boards.Create(ctx, boardInput("   ", "c", ""), f.user.Username)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidArgument)
	})

	t.Run("storage error", func(t *testing.T) {
		b := NewBoard(&MockStorage{err: errStorage}, &MockBoardValidator{}, 10)

		_, err := b.Create(ctx, boardInput("t", "c", ""), "user")
		assert.ErrorIs(t, err, errStorage)
	})
}

func TestBoardGet(t *testing.T) {
	ctx := context.Background()

	t.Run("each read counts once", func(t *testing.T) {
		f := setUp(t)

		const reads = 5
		var last domain.BoardView
		for i := 1; i <= reads; i++ {
			view, err := f.boards.Get(ctx, f.userBoard.Id)
			require.NoError(t, err)
			assert.Equal(t, int64(i), view.ReadCount)
			last = view
		}

		assert.Equal(t, f.userBoard.Title, last.Title)
		assert.Equal(t, f.userBoard.Content, last.Content)
		assert.Equal(t, f.userBoard.OwnerId, last.OwnerId)
		assert.Equal(t, f.userBoard.KindBoardId, last.KindBoardId)
		assert.Equal(t, f.userBoard.UpdatedAt, last.UpdatedAt)
	})

	t.Run("reads of one board do not touch another", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Get(ctx, f.userBoard.Id)
		require.NoError(t, err)

		view, err := f.boards.Get(ctx, f.adminBoard.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.ReadCount)
		require.NotNil(t, view.KindBoardName)
		assert.Equal(t, "notice", *view.KindBoardName)
	})

	t.Run("not found", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Get(ctx, 9999)
		assert.ErrorIs(t, err, internal_errors.ErrBoardNotFound)
	})
}

func TestBoardUpdatePatch(t *testing.T) {
	ctx := context.Background()

	t.Run("absent title is kept", func(t *testing.T) {
		f := setUp(t)

		input := domain.BoardInput{Content: domain.Some("X")}
		view, err := f.boards.Update(ctx, f.userBoard.Id, input, f.user.Username, MethodPatch)
		require.NoError(t, err)

		assert.Equal(t, f.userBoard.Title, view.Title)
		assert.Equal(t, "X", view.Content)
	})

	t.Run("absent content is kept", func(t *testing.T) {
		f := setUp(t)

		input := domain.BoardInput{Title: domain.Some("T")}
		view, err := f.boards.Update(ctx, f.userBoard.Id, input, f.user.Username, MethodPatch)
		require.NoError(t, err)

		assert.Equal(t, "T", view.Title)
		assert.Equal(t, f.userBoard.Content, view.Content)
	})

	t.Run("both fields", func(t *testing.T) {
		f := setUp(t)

		view, err := f.boards.Update(ctx, f.userBoard.Id, boardInput("T", "X", ""), f.user.Username, MethodPatch)
		require.NoError(t, err)

		assert.Equal(t, "T", view.Title)
		assert.Equal(t, "X", view.Content)
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		f := setUp(t)

		view, err := f.boards.Update(ctx, f.adminBoard.Id, domain.BoardInput{}, f.admin.Username, MethodPatch)
		require.NoError(t, err)

		assert.Equal(t, f.adminBoard.Title, view.Title)
		assert.Equal(t, f.adminBoard.Content, view.Content)
		assert.Equal(t, f.adminBoard.KindBoardId, view.KindBoardId)
	})

	t.Run("method is case insensitive", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Update(ctx, f.userBoard.Id, domain.BoardInput{Title: domain.Some("T")}, f.user.Username, "patch")
		assert.NoError(t, err)
	})
}

func TestBoardUpdatePut(t *testing.T) {
	ctx := context.Background()

	t.Run("absent title fails whatever the content", func(t *testing.T) {
		f := setUp(t)

		for _, input := range []domain.BoardInput{
			{Content: domain.Some("X")},
			{Content: domain.Some("")},
			{},
		} {
			_, err := f.boards.Update(ctx, f.userBoard.Id, input, f.user.Username, MethodPut)
			assert.ErrorIs(t, err, internal_errors.ErrInvalidArgument)
		}

		view, err := f.boards.Get(ctx, f.userBoard.Id)
		require.NoError(t, err)
		assert.Equal(t, f.userBoard.Content, view.Content)
	})

	t.Run("absent content fails", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Update(ctx, f.userBoard.Id, domain.BoardInput{Title: domain.Some("T")}, f.user.Username, MethodPut)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidArgument)
	})

	t.Run("sets both fields", func(t *testing.T) {
		f := setUp(t)

		view, err := f.boards.Update(ctx, f.userBoard.Id, boardInput("T", "X", ""), f.user.Username, MethodPut)
		require.NoError(t, err)

		assert.Equal(t, "T", view.Title)
		assert.Equal(t, "X", view.Content)
	})

	t.Run("sets fields even when unchanged", func(t *testing.T) {
		f := setUp(t)

		view, err := f.boards.Update(ctx, f.userBoard.Id, boardInput(f.userBoard.Title, f.userBoard.Content, ""), f.user.Username, MethodPut)
		require.NoError(t, err)

		assert.Equal(t, f.userBoard.Title, view.Title)
		assert.Equal(t, f.userBoard.Content, view.Content)
	})
}

func TestBoardUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("board not found", func(t *testing.T) {
		f := setUp(t)

		for _, method := range []string{MethodPut, MethodPatch} {
			_, err := f.boards.Update(ctx, 9999, boardInput("T", "X", ""), f.user.Username, method)
			assert.ErrorIs(t, err, internal_errors.ErrBoardNotFound, method)
		}
	})

	t.Run("unsupported method", func(t *testing.T) {
		f := setUp(t)

		for _, method := range []string{"POST", "DELETE", ""} {
			_, err := f.boards.Update(ctx, f.userBoard.Id, boardInput("T", "X", ""), f.user.Username, method)
			assert.ErrorIs(t, err, internal_errors.ErrInvalidArgument, method)
		}
	})

	t.Run("owner and read count are kept", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Get(ctx, f.userBoard.Id)
		require.NoError(t, err)

		for _, method := range []string{MethodPut, MethodPatch} {
			view, err := f.boards.Update(ctx, f.userBoard.Id, boardInput("T", "X", ""), f.user.Username, method)
			require.NoError(t, err)
			assert.Equal(t, f.user.Id, view.OwnerId)
			assert.Equal(t, f.user.Username, view.OwnerUsername)
			assert.Equal(t, int64(1), view.ReadCount)
		}
	})

	t.Run("only the owner may update", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Update(ctx, f.userBoard.Id, boardInput("T", "X", ""), f.admin.Username, MethodPut)
		assert.ErrorIs(t, err, internal_errors.ErrNotOwner)

		_, err = f.boards.Update(ctx, f.adminBoard.Id, domain.BoardInput{Title: domain.Some("T")}, f.user.Username, MethodPatch)
		assert.ErrorIs(t, err, internal_errors.ErrNotOwner)
	})

	t.Run("unknown acting user", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Update(ctx, f.userBoard.Id, boardInput("T", "X", ""), "ghost", MethodPut)
		assert.ErrorIs(t, err, internal_errors.ErrUserNotFound)
	})

	t.Run("recategorize", func(t *testing.T) {
		f := setUp(t)
		news, err := f.kindBoards.Create(ctx, "news")
		require.NoError(t, err)

		view, err := f.boards.Update(ctx, f.userBoard.Id, domain.BoardInput{KindBoardName: domain.Some("news")}, f.user.Username, MethodPatch)
		require.NoError(t, err)
		require.NotNil(t, view.KindBoardId)
		assert.Equal(t, news.Id, *view.KindBoardId)
		assert.Equal(t, f.userBoard.Title, view.Title)

		view, err = f.boards.Update(ctx, f.adminBoard.Id, boardInput("T", "X", "news"), f.admin.Username, MethodPut)
		require.NoError(t, err)
		require.NotNil(t, view.KindBoardName)
		assert.Equal(t, "news", *view.KindBoardName)
	})

	t.Run("absent kind board keeps category", func(t *testing.T) {
		f := setUp(t)

		view, err := f.boards.Update(ctx, f.adminBoard.Id, boardInput("T", "X", ""), f.admin.Username, MethodPut)
		require.NoError(t, err)
		require.NotNil(t, view.KindBoardId)
		assert.Equal(t, f.notice.Id, *view.KindBoardId)
	})

	t.Run("unknown kind board", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Update(ctx, f.userBoard.Id, boardInput("T", "X", "missing"), f.user.Username, MethodPut)
		assert.ErrorIs(t, err, internal_errors.ErrKindBoardNotFound)

		view, err := f.boards.Get(ctx, f.userBoard.Id)
		require.NoError(t, err)
		assert.Equal(t, f.userBoard.Title, view.Title, "failed update must roll back")
	})

	t.Run("validator error", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Update(ctx, f.userBoard.Id, domain.BoardInput{Title: domain.Some(" ")}, f.user.Username, MethodPatch)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidArgument)
	})
}

func TestBoardDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		f := setUp(t)

		deleted, err := f.boards.Delete(ctx, f.userBoard.Id, f.user.Username)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = f.boards.Get(ctx, f.userBoard.Id)
		assert.ErrorIs(t, err, internal_errors.ErrBoardNotFound)
	})

	t.Run("admin owner deletes", func(t *testing.T) {
		f := setUp(t)

		deleted, err := f.boards.Delete(ctx, f.adminBoard.Id, f.admin.Username)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("admin non-owner does not delete", func(t *testing.T) {
		f := setUp(t)

		deleted, err := f.boards.Delete(ctx, f.userBoard.Id, f.admin.Username)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = f.boards.Get(ctx, f.userBoard.Id)
		assert.NoError(t, err)
	})

	t.Run("other user does not delete", func(t *testing.T) {
		f := setUp(t)

		deleted, err := f.boards.Delete(ctx, f.adminBoard.Id, f.user.Username)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = f.boards.Delete(ctx, f.adminBoard.Id, "ghost")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("not found", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.Delete(ctx, 9999, f.user.Username)
		assert.ErrorIs(t, err, internal_errors.ErrBoardNotFound)
	})
}

func TestBoardList(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first with pages", func(t *testing.T) {
		f := setUp(t)
		b := NewBoard(f.storage, &MockBoardValidator{}, 2)
		for i := 0; i < 3; i++ {
			_, err := b.Create(ctx, boardInput(fmt.Sprintf("extra %d", i), "c", ""), f.user.Username)
			require.NoError(t, err)
		}

		first, err := b.List(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, first.Total)
		assert.Equal(t, 1, first.Page)
		require.Len(t, first.Boards, 2)
		assert.Equal(t, "extra 2", first.Boards[0].Title)
		assert.Equal(t, "extra 1", first.Boards[1].Title)

		last, err := b.List(ctx, 3)
		require.NoError(t, err)
		require.Len(t, last.Boards, 1)
		assert.Equal(t, f.adminBoard.Id, last.Boards[0].Id)
		assert.Equal(t, "admin", last.Boards[0].OwnerUsername)

		beyond, err := b.List(ctx, 4)
		require.NoError(t, err)
		assert.Empty(t, beyond.Boards)
		assert.Equal(t, 5, beyond.Total)
	})

	t.Run("page below one is the first page", func(t *testing.T) {
		f := setUp(t)

		page, err := f.boards.List(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Boards, 2)
	})

	t.Run("by kind board", func(t *testing.T) {
		f := setUp(t)

		page, err := f.boards.ListByKindBoard(ctx, "notice", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Boards, 1)
		assert.Equal(t, f.adminBoard.Id, page.Boards[0].Id)
	})

	t.Run("by unknown kind board", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.ListByKindBoard(ctx, "missing", 1)
		assert.ErrorIs(t, err, internal_errors.ErrKindBoardNotFound)

		_, err = f.boards.ListByKindBoard(ctx, "", 1)
		assert.ErrorIs(t, err, internal_errors.ErrKindBoardNotFound)
	})

	t.Run("huge page is empty", func(t *testing.T) {
		f := setUp(t)

		for _, page := range []int{math.MaxInt, math.MaxInt/10 + 2} {
			result, err := f.boards.List(ctx, page)
			require.NoError(t, err)
			assert.Equal(t, page, result.Page)
			assert.Equal(t, 2, result.Total)
			assert.Empty(t, result.Boards)
		}

		result, err := f.boards.ListByKindBoard(ctx, "notice", math.MaxInt)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		assert.Empty(t, result.Boards)
	})

	t.Run("listing does not count reads", func(t *testing.T) {
		f := setUp(t)

		_, err := f.boards.List(ctx, 1)
		require.NoError(t, err)

		view, err := f.boards.Get(ctx, f.userBoard.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.ReadCount)
	})

	t.Run("storage error", func(t *testing.T) {
		b := NewBoard(&MockStorage{err: errStorage}, &MockBoardValidator{}, 10)

		_, err := b.List(ctx, 1)
		assert.ErrorIs(t, err, errStorage)
	})
}

// MockBoardValidator accepts everything unless told otherwise.
type MockBoardValidator struct {
	titleFunc   func(title string) error
	contentFunc func(content string) error
}

func (m *MockBoardValidator) Title(title string) error {
	if m.titleFunc != nil {
		return m.titleFunc(title)
	}
	return nil
}

func (m *MockBoardValidator) Content(content string) error {
	if m.contentFunc != nil {
		return m.contentFunc(content)
	}
	return nil
}
