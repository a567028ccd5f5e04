package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/kindboard/shared/config"
	"github.com/itchan-dev/kindboard/shared/domain"
	"github.com/itchan-dev/kindboard/shared/markdown"
	mw "github.com/itchan-dev/kindboard/shared/middleware"
)

// --- Mocks ---

type MockUserService struct {
	MockCreate func(ctx context.Context, data domain.UserCreationData) (domain.User, error)
	MockGet    func(ctx context.Context, username domain.Username) (domain.User, error)
	MockLogin  func(ctx context.Context, username domain.Username, password domain.Password) (string, error)
}

func (m *MockUserService) Create(ctx context.Context, data domain.UserCreationData) (domain.User, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, data)
	}
	return domain.User{Id: 1, Username: data.Username, Authority: domain.AuthorityUser}, nil
}

func (m *MockUserService) Get(ctx context.Context, username domain.Username) (domain.User, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, username)
	}
	return domain.User{Id: 1, Username: username, Authority: domain.AuthorityUser}, nil
}

func (m *MockUserService) Login(ctx context.Context, username domain.Username, password domain.Password) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(ctx, username, password)
	}
	return "token", nil
}

type MockKindBoardService struct {
	MockCreate    func(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error)
	MockGetById   func(ctx context.Context, id domain.KindBoardId) (domain.KindBoard, error)
	MockGetByName func(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error)
	MockList      func(ctx context.Context) ([]domain.KindBoard, error)
}

func (m *MockKindBoardService) Create(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, name)
	}
	return domain.KindBoard{Id: 1, Name: name}, nil
}

func (m *MockKindBoardService) GetById(ctx context.Context, id domain.KindBoardId) (domain.KindBoard, error) {
	if m.MockGetById != nil {
		return m.MockGetById(ctx, id)
	}
	return domain.KindBoard{Id: id, Name: "notice"}, nil
}

func (m *MockKindBoardService) GetByName(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error) {
	if m.MockGetByName != nil {
		return m.MockGetByName(ctx, name)
	}
	return domain.KindBoard{Id: 1, Name: name}, nil
}

func (m *MockKindBoardService) List(ctx context.Context) ([]domain.KindBoard, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return nil, nil
}

type MockBoardService struct {
	MockCreate          func(ctx context.Context, input domain.BoardInput, username domain.Username) (domain.BoardView, error)
	MockGet             func(ctx context.Context, id domain.BoardId) (domain.BoardView, error)
	MockUpdate          func(ctx context.Context, id domain.BoardId, input domain.BoardInput, username domain.Username, method string) (domain.BoardView, error)
	MockDelete          func(ctx context.Context, id domain.BoardId, username domain.Username) (bool, error)
	MockList            func(ctx context.Context, page int) (domain.BoardPage, error)
	MockListByKindBoard func(ctx context.Context, kindBoardName domain.KindBoardName, page int) (domain.BoardPage, error)
}

func (m *MockBoardService) Create(ctx context.Context, input domain.BoardInput, username domain.Username) (domain.BoardView, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, input, username)
	}
	return domain.BoardView{}, nil
}

func (m *MockBoardService) Get(ctx context.Context, id domain.BoardId) (domain.BoardView, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.BoardView{}, nil
}

func (m *MockBoardService) Update(ctx context.Context, id domain.BoardId, input domain.BoardInput, username domain.Username, method string) (domain.BoardView, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, input, username, method)
	}
	return domain.BoardView{}, nil
}

func (m *MockBoardService) Delete(ctx context.Context, id domain.BoardId, username domain.Username) (bool, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id, username)
	}
	return true, nil
}

func (m *MockBoardService) List(ctx context.Context, page int) (domain.BoardPage, error) {
	if m.MockList != nil {
		return m.MockList(ctx, page)
	}
	return domain.BoardPage{Page: page}, nil
}

func (m *MockBoardService) ListByKindBoard(ctx context.Context, kindBoardName domain.KindBoardName, page int) (domain.BoardPage, error) {
	if m.MockListByKindBoard != nil {
		return m.MockListByKindBoard(ctx, kindBoardName, page)
	}
	return domain.BoardPage{Page: page}, nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// --- Helpers ---

func newTestHandler() (*Handler, *MockUserService, *MockKindBoardService, *MockBoardService) {
	users := &MockUserService{}
	kinds := &MockKindBoardService{}
	boards := &MockBoardService{}
	cfg := &config.Config{Public: config.Public{JwtTTL: 3600}}
	return New(users, kinds, boards, &MockHealthChecker{}, markdown.New(), cfg), users, kinds, boards
}

func createRequest(t *testing.T, method, url string, body []byte, user *domain.User) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	if user != nil {
		req = mw.WithUser(req, user)
	}
	return req
}

func serve(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

var testUser = &domain.User{Id: 2, Username: "user", Authority: domain.AuthorityUser}
