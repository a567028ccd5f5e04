package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/itchan-dev/kindboard/backend/internal/handler"
	"github.com/itchan-dev/kindboard/backend/internal/service"
	"github.com/itchan-dev/kindboard/backend/internal/storage"
	"github.com/itchan-dev/kindboard/backend/internal/storage/memory"
	"github.com/itchan-dev/kindboard/backend/internal/storage/pg"
	"github.com/itchan-dev/kindboard/backend/internal/utils"
	"github.com/itchan-dev/kindboard/shared/config"
	"github.com/itchan-dev/kindboard/shared/domain"
	internal_errors "github.com/itchan-dev/kindboard/shared/errors"
	"github.com/itchan-dev/kindboard/shared/jwt"
	"github.com/itchan-dev/kindboard/shared/markdown"
	mw "github.com/itchan-dev/kindboard/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        storage.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService

	cleanup func() error
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, cleanup, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	users := service.NewUser(store, &utils.UserValidator{}, jwtService)
	kindBoards := service.NewKindBoard(store, &utils.KindBoardNameValidator{})
	boards := service.NewBoard(store, &utils.BoardValidator{}, cfg.Public.BoardsPerPage)

	if err := seedAdmin(users, cfg.Private.Admin); err != nil {
		cleanup()
		return nil, err
	}

	h := handler.New(users, kindBoards, boards, store, markdown.New(), cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        store,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService),
		Jwt:            jwtService,
		cleanup:        cleanup,
	}, nil
}

func newStorage(cfg *config.Config) (storage.Storage, func() error, error) {
	switch cfg.Public.Storage {
	case config.StorageMemory:
		return memory.New(), func() error { return nil }, nil
	case config.StoragePostgres:
		s, err := pg.New(cfg.Private.Pg)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
	}
}

// seedAdmin creates the configured admin unless the username already exists.
func seedAdmin(users *service.User, admin *config.Admin) error {
	if admin == nil {
		return nil
	}
	_, err := users.Create(context.Background(), domain.UserCreationData{
		Username:  admin.Username,
		Password:  admin.Password,
		Authority: domain.AuthorityAdmin,
	})
	if err != nil && !errors.Is(err, internal_errors.ErrUsernameTaken) {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}

// Cleanup releases storage resources.
func (d *Dependencies) Cleanup() error {
	if d.cleanup == nil {
		return nil
	}
	return d.cleanup()
}
