package handler

import (
	"context"

	"github.com/itchan-dev/kindboard/backend/internal/service"
	"github.com/itchan-dev/kindboard/shared/config"
	"github.com/itchan-dev/kindboard/shared/markdown"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	user      service.UserService
	kindBoard service.KindBoardService
	board     service.BoardService
	health    HealthChecker
	markdown  *markdown.Renderer
	cfg       *config.Config
}

func New(user service.UserService, kindBoard service.KindBoardService, board service.BoardService, health HealthChecker, md *markdown.Renderer, cfg *config.Config) *Handler {
	return &Handler{
		user:      user,
		kindBoard: kindBoard,
		board:     board,
		health:    health,
		markdown:  md,
		cfg:       cfg,
	}
}
