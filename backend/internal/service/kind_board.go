package service

import (
	"context"

	"github.com/itchan-dev/kindboard/backend/internal/storage"
	"github.com/itchan-dev/kindboard/shared/domain"
	"github.com/itchan-dev/kindboard/shared/errors"
	"github.com/itchan-dev/kindboard/shared/logger"
)

// to mock service in tests
type KindBoardService interface {
	Create(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error)
	GetById(ctx context.Context, id domain.KindBoardId) (domain.KindBoard, error)
	GetByName(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error)
	List(ctx context.Context) ([]domain.KindBoard, error)
}

type KindBoardValidator interface {
	Name(name string) error
}

type KindBoard struct {
	storage   storage.Storage
	validator KindBoardValidator
}

func NewKindBoard(storage storage.Storage, validator KindBoardValidator) *KindBoard {
	return &KindBoard{storage: storage, validator: validator}
}

func (k *KindBoard) Create(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error) {
	if err := k.validator.Name(name); err != nil {
		return domain.KindBoard{}, err
	}

	var kb domain.KindBoard
	err := k.storage.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		kb, err = tx.SaveKindBoard(name)
		return err
	})
	if err != nil {
		return domain.KindBoard{}, err
	}

	logger.FromContext(ctx).Info("kind board created", "kind_board_id", kb.Id, "name", kb.Name)
	return kb, nil
}

// GetById treats non-positive ids as absent without touching storage.
func (k *KindBoard) GetById(ctx context.Context, id domain.KindBoardId) (domain.KindBoard, error) {
	if id <= 0 {
		return domain.KindBoard{}, errors.ErrKindBoardNotFound
	}
	var kb domain.KindBoard
	err := k.storage.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		kb, err = tx.KindBoardById(id)
		return err
	})
	return kb, err
}

func (k *KindBoard) GetByName(ctx context.Context, name domain.KindBoardName) (domain.KindBoard, error) {
	var kb domain.KindBoard
	err := k.storage.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		kb, err = kindBoardByName(tx, name)
		return err
	})
	return kb, err
}

func (k *KindBoard) List(ctx context.Context) ([]domain.KindBoard, error) {
	var kindBoards []domain.KindBoard
	err := k.storage.WithTx(ctx, func(tx storage.Tx) error {
		var err error
		kindBoards, err = tx.KindBoards()
		return err
	})
	return kindBoards, err
}

// kindBoardByName is shared with the board service, which categorizes by name.
func kindBoardByName(tx storage.KindBoardStore, name domain.KindBoardName) (domain.KindBoard, error) {
	if name == "" {
		return domain.KindBoard{}, errors.ErrKindBoardNotFound
	}
	return tx.KindBoardByName(name)
}
