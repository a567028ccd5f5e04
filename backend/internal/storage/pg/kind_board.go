package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/kindboard/shared/domain"
	internal_errors "github.com/itchan-dev/kindboard/shared/errors"
)

func (t *txStore) SaveKindBoard(name domain.KindBoardName) (domain.KindBoard, error) {
	kb := domain.KindBoard{Name: name}
	err := t.q.QueryRow("INSERT INTO kind_boards(name) VALUES($1) RETURNING id, created_at", name).Scan(&kb.Id, &kb.CreatedAt)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.KindBoard{}, internal_errors.ErrKindBoardExists
		}
		return domain.KindBoard{}, fmt.Errorf("failed to insert kind board: %w", err)
	}
	return kb, nil
}

func (t *txStore) KindBoardById(id domain.KindBoardId) (domain.KindBoard, error) {
	return t.kindBoard("SELECT id, name, created_at FROM kind_boards WHERE id = $1", id)
}

func (t *txStore) KindBoardByName(name domain.KindBoardName) (domain.KindBoard, error) {
	return t.kindBoard("SELECT id, name, created_at FROM kind_boards WHERE name = $1", name)
}

func (t *txStore) kindBoard(query string, arg any) (domain.KindBoard, error) {
	var kb domain.KindBoard
	if err := t.q.QueryRow(query, arg).Scan(&kb.Id, &kb.Name, &kb.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.KindBoard{}, internal_errors.ErrKindBoardNotFound
		}
		return domain.KindBoard{}, fmt.Errorf("failed to query kind board: %w", err)
	}
	return kb, nil
}

func (t *txStore) KindBoards() ([]domain.KindBoard, error) {
	rows, err := t.q.Query("SELECT id, name, created_at FROM kind_boards ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query kind boards: %w", err)
	}
	defer rows.Close()

	kindBoards := []domain.KindBoard{}
	for rows.Next() {
		var kb domain.KindBoard
		if err := rows.Scan(&kb.Id, &kb.Name, &kb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kind board row: %w", err)
		}
		kindBoards = append(kindBoards, kb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return kindBoards, nil
}
