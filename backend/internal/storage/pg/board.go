package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/kindboard/shared/domain"
	internal_errors "github.com/itchan-dev/kindboard/shared/errors"
	"github.com/lib/pq"
)

const boardColumns = "id, title, content, read_count, owner_id, kind_board_id, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (domain.Board, error) {
	var b domain.Board
	var kindBoardId sql.NullInt64
	if err := row.Scan(&b.Id, &b.Title, &b.Content, &b.ReadCount, &b.OwnerId, &kindBoardId, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return domain.Board{}, err
	}
	if kindBoardId.Valid {
		id := kindBoardId.Int64
		b.KindBoardId = &id
	}
	return b, nil
}

func nullableId(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// boardWriteError maps foreign key violations to the missing reference.
func boardWriteError(action string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
		if pqErr.Constraint == "boards_kind_board_id_fkey" {
			return internal_errors.ErrKindBoardNotFound
		}
		return internal_errors.ErrUserNotFound
	}
	return fmt.Errorf("failed to %s board: %w", action, err)
}

func (t *txStore) SaveBoard(data domain.BoardCreationData) (domain.Board, error) {
	row := t.q.QueryRow(`
		INSERT INTO boards(title, content, owner_id, kind_board_id) VALUES($1, $2, $3, $4)
		RETURNING `+boardColumns,
		data.Title, data.Content, data.OwnerId, nullableId(data.KindBoardId),
	)
	board, err := scanBoard(row)
	if err != nil {
		return domain.Board{}, boardWriteError("insert", err)
	}
	return board, nil
}

func (t *txStore) BoardById(id domain.BoardId) (domain.Board, error) {
	board, err := scanBoard(t.q.QueryRow("SELECT "+boardColumns+" FROM boards WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.ErrBoardNotFound
		}
		return domain.Board{}, fmt.Errorf("failed to query board: %w", err)
	}
	return board, nil
}

func (t *txStore) UpdateBoard(board domain.Board) (domain.Board, error) {
	row := t.q.QueryRow(`
		UPDATE boards SET title = $1, content = $2, kind_board_id = $3, updated_at = now()
		WHERE id = $4
		RETURNING `+boardColumns,
		board.Title, board.Content, nullableId(board.KindBoardId), board.Id,
	)
	updated, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.ErrBoardNotFound
		}
		return domain.Board{}, boardWriteError("update", err)
	}
	return updated, nil
}

func (t *txStore) IncrementReadCount(id domain.BoardId) (domain.Board, error) {
	row := t.q.QueryRow("UPDATE boards SET read_count = read_count + 1 WHERE id = $1 RETURNING "+boardColumns, id)
	board, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.ErrBoardNotFound
		}
		return domain.Board{}, fmt.Errorf("failed to increment read count: %w", err)
	}
	return board, nil
}

func (t *txStore) DeleteBoard(id domain.BoardId) error {
	result, err := t.q.Exec("DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for board deletion: %w", err)
	}
	if deleted == 0 {
		return internal_errors.ErrBoardNotFound
	}
	return nil
}

func (t *txStore) Boards(kindBoardId *domain.KindBoardId, limit, offset int) ([]domain.Board, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, internal_errors.InvalidArgument("limit and offset must not be negative")
	}
	filter := nullableId(kindBoardId)

	var total int
	err := t.q.QueryRow("SELECT count(*) FROM boards WHERE $1::BIGINT IS NULL OR kind_board_id = $1", filter).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count boards: %w", err)
	}

	rows, err := t.q.Query(`
		SELECT `+boardColumns+` FROM boards
		WHERE $1::BIGINT IS NULL OR kind_board_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		filter, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan board row: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, total, nil
}
