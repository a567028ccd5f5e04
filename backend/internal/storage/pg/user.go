package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/kindboard/shared/domain"
	internal_errors "github.com/itchan-dev/kindboard/shared/errors"
)

func (t *txStore) SaveUser(user domain.User) (domain.User, error) {
	err := t.q.QueryRow(`
		INSERT INTO users(username, password_hash, authority) VALUES($1, $2, $3)
		RETURNING id, created_at`,
		user.Username, user.PassHash, string(user.Authority),
	).Scan(&user.Id, &user.CreatedAt)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.User{}, internal_errors.ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (t *txStore) UserByUsername(username domain.Username) (domain.User, error) {
	return t.user("SELECT id, username, password_hash, authority, created_at FROM users WHERE username = $1", username)
}

func (t *txStore) UserById(id domain.UserId) (domain.User, error) {
	return t.user("SELECT id, username, password_hash, authority, created_at FROM users WHERE id = $1", id)
}

func (t *txStore) user(query string, arg any) (domain.User, error) {
	var user domain.User
	var authority string
	err := t.q.QueryRow(query, arg).Scan(&user.Id, &user.Username, &user.PassHash, &authority, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	user.Authority = domain.Authority(authority)
	return user, nil
}
