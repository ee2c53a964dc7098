package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prodlog/internal/storage"
)

func (s *Storage) CreateUser(ctx context.Context, u storage.NewUser) (storage.User, error) {
	const op = "storage.mysql.CreateUser"

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, name, role, operator_id) VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Name, u.Role, u.OperatorID,
	)
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: ошибка создания пользователя %q: %w", op, u.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return storage.User{
		ID:           id,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         u.Role,
		OperatorID:   u.OperatorID,
	}, nil
}

const userColumns = `id, username, password_hash, name, role, operator_id`

func (s *Storage) GetUser(ctx context.Context, id int64) (storage.User, error) {
	const op = "storage.mysql.GetUser"

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrUserNotFound)
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// GetUserByUsername - дубли логинов возможны, берем самого раннего
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	const op = "storage.mysql.GetUserByUsername"

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = CAST(? AS BINARY) ORDER BY id LIMIT 1`, username)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, fmt.Errorf("%s: %q: %w", op, username, storage.ErrUserNotFound)
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func scanUser(row *sql.Row) (storage.User, error) {
	var (
		user       storage.User
		operatorID sql.NullString
	)

	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.Role, &operatorID); err != nil {
		return storage.User{}, err
	}

	if operatorID.Valid {
		user.OperatorID = &operatorID.String
	}

	return user, nil
}
