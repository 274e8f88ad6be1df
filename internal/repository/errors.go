package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgDuplicateKeyCode = "23505"

var (
	// ErrNotFound - запись с указанным ключом отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrConflict - условная запись отклонена: ключ занят или строка изменена.
	ErrConflict = errors.New("record was modified concurrently")
)

// mapError переводит ошибки pgx в ошибки репозитория.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateKeyCode {
		return ErrConflict
	}
	return err
}
