package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RulesRepository - интерфейс для получения правил по стране, методу закупки и операции.
type RulesRepository interface {
	Find(ctx context.Context, country, pmd, operationType, parameter string) (string, error)
}

// PostgresRulesRepository - реализация RulesRepository для базы данных.
type PostgresRulesRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresRulesRepository создаёт новый экземпляр PostgresRulesRepository.
func NewPostgresRulesRepository(db *pgxpool.Pool) *PostgresRulesRepository {
	return &PostgresRulesRepository{DB: db}
}

// Find возвращает значение правила или ErrNotFound.
func (r *PostgresRulesRepository) Find(ctx context.Context, country, pmd, operationType, parameter string) (string, error) {
	var value string
	query := `SELECT value FROM rules
	          WHERE country = $1 AND pmd = $2 AND operation_type = $3 AND parameter = $4`
	err := r.DB.QueryRow(ctx, query, country, pmd, operationType, parameter).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("rule %s/%s/%s/%s: %w", country, pmd, operationType, parameter, mapError(err))
	}
	return value, nil
}
