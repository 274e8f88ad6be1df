package repository

import (
	"context"
	"fmt"

	"github.com/senyabanana/access-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository - интерфейс для хранения ответов на обработанные команды.
type HistoryRepository interface {
	Find(ctx context.Context, commandID string, action models.Action) (*models.HistoryEntity, error)
	Save(ctx context.Context, entity models.HistoryEntity) error
}

// PostgresHistoryRepository - реализация HistoryRepository для базы данных.
type PostgresHistoryRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresHistoryRepository создаёт новый экземпляр PostgresHistoryRepository.
func NewPostgresHistoryRepository(db *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{DB: db}
}

// Find возвращает сохраненный ответ на команду или ErrNotFound.
func (r *PostgresHistoryRepository) Find(ctx context.Context, commandID string, action models.Action) (*models.HistoryEntity, error) {
	var entity models.HistoryEntity
	query := `SELECT command_id, action, created_date, json_data FROM history WHERE command_id = $1 AND action = $2`
	err := r.DB.QueryRow(ctx, query, commandID, string(action)).Scan(
		&entity.CommandID,
		&entity.Action,
		&entity.CreatedDate,
		&entity.JsonData,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &entity, nil
}

// Save сохраняет ответ; повторная команда с тем же id не перезаписывает первый ответ.
func (r *PostgresHistoryRepository) Save(ctx context.Context, entity models.HistoryEntity) error {
	_, err := r.DB.Exec(ctx, `
       INSERT INTO history (command_id, action, created_date, json_data)
       VALUES ($1, $2, $3, $4)
       ON CONFLICT (command_id, action) DO NOTHING
   `,
		entity.CommandID,
		string(entity.Action),
		entity.CreatedDate,
		entity.JsonData)
	if err != nil {
		return fmt.Errorf("failed to insert history %s: %w", entity.CommandID, err)
	}
	return nil
}
