package repository

import (
	"context"
	"fmt"

	"github.com/senyabanana/access-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// TenderProcessRepository - интерфейс для работы со снимками стадий тендера.
type TenderProcessRepository interface {
	GetByCpidAndOcid(ctx context.Context, cpid, ocid string) (*models.TenderProcessEntity, error)
	GetByCpidAndStage(ctx context.Context, cpid, stage string) (*models.TenderProcessEntity, error)
	GetLatestByStages(ctx context.Context, cpid string, stages []string) (*models.TenderProcessEntity, error)
	Save(ctx context.Context, entity models.TenderProcessEntity) error
	Update(ctx context.Context, entity models.TenderProcessEntity) error
}

// PostgresTenderRepository - реализация TenderProcessRepository для базы данных.
type PostgresTenderRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTenderRepository создаёт новый экземпляр PostgresTenderRepository.
func NewPostgresTenderRepository(db *pgxpool.Pool) *PostgresTenderRepository {
	return &PostgresTenderRepository{DB: db}
}

const selectTender = `SELECT cpid, ocid, stage, token, owner, created_date, json_data FROM tenders`

// GetByCpidAndOcid возвращает снимок стадии по cpid и ocid.
func (r *PostgresTenderRepository) GetByCpidAndOcid(ctx context.Context, cpid, ocid string) (*models.TenderProcessEntity, error) {
	query := selectTender + ` WHERE cpid = $1 AND ocid = $2`
	return r.queryOne(ctx, query, cpid, ocid)
}

// GetByCpidAndStage возвращает последний снимок указанной стадии.
func (r *PostgresTenderRepository) GetByCpidAndStage(ctx context.Context, cpid, stage string) (*models.TenderProcessEntity, error) {
	query := selectTender + ` WHERE cpid = $1 AND stage = $2 ORDER BY created_date DESC LIMIT 1`
	return r.queryOne(ctx, query, cpid, stage)
}

// GetLatestByStages возвращает последний снимок среди перечисленных стадий.
func (r *PostgresTenderRepository) GetLatestByStages(ctx context.Context, cpid string, stages []string) (*models.TenderProcessEntity, error) {
	query := selectTender + ` WHERE cpid = $1 AND stage = ANY($2) ORDER BY created_date DESC LIMIT 1`
	return r.queryOne(ctx, query, cpid, pq.Array(stages))
}

// Save сохраняет новый снимок; занятый ключ возвращает ErrConflict.
func (r *PostgresTenderRepository) Save(ctx context.Context, entity models.TenderProcessEntity) error {
	_, err := r.DB.Exec(ctx, `
       INSERT INTO tenders (cpid, ocid, stage, token, owner, created_date, json_data)
       VALUES ($1, $2, $3, $4, $5, $6, $7)
   `,
		entity.Cpid,
		entity.Ocid,
		entity.Stage,
		entity.Token,
		entity.Owner,
		entity.CreatedDate,
		entity.JsonData)
	if err != nil {
		return fmt.Errorf("failed to insert tender %s/%s: %w", entity.Cpid, entity.Ocid, mapError(err))
	}
	return nil
}

// Update перезаписывает jsonData, если токен не изменился; иначе ErrConflict.
func (r *PostgresTenderRepository) Update(ctx context.Context, entity models.TenderProcessEntity) error {
	updateQuery := `UPDATE tenders SET json_data = $1 WHERE cpid = $2 AND ocid = $3 AND token = $4`
	tag, err := r.DB.Exec(ctx, updateQuery, entity.JsonData, entity.Cpid, entity.Ocid, entity.Token)
	if err != nil {
		return fmt.Errorf("failed to update tender %s/%s: %w", entity.Cpid, entity.Ocid, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tender %s/%s: %w", entity.Cpid, entity.Ocid, ErrConflict)
	}
	return nil
}

func (r *PostgresTenderRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*models.TenderProcessEntity, error) {
	var entity models.TenderProcessEntity
	err := r.DB.QueryRow(ctx, query, args...).Scan(
		&entity.Cpid,
		&entity.Ocid,
		&entity.Stage,
		&entity.Token,
		&entity.Owner,
		&entity.CreatedDate,
		&entity.JsonData,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &entity, nil
}
