package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"
)

// storedDocument - снимок стадии вместе с разобранным jsonData.
type storedDocument struct {
	Entity   *models.TenderProcessEntity
	Document *models.TenderDocument
}

// loadDocument читает снимок через lookup и разбирает jsonData.
func loadDocument(key string, lookup func() (*models.TenderProcessEntity, error)) (*storedDocument, error) {
	entity, err := lookup()
	if err != nil {
		return nil, translateRepoError(err, key)
	}
	var doc models.TenderDocument
	if err := json.Unmarshal(entity.JsonData, &doc); err != nil {
		return nil, models.ErrDataParse.WithDetails("%s: %v", key, err)
	}
	return &storedDocument{Entity: entity, Document: &doc}, nil
}

func loadByOcid(ctx context.Context, repo repository.TenderProcessRepository, cpid, ocid string) (*storedDocument, error) {
	return loadDocument(fmt.Sprintf("cpid '%s', ocid '%s'", cpid, ocid), func() (*models.TenderProcessEntity, error) {
		return repo.GetByCpidAndOcid(ctx, cpid, ocid)
	})
}

func loadByStage(ctx context.Context, repo repository.TenderProcessRepository, cpid, stage string) (*storedDocument, error) {
	return loadDocument(fmt.Sprintf("cpid '%s', stage '%s'", cpid, stage), func() (*models.TenderProcessEntity, error) {
		return repo.GetByCpidAndStage(ctx, cpid, stage)
	})
}

func encodeDocument(doc *models.TenderDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, models.ErrDataParse.WithDetails("encode document: %v", err)
	}
	return data, nil
}

// translateRepoError переводит ошибки репозитория в ошибки для клиента.
func translateRepoError(err error, key string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.ErrTenderNotFound.WithDetails("%s", key)
	case errors.Is(err, repository.ErrConflict):
		return models.ErrConcurrentModification.WithDetails("%s", key)
	default:
		return models.ErrDatabase.WithDetails("%s: %v", key, err)
	}
}
