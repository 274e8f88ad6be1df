package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"

	"github.com/stretchr/testify/require"
)

type fakeTenderRepo struct {
	mu        sync.Mutex
	entities  map[string]models.TenderProcessEntity
	updateErr error
	saved     int
	updated   int
}

func newFakeTenderRepo() *fakeTenderRepo {
	return &fakeTenderRepo{entities: make(map[string]models.TenderProcessEntity)}
}

func key(cpid, ocid string) string { return cpid + "/" + ocid }

func (r *fakeTenderRepo) GetByCpidAndOcid(_ context.Context, cpid, ocid string) (*models.TenderProcessEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.entities[key(cpid, ocid)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entity, nil
}

func (r *fakeTenderRepo) GetByCpidAndStage(ctx context.Context, cpid, stage string) (*models.TenderProcessEntity, error) {
	return r.GetLatestByStages(ctx, cpid, []string{stage})
}

func (r *fakeTenderRepo) GetLatestByStages(_ context.Context, cpid string, stages []string) (*models.TenderProcessEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.TenderProcessEntity
	for _, entity := range r.entities {
		if entity.Cpid != cpid {
			continue
		}
		for _, stage := range stages {
			if entity.Stage == stage && (latest == nil || entity.CreatedDate.After(latest.CreatedDate)) {
				e := entity
				latest = &e
			}
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

func (r *fakeTenderRepo) Save(_ context.Context, entity models.TenderProcessEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[key(entity.Cpid, entity.Ocid)]; ok {
		return repository.ErrConflict
	}
	r.entities[key(entity.Cpid, entity.Ocid)] = entity
	r.saved++
	return nil
}

func (r *fakeTenderRepo) Update(_ context.Context, entity models.TenderProcessEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.entities[key(entity.Cpid, entity.Ocid)]
	if !ok || stored.Token != entity.Token {
		return repository.ErrConflict
	}
	r.entities[key(entity.Cpid, entity.Ocid)] = entity
	r.updated++
	return nil
}

// put сохраняет документ стадии напрямую, минуя сервисы.
func (r *fakeTenderRepo) put(t *testing.T, cpid, stage string, tender models.Tender) models.TenderProcessEntity {
	t.Helper()
	ocid := fmt.Sprintf("%s-%s-%d", cpid, stage, len(r.entities)+1)
	data, err := json.Marshal(models.TenderDocument{Ocid: ocid, Tender: tender})
	require.NoError(t, err)

	entity := models.TenderProcessEntity{
		Cpid:        cpid,
		Ocid:        ocid,
		Stage:       stage,
		Token:       "token-" + ocid,
		Owner:       "owner-1",
		CreatedDate: time.Date(2024, 1, 1, 0, 0, len(r.entities), 0, time.UTC),
		JsonData:    data,
	}
	r.mu.Lock()
	r.entities[key(cpid, ocid)] = entity
	r.mu.Unlock()
	return entity
}

// document возвращает разобранный документ сохраненной стадии.
func (r *fakeTenderRepo) document(t *testing.T, cpid, ocid string) models.TenderDocument {
	t.Helper()
	entity, err := r.GetByCpidAndOcid(context.Background(), cpid, ocid)
	require.NoError(t, err)
	var doc models.TenderDocument
	require.NoError(t, json.Unmarshal(entity.JsonData, &doc))
	return doc
}

type fakeRulesRepo struct {
	rules map[string]string
	err   error
}

func (r *fakeRulesRepo) Find(_ context.Context, country, pmd, operationType, parameter string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	value, ok := r.rules[country+"/"+pmd+"/"+operationType+"/"+parameter]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

func checkItems(raw ...string) []models.CheckItemsItem {
	items := make([]models.CheckItemsItem, 0, len(raw))
	for i, code := range raw {
		items = append(items, models.CheckItemsItem{
			ID:             fmt.Sprintf("item-%d", i+1),
			Classification: models.CheckItemsClassification{ID: code},
			RelatedLot:     "lot-1",
		})
	}
	return items
}

func tenderItems(raw ...string) []models.Item {
	items := make([]models.Item, 0, len(raw))
	for i, code := range raw {
		items = append(items, models.Item{
			ID:             fmt.Sprintf("item-%d", i+1),
			Classification: models.Classification{Scheme: models.SchemeCPV, ID: code},
			RelatedLot:     "lot-1",
		})
	}
	return items
}
