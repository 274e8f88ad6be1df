package services

import (
	"context"
	"time"

	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"
	"github.com/senyabanana/access-service/internal/utils"
	"github.com/senyabanana/access-service/internal/validation"

	"github.com/google/uuid"
)

type TenderService struct {
	Repo  repository.TenderProcessRepository
	Items *ItemsService
	Now   func() time.Time
}

// NewTenderService создаёт новый экземпляр TenderService.
func NewTenderService(repo repository.TenderProcessRepository, items *ItemsService) *TenderService {
	return &TenderService{Repo: repo, Items: items, Now: time.Now}
}

// CreateTender проверяет предметы, назначает рассчитанную классификацию и сохраняет снимок стадии.
func (s *TenderService) CreateTender(ctx context.Context, params models.CreateTenderParams) (*models.CreateTenderResult, error) {
	if params.Cpid == "" || params.Ocid == "" || params.Owner == "" {
		return nil, models.ErrInvalidParams.WithDetails("missing required fields: cpid, ocid or owner")
	}
	if !models.CreateTenderOperations.Contains(params.OperationType) {
		return nil, models.ErrOperationNotAllowed.WithDetails("'%s' for createTender", params.OperationType)
	}
	stage, err := utils.StageFromOcid(params.Cpid, params.Ocid)
	if err != nil {
		return nil, err
	}

	tender := params.Tender
	if err := checkMainProcurementCategory(tender); err != nil {
		return nil, err
	}
	if len(tender.Items) > 0 {
		checked, err := s.Items.CheckItems(ctx, models.CheckItemsParams{
			OperationType: params.OperationType,
			Cpid:          params.Cpid,
			Ocid:          params.Ocid,
			Items:         toCheckItems(tender.Items),
		})
		if err != nil {
			return nil, err
		}
		tender.Classification.ID = checked.Tender.Classification.ID
		if tender.Classification.Scheme == "" {
			tender.Classification.Scheme = models.SchemeCPV
		}
	}

	now := s.Now().UTC()
	if err := checkTenderCriteria(tender, now); err != nil {
		return nil, err
	}

	data, err := encodeDocument(&models.TenderDocument{Ocid: params.Ocid, Tender: tender})
	if err != nil {
		return nil, err
	}
	entity := models.TenderProcessEntity{
		Cpid:        params.Cpid,
		Ocid:        params.Ocid,
		Stage:       stage,
		Token:       uuid.New().String(),
		Owner:       params.Owner,
		CreatedDate: now,
		JsonData:    data,
	}
	if err := s.Repo.Save(ctx, entity); err != nil {
		return nil, translateRepoError(err, "cpid '"+params.Cpid+"', ocid '"+params.Ocid+"'")
	}

	return &models.CreateTenderResult{
		Token:  entity.Token,
		Ocid:   entity.Ocid,
		Stage:  entity.Stage,
		Tender: tender,
	}, nil
}

// UpdateTender заменяет документ стадии целиком, если владелец и токен совпадают.
func (s *TenderService) UpdateTender(ctx context.Context, params models.UpdateTenderParams) (*models.Tender, error) {
	if params.Cpid == "" || params.Ocid == "" || params.Owner == "" || params.Token == "" {
		return nil, models.ErrInvalidParams.WithDetails("missing required fields: cpid, ocid, owner or token")
	}

	stored, err := loadByOcid(ctx, s.Repo, params.Cpid, params.Ocid)
	if err != nil {
		return nil, err
	}
	if stored.Entity.Owner != params.Owner {
		return nil, models.ErrInvalidOwner.WithDetails("tender '%s'", params.Ocid)
	}
	if stored.Entity.Token != params.Token {
		return nil, models.ErrInvalidToken.WithDetails("tender '%s'", params.Ocid)
	}

	tender := params.Tender
	if err := checkMainProcurementCategory(tender); err != nil {
		return nil, err
	}
	if err := checkTenderCriteria(tender, s.Now().UTC()); err != nil {
		return nil, err
	}

	data, err := encodeDocument(&models.TenderDocument{Ocid: params.Ocid, Tender: tender})
	if err != nil {
		return nil, err
	}
	entity := *stored.Entity
	entity.JsonData = data
	if err := s.Repo.Update(ctx, entity); err != nil {
		return nil, translateRepoError(err, "cpid '"+params.Cpid+"', ocid '"+params.Ocid+"'")
	}
	return &tender, nil
}

// Категория необязательна, но если указана, должна быть известной.
func checkMainProcurementCategory(tender models.Tender) error {
	if tender.MainProcurementCategory == "" || models.ValidMainProcurementCategory(tender.MainProcurementCategory) {
		return nil
	}
	return models.ErrInvalidMainProcurementCategory.WithDetails("'%s'", tender.MainProcurementCategory)
}

func checkTenderCriteria(tender models.Tender, now time.Time) error {
	if len(tender.Criteria) == 0 {
		return nil
	}
	if err := validation.CheckCriteria(tender.Criteria, now); err != nil {
		return err
	}
	return validation.CheckCriteriaRelations(tender.Criteria, tender.Items, tender.Lots)
}

func toCheckItems(items []models.Item) []models.CheckItemsItem {
	result := make([]models.CheckItemsItem, 0, len(items))
	for _, item := range items {
		result = append(result, models.CheckItemsItem{
			ID:             item.ID,
			Classification: models.CheckItemsClassification{ID: item.Classification.ID},
			RelatedLot:     item.RelatedLot,
		})
	}
	return result
}
