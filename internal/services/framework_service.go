package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"
	"github.com/senyabanana/access-service/internal/validation"
)

// Параметр правила: минимальное количество кандидатов второго этапа.
const ruleMinQtySecondStageCandidates = "minQtySecondStageCandidates"

// FrameworkService проверяет данные рамочного соглашения (FE).
type FrameworkService struct {
	Repo  repository.TenderProcessRepository
	Rules repository.RulesRepository
}

// NewFrameworkService создаёт новый экземпляр FrameworkService.
func NewFrameworkService(repo repository.TenderProcessRepository, rules repository.RulesRepository) *FrameworkService {
	return &FrameworkService{Repo: repo, Rules: rules}
}

// CheckFEData проверяет второй этап, лица закупающей организации и ее совпадение с AP или FE.
func (s *FrameworkService) CheckFEData(ctx context.Context, params models.CheckFEDataParams) error {
	if !models.FrameworkOperations.Contains(params.OperationType) {
		return models.ErrOperationNotAllowed.WithDetails("'%s' for checkFEData", params.OperationType)
	}
	if params.Cpid == "" {
		return models.ErrInvalidParams.WithDetails("cpid is required")
	}
	if params.StartDate.IsZero() {
		return models.ErrInvalidParams.WithDetails("startDate is required")
	}

	if stage := params.Tender.SecondStage; stage != nil {
		if err := validation.CheckSecondStage(stage); err != nil {
			return err
		}
		if err := s.checkMinimumCandidates(ctx, params, stage); err != nil {
			return err
		}
	}

	entity := params.Tender.ProcuringEntity
	if entity == nil {
		return nil
	}
	if err := validation.CheckPersons(entity.Persones); err != nil {
		return err
	}
	if err := validation.CheckBusinessFunctionsPeriod(entity.Persones, params.StartDate); err != nil {
		return err
	}

	stored, err := s.loadReference(ctx, params)
	if err != nil {
		return err
	}
	return validation.CheckProcuringEntity(stored.Document.Tender.ProcuringEntity, entity)
}

// loadReference читает AP при создании FE и текущий FE при изменении.
func (s *FrameworkService) loadReference(ctx context.Context, params models.CheckFEDataParams) (*storedDocument, error) {
	switch params.OperationType {
	case models.CreateFE:
		key := fmt.Sprintf("cpid '%s', stage '%s'", params.Cpid, models.StageAP)
		return loadDocument(key, func() (*models.TenderProcessEntity, error) {
			return s.Repo.GetLatestByStages(ctx, params.Cpid, []string{models.StageAP})
		})
	case models.AmendFE:
		if params.Ocid == "" {
			return nil, models.ErrInvalidParams.WithDetails("ocid is required for '%s'", params.OperationType)
		}
		return loadByOcid(ctx, s.Repo, params.Cpid, params.Ocid)
	default:
		return nil, models.ErrOperationNotAllowed.WithDetails("'%s' for checkFEData", params.OperationType)
	}
}

func (s *FrameworkService) checkMinimumCandidates(ctx context.Context, params models.CheckFEDataParams, stage *models.SecondStage) error {
	if stage.MinimumCandidates == nil {
		return nil
	}
	value, err := s.Rules.Find(ctx, params.Country, params.Pmd, string(params.OperationType), ruleMinQtySecondStageCandidates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ErrRuleNotFound.WithDetails("'%s' for country '%s', pmd '%s', operation '%s'",
				ruleMinQtySecondStageCandidates, params.Country, params.Pmd, params.OperationType)
		}
		return models.ErrDatabase.WithDetails("%v", err)
	}
	minimum, err := strconv.Atoi(value)
	if err != nil {
		return models.ErrRuleNotFound.WithDetails("rule '%s' has non-numeric value '%s'", ruleMinQtySecondStageCandidates, value)
	}
	if *stage.MinimumCandidates < minimum {
		return models.ErrInvalidSecondStage.WithDetails("minimumCandidates (%d) is less than allowed minimum (%d)",
			*stage.MinimumCandidates, minimum)
	}
	return nil
}
