package services

import (
	"context"
	"time"

	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"
	"github.com/senyabanana/access-service/internal/validation"
)

// CriteriaService проверяет, сохраняет и отдает критерии тендера.
type CriteriaService struct {
	Repo repository.TenderProcessRepository
	Now  func() time.Time
}

// NewCriteriaService создаёт новый экземпляр CriteriaService.
func NewCriteriaService(repo repository.TenderProcessRepository) *CriteriaService {
	return &CriteriaService{Repo: repo, Now: time.Now}
}

// CheckCriteria проверяет дерево критериев без обращения к хранилищу.
func (s *CriteriaService) CheckCriteria(ctx context.Context, params models.CheckCriteriaParams) error {
	if err := validation.CheckCriteria(params.Criteria, s.Now().UTC()); err != nil {
		return err
	}
	if len(params.Items) == 0 && len(params.Lots) == 0 {
		return nil
	}
	return validation.CheckCriteriaRelations(params.Criteria, params.Items, params.Lots)
}

// CreateCriteria проверяет критерии и записывает их в сохраненный документ.
// У сохраняемых требований ограничение обязательно.
func (s *CriteriaService) CreateCriteria(ctx context.Context, params models.CreateCriteriaParams) (*models.CriteriaResult, error) {
	if err := validation.CheckNotEmpty("criteria", params.Criteria); err != nil {
		return nil, err
	}
	stored, err := loadByOcid(ctx, s.Repo, params.Cpid, params.Ocid)
	if err != nil {
		return nil, err
	}
	tender := stored.Document.Tender

	if err := validation.CheckCriteria(params.Criteria, s.Now().UTC()); err != nil {
		return nil, err
	}
	if err := validation.CheckCriteriaRelations(params.Criteria, tender.Items, tender.Lots); err != nil {
		return nil, err
	}
	for _, criterion := range params.Criteria {
		for _, group := range criterion.RequirementGroups {
			for _, requirement := range group.Requirements {
				if err := validation.CheckRequirementValuePresent(requirement); err != nil {
					return nil, err
				}
			}
		}
	}

	stored.Document.Tender.Criteria = params.Criteria
	data, err := encodeDocument(stored.Document)
	if err != nil {
		return nil, err
	}
	entity := *stored.Entity
	entity.JsonData = data
	if err := s.Repo.Update(ctx, entity); err != nil {
		return nil, translateRepoError(err, "cpid '"+params.Cpid+"', ocid '"+params.Ocid+"'")
	}
	return &models.CriteriaResult{Criteria: params.Criteria}, nil
}

// GetCriteria возвращает критерии сохраненного документа.
func (s *CriteriaService) GetCriteria(ctx context.Context, params models.GetCriteriaParams) (*models.CriteriaResult, error) {
	stored, err := loadByOcid(ctx, s.Repo, params.Cpid, params.Ocid)
	if err != nil {
		return nil, err
	}
	criteria := stored.Document.Tender.Criteria
	if criteria == nil {
		criteria = []models.Criterion{}
	}
	return &models.CriteriaResult{Criteria: criteria}, nil
}
