package services

import (
	"context"

	"github.com/senyabanana/access-service/internal/cpv"
	"github.com/senyabanana/access-service/internal/models"
	"github.com/senyabanana/access-service/internal/repository"
	"github.com/senyabanana/access-service/internal/utils"
)

// ItemsService проверяет предметы закупки и рассчитывает классификацию тендера.
type ItemsService struct {
	Repo repository.TenderProcessRepository
}

// NewItemsService создаёт новый экземпляр ItemsService.
func NewItemsService(repo repository.TenderProcessRepository) *ItemsService {
	return &ItemsService{Repo: repo}
}

// CheckItems решает, можно ли добавить предметы, и рассчитывает код CPV тендера.
// Поведение полностью определяется типом операции.
func (s *ItemsService) CheckItems(ctx context.Context, params models.CheckItemsParams) (*models.CheckItemsResult, error) {
	switch params.OperationType {
	case models.CreateCNOnPN, models.CreatePINOnPN, models.CreateNegotiationCNOnPN:
		return s.checkItemsOnPN(ctx, params)

	case models.CreateCN, models.CreatePN, models.CreatePIN:
		return checkItemsForCreate(params)

	case models.UpdateAP:
		return s.checkItemsForUpdateAP(ctx, params)

	case models.UpdatePN:
		return s.checkItemsForUpdatePN(ctx, params)

	case models.UpdateCN:
		return s.checkItemsForUpdateCN(ctx, params)

	case models.CreateCNOnPIN:
		return nil, models.ErrOperationNotImplemented.WithDetails("'%s'", params.OperationType)

	case models.AmendFE,
		models.ApplyQualificationProtocol,
		models.AwardConsiderationOperation,
		models.CompleteQualification,
		models.CreateAward,
		models.CreateFE,
		models.CreatePCR,
		models.CreateRFQ,
		models.CreateSubmission,
		models.DeclareNonConflictOfInterest,
		models.IssuingFrameworkContract,
		models.NextStepAfterBuyersConfirmation,
		models.OutsourcingPN,
		models.QualificationOperation,
		models.QualificationConsideration,
		models.QualificationDeclareNonConflictOfInterest,
		models.QualificationProtocol,
		models.RelationAP,
		models.StartSecondStage,
		models.SubmissionPeriodEnd,
		models.SubmitBid,
		models.TenderPeriodEnd,
		models.WithdrawBid,
		models.WithdrawQualification:
		return nil, models.ErrOperationNotAllowed.WithDetails("'%s' for checkItems", params.OperationType)

	default:
		return nil, models.ErrOperationNotAllowed.WithDetails("unknown operation type '%s'", params.OperationType)
	}
}

// checkItemsOnPN - создание CN/PIN на основе PN.
func (s *ItemsService) checkItemsOnPN(ctx context.Context, params models.CheckItemsParams) (*models.CheckItemsResult, error) {
	if params.PreviousStage == "" {
		return nil, models.ErrInvalidParams.WithDetails("previousStage is required for '%s'", params.OperationType)
	}
	stored, err := loadByStage(ctx, s.Repo, params.Cpid, params.PreviousStage)
	if err != nil {
		return nil, err
	}
	tender := stored.Document.Tender

	// Предметы уже заданы в PN: повторная проверка MDM не нужна.
	if len(tender.Items) > 0 {
		return &models.CheckItemsResult{
			MdmValidation: false,
			ItemsAdd:      true,
			Items:         storedItemReferences(tender.Items),
		}, nil
	}

	codes, err := requestCodes(params.Items)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, models.ErrEmptyItems
	}
	tenderCode, err := models.NewCPVCode(tender.Classification.ID)
	if err != nil {
		return nil, err
	}

	if !cpv.AreHomogeneous(codes) {
		codes = cpv.HomogeneousWithTenderClassification(codes, tenderCode)
		if len(codes) == 0 {
			return nil, models.ErrMissingHomogeneousItems.WithDetails("tender classification '%s'", tenderCode)
		}
	}

	calculated, err := cpv.CalculateCPVCode(codes)
	if err != nil {
		return nil, err
	}
	if err := cpv.CheckCalculatedCPVCode(calculated, tenderCode); err != nil {
		return nil, err
	}
	return calculatedResult(calculated, tender.MainProcurementCategory), nil
}

// checkItemsForCreate - первая стадия, сохраненного тендера еще нет.
func checkItemsForCreate(params models.CheckItemsParams) (*models.CheckItemsResult, error) {
	calculated, err := validateAndCalculate(params.Items)
	if err != nil {
		return nil, err
	}
	return calculatedResult(calculated, ""), nil
}

func (s *ItemsService) checkItemsForUpdateAP(ctx context.Context, params models.CheckItemsParams) (*models.CheckItemsResult, error) {
	stored, err := loadByOcid(ctx, s.Repo, params.Cpid, params.Ocid)
	if err != nil {
		return nil, err
	}
	if len(params.Items) == 0 {
		return &models.CheckItemsResult{MdmValidation: false, ItemsAdd: false}, nil
	}
	return checkAgainstTender(params.Items, stored.Document.Tender)
}

func (s *ItemsService) checkItemsForUpdatePN(ctx context.Context, params models.CheckItemsParams) (*models.CheckItemsResult, error) {
	stored, err := loadByOcid(ctx, s.Repo, params.Cpid, params.Ocid)
	if err != nil {
		return nil, err
	}
	if len(stored.Document.Tender.Items) > 0 {
		return &models.CheckItemsResult{MdmValidation: false, ItemsAdd: false}, nil
	}
	return checkAgainstTender(params.Items, stored.Document.Tender)
}

// checkItemsForUpdateCN проверяет, что предметы запроса есть среди сохраненных.
func (s *ItemsService) checkItemsForUpdateCN(ctx context.Context, params models.CheckItemsParams) (*models.CheckItemsResult, error) {
	stored, err := loadByOcid(ctx, s.Repo, params.Cpid, params.Ocid)
	if err != nil {
		return nil, err
	}
	tender := stored.Document.Tender

	requestIDs := make([]string, 0, len(params.Items))
	for _, item := range params.Items {
		requestIDs = append(requestIDs, item.ID)
	}
	storedIDs := make([]string, 0, len(tender.Items))
	for _, item := range tender.Items {
		storedIDs = append(storedIDs, item.ID)
	}
	if !utils.IsSubset(requestIDs, storedIDs) {
		return nil, models.ErrInvalidItems.WithDetails("request items %v, stored items %v", requestIDs, storedIDs)
	}

	return &models.CheckItemsResult{
		MdmValidation:           true,
		ItemsAdd:                true,
		MainProcurementCategory: tender.MainProcurementCategory,
		Items:                   requestItemReferences(params.Items),
	}, nil
}

// checkAgainstTender проверяет коды, рассчитывает код тендера и сверяет его с сохраненным.
func checkAgainstTender(items []models.CheckItemsItem, tender models.Tender) (*models.CheckItemsResult, error) {
	calculated, err := validateAndCalculate(items)
	if err != nil {
		return nil, err
	}
	tenderCode, err := models.NewCPVCode(tender.Classification.ID)
	if err != nil {
		return nil, err
	}
	if err := cpv.CheckCalculatedCPVCode(calculated, tenderCode); err != nil {
		return nil, err
	}
	return calculatedResult(calculated, tender.MainProcurementCategory), nil
}

func validateAndCalculate(items []models.CheckItemsItem) (models.CPVCode, error) {
	codes, err := requestCodes(items)
	if err != nil {
		return "", err
	}
	if err := cpv.CheckItemsCPVCodes(codes); err != nil {
		return "", err
	}
	return cpv.CalculateCPVCode(codes)
}

func requestCodes(items []models.CheckItemsItem) ([]models.CPVCode, error) {
	raw := make([]string, 0, len(items))
	for _, item := range items {
		raw = append(raw, item.Classification.ID)
	}
	return cpv.ParseCodes(raw)
}

func calculatedResult(code models.CPVCode, category models.MainProcurementCategory) *models.CheckItemsResult {
	return &models.CheckItemsResult{
		MdmValidation: true,
		ItemsAdd:      true,
		Tender: &models.TenderClassificationResult{
			Classification: models.CheckItemsClassification{ID: code.String()},
		},
		MainProcurementCategory: category,
	}
}

func storedItemReferences(items []models.Item) []models.ItemReference {
	refs := make([]models.ItemReference, 0, len(items))
	for _, item := range items {
		refs = append(refs, models.ItemReference{ID: item.ID, RelatedLot: item.RelatedLot})
	}
	return refs
}

func requestItemReferences(items []models.CheckItemsItem) []models.ItemReference {
	refs := make([]models.ItemReference, 0, len(items))
	for _, item := range items {
		refs = append(refs, models.ItemReference{ID: item.ID, RelatedLot: item.RelatedLot})
	}
	return refs
}
