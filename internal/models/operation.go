package models

// OperationType - тип операции, для которой выполняется команда.
type OperationType string

const (
	AmendFE                                   OperationType = "amendFE"
	ApplyQualificationProtocol                OperationType = "applyQualificationProtocol"
	AwardConsiderationOperation               OperationType = "awardConsideration"
	CompleteQualification                     OperationType = "completeQualification"
	CreateAward                               OperationType = "createAward"
	CreateCN                                  OperationType = "createCN"
	CreateCNOnPIN                             OperationType = "createCNonPIN"
	CreateCNOnPN                              OperationType = "createCNonPN"
	CreateFE                                  OperationType = "createFE"
	CreateNegotiationCNOnPN                   OperationType = "createNegotiationCNonPN"
	CreatePCR                                 OperationType = "createPcr"
	CreatePIN                                 OperationType = "createPIN"
	CreatePINOnPN                             OperationType = "createPINonPN"
	CreatePN                                  OperationType = "createPN"
	CreateRFQ                                 OperationType = "createRfq"
	CreateSubmission                          OperationType = "createSubmission"
	DeclareNonConflictOfInterest              OperationType = "declareNonConflictOfInterest"
	IssuingFrameworkContract                  OperationType = "issuingFrameworkContract"
	NextStepAfterBuyersConfirmation           OperationType = "nextStepAfterBuyersConfirmation"
	OutsourcingPN                             OperationType = "outsourcingPN"
	QualificationOperation                    OperationType = "qualification"
	QualificationConsideration                OperationType = "qualificationConsideration"
	QualificationDeclareNonConflictOfInterest OperationType = "qualificationDeclareNonConflictOfInterest"
	QualificationProtocol                     OperationType = "qualificationProtocol"
	RelationAP                                OperationType = "relationAP"
	StartSecondStage                          OperationType = "startSecondStage"
	SubmissionPeriodEnd                       OperationType = "submissionPeriodEnd"
	SubmitBid                                 OperationType = "submitBid"
	TenderPeriodEnd                           OperationType = "tenderPeriodEnd"
	UpdateAP                                  OperationType = "updateAP"
	UpdateCN                                  OperationType = "updateCN"
	UpdatePN                                  OperationType = "updatePN"
	WithdrawBid                               OperationType = "withdrawBid"
	WithdrawQualification                     OperationType = "withdrawQualification"
)

// AllOperationTypes - полный перечень типов операций.
var AllOperationTypes = []OperationType{
	AmendFE, ApplyQualificationProtocol, AwardConsiderationOperation, CompleteQualification,
	CreateAward, CreateCN, CreateCNOnPIN, CreateCNOnPN, CreateFE, CreateNegotiationCNOnPN,
	CreatePCR, CreatePIN, CreatePINOnPN, CreatePN, CreateRFQ, CreateSubmission,
	DeclareNonConflictOfInterest, IssuingFrameworkContract, NextStepAfterBuyersConfirmation,
	OutsourcingPN, QualificationOperation, QualificationConsideration,
	QualificationDeclareNonConflictOfInterest, QualificationProtocol, RelationAP,
	StartSecondStage, SubmissionPeriodEnd, SubmitBid, TenderPeriodEnd, UpdateAP, UpdateCN,
	UpdatePN, WithdrawBid, WithdrawQualification,
}

// OperationSet - именованный набор допустимых типов операций.
type OperationSet map[OperationType]struct{}

func newOperationSet(types ...OperationType) OperationSet {
	set := make(OperationSet, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// Contains проверяет, входит ли тип операции в набор.
func (s OperationSet) Contains(t OperationType) bool {
	_, ok := s[t]
	return ok
}

// Наборы операций, допустимых для отдельных команд.
// Команда отклоняет тип операции вне своего набора до обращения к сервису.
var (
	CheckItemsOperations = newOperationSet(
		CreateCN, CreateCNOnPIN, CreateCNOnPN, CreateNegotiationCNOnPN, CreatePIN,
		CreatePINOnPN, CreatePN, UpdateAP, UpdateCN, UpdatePN,
	)
	CreateTenderOperations = newOperationSet(
		CreateCN, CreatePIN, CreatePN,
	)
	FrameworkOperations = newOperationSet(
		AmendFE, CreateFE,
	)
)

// ValidOperationType проверяет, что тип операции известен.
func ValidOperationType(t OperationType) bool {
	for _, known := range AllOperationTypes {
		if known == t {
			return true
		}
	}
	return false
}

// UnmarshalText отклоняет неизвестные типы операций при разборе параметров.
func (t *OperationType) UnmarshalText(text []byte) error {
	value := OperationType(text)
	if !ValidOperationType(value) {
		return ErrInvalidParams.WithDetails("unknown operation type '%s'", value)
	}
	*t = value
	return nil
}
