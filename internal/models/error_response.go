package models

import (
	"fmt"
	"net/http"
)

type (
	ErrorKind string // Категория ошибки
	ErrorCode string // Стабильный код ошибки для клиента
)

const (
	KindValidation  ErrorKind = "validation"  // Некорректные входные данные
	KindNotFound    ErrorKind = "notFound"    // Сущность не найдена
	KindConflict    ErrorKind = "conflict"    // Условная запись отклонена
	KindUnsupported ErrorKind = "unsupported" // Операция не применима к команде
	KindIncident    ErrorKind = "incident"    // Сбой хранилища или транспорта
)

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int       `json:"-"`
	Kind       ErrorKind `json:"-"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"description"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Kind:       kindByStatus(statusCode),
		Code:       ErrorCode(fmt.Sprintf("http.%d", statusCode)),
		Message:    message}
}

func newError(kind ErrorKind, code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusByKind(kind),
		Kind:       kind,
		Code:       code,
		Message:    message,
	}
}

// NewValidationError создает ошибку валидации.
func NewValidationError(code ErrorCode, message string) *ErrorResponse {
	return newError(KindValidation, code, message)
}

// NewIncidentError создает ошибку уровня инцидента (хранилище, транспорт).
func NewIncidentError(code ErrorCode, message string) *ErrorResponse {
	return newError(KindIncident, code, message)
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал с уточненными копиями.
func (e *ErrorResponse) Is(target error) bool {
	t, ok := target.(*ErrorResponse)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails возвращает копию ошибки с дополнительным описанием.
func (e *ErrorResponse) WithDetails(format string, args ...any) *ErrorResponse {
	cp := *e
	cp.Message = e.Message + ": " + fmt.Sprintf(format, args...)
	return &cp
}

func statusByKind(kind ErrorKind) int {
	switch kind {
	case KindValidation, KindUnsupported:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindByStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusConflict:
		return KindConflict
	case statusCode >= 400 && statusCode < 500:
		return KindValidation
	default:
		return KindIncident
	}
}

// Ошибки проверки предметов и классификации.
var (
	ErrEmptyItems = NewValidationError("items.empty",
		"items must not be empty")
	ErrItemsCpvCodesNotConsistent = NewValidationError("items.cpvCodesNotConsistent",
		"cpv codes of all items must share the same group")
	ErrCalculatedCpvCodeNoMatchTenderCpvCode = NewValidationError("items.calculatedCpvCodeNoMatchTender",
		"calculated cpv code does not match tender cpv code")
	ErrMissingHomogeneousItems = NewValidationError("items.missingHomogeneous",
		"no items homogeneous with tender classification")
	ErrInvalidItems = NewValidationError("items.invalid",
		"items do not match stored items")
	ErrInvalidCPVCode = NewValidationError("classification.invalidCpvCode",
		"invalid cpv code")
)

// Ошибки требований и критериев.
var (
	ErrInvalidRequirementValue = NewValidationError("requirement.invalidValue",
		"requirement value does not match data type")
	ErrUnknownRequirementValue = NewValidationError("requirement.unknownValue",
		"unknown value in requirement. Allowed only 'expectedValue', 'minValue', 'maxValue'")
	ErrInvalidRequirementRange = NewValidationError("requirement.invalidRange",
		"minValue must be less than maxValue")
	ErrInvalidRequirementPeriod = NewValidationError("requirement.invalidPeriod",
		"invalid requirement period")
	ErrDuplicateID = NewValidationError("collection.duplicateId",
		"ids must be unique")
	ErrEmptyCollection = NewValidationError("collection.empty",
		"collection must not be empty")
	ErrBlankAttribute = NewValidationError("attribute.blank",
		"attribute must not be blank")
	ErrInvalidRelatedItem = NewValidationError("criteria.invalidRelatedItem",
		"related item of criterion not found")
)

// Ошибки проверки рамочных соглашений и организаций.
var (
	ErrEmptyBusinessFunctions = NewValidationError("persons.emptyBusinessFunctions",
		"person must have at least one business function")
	ErrInvalidBusinessFunctionPeriod = NewValidationError("businessFunctions.invalidPeriod",
		"business function period start date must not be later than process start date")
	ErrInvalidSecondStage = NewValidationError("secondStage.invalid",
		"invalid second stage candidate bounds")
	ErrInvalidProcuringEntity = NewValidationError("procuringEntity.invalid",
		"procuring entity does not match stored procuring entity")
	ErrInvalidOwner = NewValidationError("tender.invalidOwner",
		"owner does not match")
	ErrInvalidToken = NewValidationError("tender.invalidToken",
		"token does not match")
	ErrInvalidMainProcurementCategory = NewValidationError("tender.invalidMainProcurementCategory",
		"unknown main procurement category")
	ErrInvalidOcid = NewValidationError("tender.invalidOcid",
		"ocid must contain stage")
	ErrInvalidParams = NewValidationError("command.invalidParams",
		"invalid command params")
)

// Прочие ошибки.
var (
	ErrTenderNotFound = newError(KindNotFound, "tender.notFound",
		"tender not found")
	ErrRuleNotFound = NewIncidentError("rules.notFound",
		"rule not found")
	ErrConcurrentModification = newError(KindConflict, "database.concurrentModification",
		"record was modified concurrently")
	ErrDatabase = NewIncidentError("database.incident",
		"database error")
	ErrDataParse = NewIncidentError("database.invalidJsonData",
		"stored document cannot be parsed")
	ErrOperationNotAllowed = newError(KindUnsupported, "operation.notAllowed",
		"operation type is not allowed for this command")
	ErrOperationNotImplemented = newError(KindUnsupported, "operation.notImplemented",
		"operation type has no defined result for this command")
	ErrUnknownAction = newError(KindUnsupported, "command.unknownAction",
		"unknown action")
)
