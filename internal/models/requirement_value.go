package models

import (
	"github.com/shopspring/decimal"
)

// RequirementDataType - объявленный тип значения требования.
type RequirementDataType string

const (
	DataTypeBoolean RequirementDataType = "boolean"
	DataTypeString  RequirementDataType = "string"
	DataTypeInteger RequirementDataType = "integer"
	DataTypeNumber  RequirementDataType = "number"
)

// ValidRequirementDataType проверяет значение типа данных.
func ValidRequirementDataType(t RequirementDataType) bool {
	switch t {
	case DataTypeBoolean, DataTypeString, DataTypeInteger, DataTypeNumber:
		return true
	default:
		return false
	}
}

// RequirementValue - ограничение требования. Реализуется только типами этого пакета.
type RequirementValue interface {
	// DataType возвращает тип значения; для NoneValue ok = false.
	DataType() (dataType RequirementDataType, ok bool)
	requirementValue()
}

type (
	// NoneValue - ограничение отсутствует.
	NoneValue struct{}

	// Ожидаемое значение, требуется точное совпадение.
	ExpectedBoolean struct{ Value bool }
	ExpectedString  struct{ Value string }
	ExpectedInteger struct{ Value int64 }
	ExpectedNumber  struct{ Value decimal.Decimal }

	// Нижняя граница.
	MinInteger struct{ Value int64 }
	MinNumber  struct{ Value decimal.Decimal }

	// Верхняя граница.
	MaxInteger struct{ Value int64 }
	MaxNumber  struct{ Value decimal.Decimal }

	// Диапазон, minValue < maxValue.
	RangeInteger struct{ Min, Max int64 }
	RangeNumber  struct{ Min, Max decimal.Decimal }
)

func (NoneValue) requirementValue() {}
func (ExpectedBoolean) requirementValue() {}
func (ExpectedString) requirementValue() {}
func (ExpectedInteger) requirementValue() {}
func (ExpectedNumber) requirementValue() {}
func (MinInteger) requirementValue() {}
func (MinNumber) requirementValue() {}
func (MaxInteger) requirementValue() {}
func (MaxNumber) requirementValue() {}
func (RangeInteger) requirementValue() {}
func (RangeNumber) requirementValue() {}

func (NoneValue) DataType() (RequirementDataType, bool) { return "", false }
func (ExpectedBoolean) DataType() (RequirementDataType, bool) { return DataTypeBoolean, true }
func (ExpectedString) DataType() (RequirementDataType, bool) { return DataTypeString, true }
func (ExpectedInteger) DataType() (RequirementDataType, bool) { return DataTypeInteger, true }
func (ExpectedNumber) DataType() (RequirementDataType, bool) { return DataTypeNumber, true }
func (MinInteger) DataType() (RequirementDataType, bool) { return DataTypeInteger, true }
func (MinNumber) DataType() (RequirementDataType, bool) { return DataTypeNumber, true }
func (MaxInteger) DataType() (RequirementDataType, bool) { return DataTypeInteger, true }
func (MaxNumber) DataType() (RequirementDataType, bool) { return DataTypeNumber, true }
func (RangeInteger) DataType() (RequirementDataType, bool) { return DataTypeInteger, true }
func (RangeNumber) DataType() (RequirementDataType, bool) { return DataTypeNumber, true }

// EqualRequirementValues сравнивает значения; числа сравниваются с точностью до трех знаков.
func EqualRequirementValues(a, b RequirementValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case NoneValue:
		_, ok := b.(NoneValue)
		return ok
	case ExpectedBoolean:
		bv, ok := b.(ExpectedBoolean)
		return ok && av.Value == bv.Value
	case ExpectedString:
		bv, ok := b.(ExpectedString)
		return ok && av.Value == bv.Value
	case ExpectedInteger:
		bv, ok := b.(ExpectedInteger)
		return ok && av.Value == bv.Value
	case ExpectedNumber:
		bv, ok := b.(ExpectedNumber)
		return ok && equalScaled(av.Value, bv.Value)
	case MinInteger:
		bv, ok := b.(MinInteger)
		return ok && av.Value == bv.Value
	case MinNumber:
		bv, ok := b.(MinNumber)
		return ok && equalScaled(av.Value, bv.Value)
	case MaxInteger:
		bv, ok := b.(MaxInteger)
		return ok && av.Value == bv.Value
	case MaxNumber:
		bv, ok := b.(MaxNumber)
		return ok && equalScaled(av.Value, bv.Value)
	case RangeInteger:
		bv, ok := b.(RangeInteger)
		return ok && av.Min == bv.Min && av.Max == bv.Max
	case RangeNumber:
		bv, ok := b.(RangeNumber)
		return ok && equalScaled(av.Min, bv.Min) && equalScaled(av.Max, bv.Max)
	default:
		panic("unreachable requirement value variant")
	}
}

func equalScaled(a, b decimal.Decimal) bool {
	return a.Round(NumberScale).Equal(b.Round(NumberScale))
}
