package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// NumberScale - число знаков после запятой при сериализации значений типа number.
const NumberScale = 3

// Period - период действия требования.
type Period struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// RelatedDocument - ссылка на документ.
type RelatedDocument struct {
	ID string `json:"id"`
}

// EligibleEvidence - допустимое подтверждение соответствия требованию.
type EligibleEvidence struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Type            string           `json:"type"`
	Description     string           `json:"description,omitempty"`
	RelatedDocument *RelatedDocument `json:"relatedDocument,omitempty"`
}

// Requirement - требование с типизированным ограничением.
type Requirement struct {
	ID                string
	Title             string
	Description       string
	DataType          RequirementDataType
	Value             RequirementValue
	Period            *Period
	Status            string
	DatePublished     *time.Time
	EligibleEvidences []EligibleEvidence
}

type requirementJSON struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description,omitempty"`
	DataType          RequirementDataType `json:"dataType"`
	ExpectedValue     json.RawMessage     `json:"expectedValue,omitempty"`
	MinValue          json.RawMessage     `json:"minValue,omitempty"`
	MaxValue          json.RawMessage     `json:"maxValue,omitempty"`
	Period            *Period             `json:"period,omitempty"`
	Status            string              `json:"status,omitempty"`
	DatePublished     *time.Time          `json:"datePublished,omitempty"`
	EligibleEvidences []EligibleEvidence  `json:"eligibleEvidences,omitempty"`
}

// UnmarshalJSON определяет форму ограничения и создает значение по объявленному dataType.
func (r *Requirement) UnmarshalJSON(data []byte) error {
	var raw requirementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := ParseRequirementValue(raw.DataType, raw.ExpectedValue, raw.MinValue, raw.MaxValue)
	if err != nil {
		return err
	}
	*r = Requirement{
		ID:                raw.ID,
		Title:             raw.Title,
		Description:       raw.Description,
		DataType:          raw.DataType,
		Value:             value,
		Period:            raw.Period,
		Status:            raw.Status,
		DatePublished:     raw.DatePublished,
		EligibleEvidences: raw.EligibleEvidences,
	}
	return nil
}

// MarshalJSON записывает ровно те поля, которые соответствуют варианту значения.
func (r Requirement) MarshalJSON() ([]byte, error) {
	raw := requirementJSON{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		DataType:          r.DataType,
		Period:            r.Period,
		Status:            r.Status,
		DatePublished:     r.DatePublished,
		EligibleEvidences: r.EligibleEvidences,
	}
	switch v := r.Value.(type) {
	case nil, NoneValue:
	case ExpectedBoolean:
		raw.ExpectedValue = json.RawMessage(strconv.FormatBool(v.Value))
	case ExpectedString:
		encoded, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		raw.ExpectedValue = encoded
	case ExpectedInteger:
		raw.ExpectedValue = formatInteger(v.Value)
	case ExpectedNumber:
		raw.ExpectedValue = formatNumber(v.Value)
	case MinInteger:
		raw.MinValue = formatInteger(v.Value)
	case MinNumber:
		raw.MinValue = formatNumber(v.Value)
	case MaxInteger:
		raw.MaxValue = formatInteger(v.Value)
	case MaxNumber:
		raw.MaxValue = formatNumber(v.Value)
	case RangeInteger:
		raw.MinValue = formatInteger(v.Min)
		raw.MaxValue = formatInteger(v.Max)
	case RangeNumber:
		raw.MinValue = formatNumber(v.Min)
		raw.MaxValue = formatNumber(v.Max)
	default:
		panic("unreachable requirement value variant")
	}
	return json.Marshal(raw)
}

// ParseRequirementValue строит вариант значения по присутствующим полям и типу данных.
// Отсутствие всех полей дает NoneValue, решение о допустимости остается за вызывающим.
func ParseRequirementValue(dataType RequirementDataType, expected, minRaw, maxRaw json.RawMessage) (RequirementValue, error) {
	hasExpectedField := present(expected)
	hasMin := present(minRaw)
	hasMax := present(maxRaw)

	isRange := hasMin && hasMax
	hasExpected := hasExpectedField && !isRange

	switch {
	case hasExpected:
		return parseExpected(dataType, expected)
	case isRange:
		return parseRange(dataType, minRaw, maxRaw)
	case hasMax:
		return parseBound(dataType, maxRaw, func(i int64) RequirementValue { return MaxInteger{Value: i} },
			func(d decimal.Decimal) RequirementValue { return MaxNumber{Value: d} })
	case hasMin:
		return parseBound(dataType, minRaw, func(i int64) RequirementValue { return MinInteger{Value: i} },
			func(d decimal.Decimal) RequirementValue { return MinNumber{Value: d} })
	default:
		return NoneValue{}, nil
	}
}

func parseExpected(dataType RequirementDataType, raw json.RawMessage) (RequirementValue, error) {
	switch dataType {
	case DataTypeBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, invalidValue(raw, dataType)
		}
		return ExpectedBoolean{Value: b}, nil
	case DataTypeString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, invalidValue(raw, dataType)
		}
		return ExpectedString{Value: s}, nil
	case DataTypeInteger:
		i, err := readInteger(raw)
		if err != nil {
			return nil, invalidValue(raw, dataType)
		}
		return ExpectedInteger{Value: i}, nil
	case DataTypeNumber:
		d, err := readNumber(raw)
		if err != nil {
			return nil, invalidValue(raw, dataType)
		}
		return ExpectedNumber{Value: d}, nil
	default:
		return nil, ErrInvalidRequirementValue.WithDetails("unknown data type '%s'", dataType)
	}
}

func parseRange(dataType RequirementDataType, minRaw, maxRaw json.RawMessage) (RequirementValue, error) {
	switch dataType {
	case DataTypeInteger:
		lo, err := readInteger(minRaw)
		if err != nil {
			return nil, invalidValue(minRaw, dataType)
		}
		hi, err := readInteger(maxRaw)
		if err != nil {
			return nil, invalidValue(maxRaw, dataType)
		}
		return RangeInteger{Min: lo, Max: hi}, nil
	case DataTypeNumber:
		lo, err := readNumber(minRaw)
		if err != nil {
			return nil, invalidValue(minRaw, dataType)
		}
		hi, err := readNumber(maxRaw)
		if err != nil {
			return nil, invalidValue(maxRaw, dataType)
		}
		return RangeNumber{Min: lo, Max: hi}, nil
	default:
		return nil, ErrInvalidRequirementValue.WithDetails("range is not allowed for data type '%s'", dataType)
	}
}

func parseBound(
	dataType RequirementDataType,
	raw json.RawMessage,
	asInteger func(int64) RequirementValue,
	asNumber func(decimal.Decimal) RequirementValue,
) (RequirementValue, error) {
	switch dataType {
	case DataTypeInteger:
		i, err := readInteger(raw)
		if err != nil {
			return nil, invalidValue(raw, dataType)
		}
		return asInteger(i), nil
	case DataTypeNumber:
		d, err := readNumber(raw)
		if err != nil {
			return nil, invalidValue(raw, dataType)
		}
		return asNumber(d), nil
	default:
		return nil, ErrInvalidRequirementValue.WithDetails("bounds are not allowed for data type '%s'", dataType)
	}
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// readNumeric принимает только JSON-число, строки с числами отклоняются.
func readNumeric(raw json.RawMessage) (json.Number, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return "", strconv.ErrSyntax
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", err
	}
	return n, nil
}

func readInteger(raw json.RawMessage) (int64, error) {
	n, err := readNumeric(raw)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(n.String(), 10, 64)
}

func readNumber(raw json.RawMessage) (decimal.Decimal, error) {
	n, err := readNumeric(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, err
	}
	// Значение хранится с той же точностью, с которой сериализуется.
	return d.Round(NumberScale), nil
}

func formatInteger(i int64) json.RawMessage {
	return json.RawMessage(strconv.FormatInt(i, 10))
}

func formatNumber(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(d.StringFixed(NumberScale))
}

func invalidValue(raw json.RawMessage, dataType RequirementDataType) error {
	return ErrInvalidRequirementValue.WithDetails("received value '%s' does not match data type '%s'",
		string(bytes.TrimSpace(raw)), dataType)
}
