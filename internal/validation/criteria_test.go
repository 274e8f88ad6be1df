package validation

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/senyabanana/access-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func requirement(id string, dataType models.RequirementDataType, value models.RequirementValue) models.Requirement {
	return models.Requirement{ID: id, Title: "requirement " + id, DataType: dataType, Value: value}
}

func criterion(id string, requirements ...models.Requirement) models.Criterion {
	return models.Criterion{
		ID:    id,
		Title: "criterion " + id,
		RequirementGroups: []models.RequirementGroup{
			{ID: id + "-group", Requirements: requirements},
		},
	}
}

func TestCheckRequirementDataType(t *testing.T) {
	tests := []struct {
		name    string
		req     models.Requirement
		wantErr error
	}{
		{name: "matching integer", req: requirement("1", models.DataTypeInteger, models.MinInteger{Value: 1})},
		{name: "no value", req: requirement("1", models.DataTypeString, models.NoneValue{})},
		{name: "nil value", req: requirement("1", models.DataTypeBoolean, nil)},
		{name: "mismatch", req: requirement("1", models.DataTypeNumber, models.ExpectedInteger{Value: 1}),
			wantErr: models.ErrInvalidRequirementValue},
		{name: "unknown type", req: requirement("1", "date", nil), wantErr: models.ErrInvalidRequirementValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequirementDataType(tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
		})
	}
}

func TestCheckRequirementRange(t *testing.T) {
	tests := []struct {
		name    string
		value   models.RequirementValue
		wantErr bool
	}{
		{name: "integer ascending", value: models.RangeInteger{Min: 1, Max: 2}},
		{name: "integer equal", value: models.RangeInteger{Min: 2, Max: 2}, wantErr: true},
		{name: "integer inverted", value: models.RangeInteger{Min: 3, Max: 2}, wantErr: true},
		{name: "number ascending", value: models.RangeNumber{Min: decimal.RequireFromString("1.5"), Max: decimal.RequireFromString("1.501")}},
		{name: "number inverted", value: models.RangeNumber{Min: decimal.RequireFromString("2"), Max: decimal.RequireFromString("1.9")}, wantErr: true},
		{name: "number equal after rounding", value: models.RangeNumber{Min: decimal.RequireFromString("1.0001"), Max: decimal.RequireFromString("1.0004")}, wantErr: true},
		{name: "not a range", value: models.MaxInteger{Value: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequirementRange(requirement("r", models.DataTypeInteger, tt.value))
			if tt.wantErr {
				assert.True(t, errors.Is(err, models.ErrInvalidRequirementRange))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckRequirement_RangeCollapsedByPrecision(t *testing.T) {
	var r models.Requirement
	require.NoError(t, json.Unmarshal(
		[]byte(`{"id":"r1","title":"capacity","dataType":"number","minValue":1.0001,"maxValue":1.0004}`), &r))

	err := CheckRequirement(r, now)
	assert.True(t, errors.Is(err, models.ErrInvalidRequirementRange), "unexpected error: %v", err)
}

func TestCheckRequirementPeriod(t *testing.T) {
	date := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		period  *models.Period
		wantErr bool
	}{
		{name: "absent", period: nil},
		{name: "past period", period: &models.Period{StartDate: date(2020, 1, 1), EndDate: date(2021, 1, 1)}},
		{name: "end later this year", period: &models.Period{StartDate: date(2024, 1, 1), EndDate: date(2024, 12, 31)}},
		{name: "same day", period: &models.Period{StartDate: date(2022, 5, 5), EndDate: date(2022, 5, 5)}},
		{name: "start next year", period: &models.Period{StartDate: date(2025, 1, 1), EndDate: date(2025, 2, 1)}, wantErr: true},
		{name: "end next year", period: &models.Period{StartDate: date(2024, 1, 1), EndDate: date(2025, 1, 1)}, wantErr: true},
		{name: "inverted", period: &models.Period{StartDate: date(2023, 2, 1), EndDate: date(2023, 1, 1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRequirementPeriod(tt.period, now)
			if tt.wantErr {
				assert.True(t, errors.Is(err, models.ErrInvalidRequirementPeriod))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckRequirementValuePresent(t *testing.T) {
	assert.NoError(t, CheckRequirementValuePresent(requirement("r", models.DataTypeBoolean, models.ExpectedBoolean{Value: true})))

	err := CheckRequirementValuePresent(requirement("r", models.DataTypeBoolean, models.NoneValue{}))
	assert.True(t, errors.Is(err, models.ErrUnknownRequirementValue))
}

func TestCheckCriteria(t *testing.T) {
	valid := requirement("r1", models.DataTypeInteger, models.RangeInteger{Min: 1, Max: 5})

	tests := []struct {
		name     string
		criteria []models.Criterion
		wantErr  error
	}{
		{
			name:     "valid",
			criteria: []models.Criterion{criterion("c1", valid), criterion("c2", valid)},
		},
		{
			name:     "duplicate criteria",
			criteria: []models.Criterion{criterion("c1", valid), criterion("c1", valid)},
			wantErr:  models.ErrDuplicateID,
		},
		{
			name:     "duplicate requirements",
			criteria: []models.Criterion{criterion("c1", valid, valid)},
			wantErr:  models.ErrDuplicateID,
		},
		{
			name:     "no groups",
			criteria: []models.Criterion{{ID: "c1", Title: "t"}},
			wantErr:  models.ErrEmptyCollection,
		},
		{
			name:     "no requirements",
			criteria: []models.Criterion{criterion("c1")},
			wantErr:  models.ErrEmptyCollection,
		},
		{
			name:     "blank requirement title",
			criteria: []models.Criterion{criterion("c1", models.Requirement{ID: "r", Title: "  ", DataType: models.DataTypeString})},
			wantErr:  models.ErrBlankAttribute,
		},
		{
			name:     "inverted range",
			criteria: []models.Criterion{criterion("c1", requirement("r", models.DataTypeInteger, models.RangeInteger{Min: 5, Max: 1}))},
			wantErr:  models.ErrInvalidRequirementRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCriteria(tt.criteria, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
		})
	}
}

func TestCheckCriteriaRelations(t *testing.T) {
	items := []models.Item{{ID: "item-1"}}
	lots := []models.Lot{{ID: "lot-1"}}

	relatesTo := func(kind models.CriteriaRelatesTo, id string) models.Criterion {
		c := criterion("c")
		c.RelatesTo = kind
		c.RelatedItem = id
		return c
	}

	assert.NoError(t, CheckCriteriaRelations([]models.Criterion{
		relatesTo(models.RelatesToItem, "item-1"),
		relatesTo(models.RelatesToLot, "lot-1"),
		relatesTo(models.RelatesToTenderer, ""),
	}, items, lots))

	err := CheckCriteriaRelations([]models.Criterion{relatesTo(models.RelatesToLot, "item-1")}, items, lots)
	assert.True(t, errors.Is(err, models.ErrInvalidRelatedItem))
}
