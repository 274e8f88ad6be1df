package validation

import (
	"time"

	"github.com/senyabanana/access-service/internal/models"
)

// CheckRequirementDataType проверяет, что вариант значения соответствует объявленному dataType.
func CheckRequirementDataType(r models.Requirement) error {
	if !models.ValidRequirementDataType(r.DataType) {
		return models.ErrInvalidRequirementValue.WithDetails("requirement '%s' has unknown data type '%s'", r.ID, r.DataType)
	}
	if r.Value == nil {
		return nil
	}
	valueType, ok := r.Value.DataType()
	if ok && valueType != r.DataType {
		return models.ErrInvalidRequirementValue.WithDetails("requirement '%s' value of type '%s' does not match data type '%s'",
			r.ID, valueType, r.DataType)
	}
	return nil
}

// CheckRequirementValuePresent требует наличия ограничения там, где оно обязательно.
func CheckRequirementValuePresent(r models.Requirement) error {
	switch r.Value.(type) {
	case nil, models.NoneValue:
		return models.ErrUnknownRequirementValue.WithDetails("requirement '%s'", r.ID)
	default:
		return nil
	}
}

// CheckRequirementRange проверяет minValue < maxValue для диапазонов.
// Числа сравниваются с точностью сериализации.
func CheckRequirementRange(r models.Requirement) error {
	switch v := r.Value.(type) {
	case models.RangeInteger:
		if v.Min >= v.Max {
			return models.ErrInvalidRequirementRange.WithDetails("requirement '%s': %d >= %d", r.ID, v.Min, v.Max)
		}
	case models.RangeNumber:
		lo, hi := v.Min.Round(models.NumberScale), v.Max.Round(models.NumberScale)
		if !lo.LessThan(hi) {
			return models.ErrInvalidRequirementRange.WithDetails("requirement '%s': %s >= %s", r.ID,
				lo.StringFixed(models.NumberScale), hi.StringFixed(models.NumberScale))
		}
	}
	return nil
}

// CheckRequirementPeriod проверяет, что даты периода не позже текущего года и startDate <= endDate.
func CheckRequirementPeriod(period *models.Period, now time.Time) error {
	if period == nil {
		return nil
	}
	currentYear := now.Year()
	if period.StartDate.Year() > currentYear {
		return models.ErrInvalidRequirementPeriod.WithDetails("startDate year %d is later than current year %d",
			period.StartDate.Year(), currentYear)
	}
	if period.EndDate.Year() > currentYear {
		return models.ErrInvalidRequirementPeriod.WithDetails("endDate year %d is later than current year %d",
			period.EndDate.Year(), currentYear)
	}
	if period.StartDate.After(period.EndDate) {
		return models.ErrInvalidRequirementPeriod.WithDetails("startDate is later than endDate")
	}
	return nil
}

// CheckRequirement применяет все правила к одному требованию.
func CheckRequirement(r models.Requirement, now time.Time) error {
	if err := CheckNotBlank("requirement.title", r.Title); err != nil {
		return err
	}
	if err := CheckRequirementDataType(r); err != nil {
		return err
	}
	if err := CheckRequirementRange(r); err != nil {
		return err
	}
	return CheckRequirementPeriod(r.Period, now)
}

// CheckCriteria проверяет дерево критериев: непустые группы и требования,
// уникальность идентификаторов среди соседей и правила каждого требования.
func CheckCriteria(criteria []models.Criterion, now time.Time) error {
	err := CheckUniqueIDs("criteria", criteria, func(c models.Criterion) string { return c.ID })
	if err != nil {
		return err
	}
	for _, criterion := range criteria {
		if err := CheckNotBlank("criteria.title", criterion.Title); err != nil {
			return err
		}
		if err := CheckNotEmpty("criteria.requirementGroups", criterion.RequirementGroups); err != nil {
			return err
		}
		err := CheckUniqueIDs("criteria.requirementGroups", criterion.RequirementGroups,
			func(g models.RequirementGroup) string { return g.ID })
		if err != nil {
			return err
		}
		for _, group := range criterion.RequirementGroups {
			if err := CheckNotEmpty("criteria.requirementGroups.requirements", group.Requirements); err != nil {
				return err
			}
			err := CheckUniqueIDs("criteria.requirementGroups.requirements", group.Requirements,
				func(r models.Requirement) string { return r.ID })
			if err != nil {
				return err
			}
			for _, requirement := range group.Requirements {
				if err := CheckRequirement(requirement, now); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// CheckCriteriaRelations проверяет ссылки relatedItem критериев на переданные предметы и лоты.
func CheckCriteriaRelations(criteria []models.Criterion, items []models.Item, lots []models.Lot) error {
	itemIDs := make(map[string]struct{}, len(items))
	for _, item := range items {
		itemIDs[item.ID] = struct{}{}
	}
	lotIDs := make(map[string]struct{}, len(lots))
	for _, lot := range lots {
		lotIDs[lot.ID] = struct{}{}
	}

	for _, criterion := range criteria {
		var known map[string]struct{}
		switch criterion.RelatesTo {
		case models.RelatesToItem:
			known = itemIDs
		case models.RelatesToLot:
			known = lotIDs
		default:
			continue
		}
		if _, ok := known[criterion.RelatedItem]; !ok {
			return models.ErrInvalidRelatedItem.WithDetails("criterion '%s' relates to %s '%s'",
				criterion.ID, criterion.RelatesTo, criterion.RelatedItem)
		}
	}
	return nil
}
