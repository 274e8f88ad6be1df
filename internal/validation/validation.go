// Package validation содержит независимые правила проверки критериев, требований,
// лиц закупающей организации и параметров второго этапа.
package validation

import (
	"strings"
	"time"

	"github.com/senyabanana/access-service/internal/models"
)

// CheckNotBlank проверяет, что значение атрибута не пустое.
func CheckNotBlank(attribute, value string) error {
	if strings.TrimSpace(value) == "" {
		return models.ErrBlankAttribute.WithDetails("'%s'", attribute)
	}
	return nil
}

// CheckUniqueIDs проверяет уникальность идентификаторов в коллекции.
func CheckUniqueIDs[T any](collection string, items []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := id(item)
		if _, ok := seen[key]; ok {
			return models.ErrDuplicateID.WithDetails("collection '%s' contains duplicate id '%s'", collection, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// CheckNotEmpty проверяет, что коллекция содержит хотя бы один элемент.
func CheckNotEmpty[T any](collection string, items []T) error {
	if len(items) == 0 {
		return models.ErrEmptyCollection.WithDetails("'%s'", collection)
	}
	return nil
}

// CheckPersons проверяет лица: у каждого есть бизнес-функция, переданные документы не пусты.
func CheckPersons(persons []models.Person) error {
	if persons == nil {
		return nil
	}
	if err := CheckNotEmpty("procuringEntity.persones", persons); err != nil {
		return err
	}
	if err := CheckUniqueIDs("procuringEntity.persones", persons, func(p models.Person) string { return p.ID }); err != nil {
		return err
	}
	for _, person := range persons {
		if len(person.BusinessFunctions) == 0 {
			return models.ErrEmptyBusinessFunctions.WithDetails("person '%s'", person.ID)
		}
		for _, bf := range person.BusinessFunctions {
			if bf.Documents != nil {
				if err := CheckNotEmpty("businessFunctions.documents", bf.Documents); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// CheckBusinessFunctionsPeriod проверяет, что период бизнес-функции начинается не позже начала процесса.
func CheckBusinessFunctionsPeriod(persons []models.Person, startDate time.Time) error {
	for _, person := range persons {
		for _, bf := range person.BusinessFunctions {
			if bf.Period.StartDate.After(startDate) {
				return models.ErrInvalidBusinessFunctionPeriod.WithDetails("business function '%s' starts at %s, process starts at %s",
					bf.ID, bf.Period.StartDate.Format(time.RFC3339), startDate.Format(time.RFC3339))
			}
		}
	}
	return nil
}

// CheckSecondStage проверяет границы количества кандидатов второго этапа.
func CheckSecondStage(stage *models.SecondStage) error {
	if stage == nil {
		return nil
	}
	minimum, maximum := stage.MinimumCandidates, stage.MaximumCandidates
	if minimum == nil && maximum == nil {
		return models.ErrInvalidSecondStage.WithDetails("at least one of minimumCandidates, maximumCandidates must be present")
	}
	if minimum != nil && *minimum <= 0 {
		return models.ErrInvalidSecondStage.WithDetails("minimumCandidates must be greater than 0")
	}
	if maximum != nil && *maximum <= 0 {
		return models.ErrInvalidSecondStage.WithDetails("maximumCandidates must be greater than 0")
	}
	if minimum != nil && maximum != nil && *minimum >= *maximum {
		return models.ErrInvalidSecondStage.WithDetails("minimumCandidates (%d) must be less than maximumCandidates (%d)", *minimum, *maximum)
	}
	return nil
}

// CheckProcuringEntity сверяет закупающую организацию с сохраненной в AP или FE.
func CheckProcuringEntity(stored, received *models.ProcuringEntity) error {
	if received == nil {
		return nil
	}
	if stored == nil {
		return models.ErrInvalidProcuringEntity.WithDetails("stored document has no procuring entity")
	}
	if stored.ID != received.ID {
		return models.ErrInvalidProcuringEntity.WithDetails("received id '%s', stored id '%s'", received.ID, stored.ID)
	}
	if received.Identifier.ID != "" &&
		(stored.Identifier.Scheme != received.Identifier.Scheme || stored.Identifier.ID != received.Identifier.ID) {
		return models.ErrInvalidProcuringEntity.WithDetails("identifier mismatch for '%s'", received.ID)
	}
	return nil
}
