// Package cpv содержит правила работы с кодами CPV: группировку по префиксу,
// проверку однородности и расчет кода тендера по кодам предметов.
package cpv

import (
	"fmt"
	"strings"

	"github.com/senyabanana/access-service/internal/models"
)

// Длина самого длинного префикса, по которому рассчитывается код тендера.
const maxCalculatedPatternLength = 7

// ParseCodes преобразует строки в CPV коды.
func ParseCodes(raw []string) ([]models.CPVCode, error) {
	codes := make([]models.CPVCode, 0, len(raw))
	for _, r := range raw {
		code, err := models.NewCPVCode(r)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// PatternOfGroups возвращает первые три цифры кода.
func PatternOfGroups(code models.CPVCode) models.CPVCodePattern {
	return PatternBySymbols(code, models.MinCPVPatternLength)
}

// PatternBySymbols возвращает первые n цифр кода.
func PatternBySymbols(code models.CPVCode, n int) models.CPVCodePattern {
	if n < models.MinCPVPatternLength || n > models.MaxCPVPatternLength {
		panic(fmt.Sprintf("cpv pattern length must be in [%d, %d], got %d",
			models.MinCPVPatternLength, models.MaxCPVPatternLength, n))
	}
	return models.CPVCodePattern(code.Body()[:n])
}

// StartsWithPattern проверяет, что каждый код начинается с шаблона.
func StartsWithPattern(codes []models.CPVCode, pattern models.CPVCodePattern) bool {
	for _, code := range codes {
		if !strings.HasPrefix(code.Body(), string(pattern)) {
			return false
		}
	}
	return true
}

// CalculateCPVCode рассчитывает код тендера по кодам предметов.
// Берется самый длинный общий префикс длиной от 7 до 3 цифр, остаток заполняется нулями.
// Контрольная цифра не пересчитывается: берется из кода первого предмета.
func CalculateCPVCode(codes []models.CPVCode) (models.CPVCode, error) {
	if len(codes) == 0 {
		return "", models.ErrEmptyItems
	}

	first := codes[0]
	if len(codes) == 1 {
		return models.NewCPVCodeFromPattern(PatternBySymbols(first, maxCalculatedPatternLength), first.CheckDigit())
	}

	for n := maxCalculatedPatternLength; n >= models.MinCPVPatternLength; n-- {
		pattern := PatternBySymbols(first, n)
		if StartsWithPattern(codes, pattern) {
			return models.NewCPVCodeFromPattern(pattern, first.CheckDigit())
		}
	}
	return "", models.ErrItemsCpvCodesNotConsistent.WithDetails("no common prefix of at least %d digits in %v",
		models.MinCPVPatternLength, codes)
}

// CheckCalculatedCPVCode сверяет группу рассчитанного кода с группой кода тендера.
func CheckCalculatedCPVCode(calculated, tenderCode models.CPVCode) error {
	if PatternOfGroups(calculated) != PatternOfGroups(tenderCode) {
		return models.ErrCalculatedCpvCodeNoMatchTenderCpvCode.WithDetails("calculated '%s', tender '%s'",
			calculated, tenderCode)
	}
	return nil
}

// CheckItemsCPVCodes проверяет, что коды предметов относятся к одной группе.
func CheckItemsCPVCodes(codes []models.CPVCode) error {
	if len(codes) == 0 {
		return models.ErrEmptyItems
	}
	if !AreHomogeneous(codes) {
		return models.ErrItemsCpvCodesNotConsistent.WithDetails("codes %v", codes)
	}
	return nil
}

// AreHomogeneous - то же, что CheckItemsCPVCodes, но без ошибки.
func AreHomogeneous(codes []models.CPVCode) bool {
	if len(codes) == 0 {
		return false
	}
	return StartsWithPattern(codes, PatternOfGroups(codes[0]))
}

// HomogeneousWithTenderClassification оставляет коды из группы кода тендера.
func HomogeneousWithTenderClassification(codes []models.CPVCode, tenderCode models.CPVCode) []models.CPVCode {
	pattern := PatternOfGroups(tenderCode)
	filtered := make([]models.CPVCode, 0, len(codes))
	for _, code := range codes {
		if strings.HasPrefix(code.Body(), string(pattern)) {
			filtered = append(filtered, code)
		}
	}
	return filtered
}
