package models

import (
	"encoding/json"
	"regexp"
	"strings"
)

const (
	CPVBodyLength       = 8 // Количество цифр кода до контрольной цифры
	MinCPVPatternLength = 3
	MaxCPVPatternLength = 8
)

var cpvCodeRegexp = regexp.MustCompile(`^[0-9]{8}-[0-9]$`)

// CPVCode - код общего словаря закупок вида XXXXXXXX-Y.
type CPVCode string

// CPVCodePattern - префикс кода длиной от 3 до 8 цифр.
type CPVCodePattern string

// NewCPVCode проверяет строку и возвращает CPV код.
func NewCPVCode(raw string) (CPVCode, error) {
	if !cpvCodeRegexp.MatchString(raw) {
		return "", ErrInvalidCPVCode.WithDetails("'%s' does not match pattern XXXXXXXX-Y", raw)
	}
	return CPVCode(raw), nil
}

// NewCPVCodeFromPattern дополняет шаблон нулями до 8 цифр и добавляет контрольную цифру.
func NewCPVCodeFromPattern(pattern CPVCodePattern, checkDigit byte) (CPVCode, error) {
	body := string(pattern)
	if len(body) < CPVBodyLength {
		body += strings.Repeat("0", CPVBodyLength-len(body))
	}
	return NewCPVCode(body + "-" + string(checkDigit))
}

// Body возвращает восемь цифр кода без контрольной цифры.
func (c CPVCode) Body() string {
	return string(c)[:CPVBodyLength]
}

// CheckDigit возвращает контрольную цифру кода.
func (c CPVCode) CheckDigit() byte {
	return c[len(c)-1]
}

func (c CPVCode) String() string {
	return string(c)
}

// UnmarshalJSON не позволяет создать CPV код в обход проверки.
func (c *CPVCode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	code, err := NewCPVCode(raw)
	if err != nil {
		return err
	}
	*c = code
	return nil
}
