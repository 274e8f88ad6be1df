package models

import "time"

// Identifier - идентификатор организации или лица.
type Identifier struct {
	Scheme    string `json:"scheme"`
	ID        string `json:"id"`
	LegalName string `json:"legalName,omitempty"`
	URI       string `json:"uri,omitempty"`
}

// Document - документ, приложенный к бизнес-функции.
type Document struct {
	ID           string `json:"id"`
	DocumentType string `json:"documentType"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
}

// BusinessFunctionPeriod - период полномочий бизнес-функции.
type BusinessFunctionPeriod struct {
	StartDate time.Time `json:"startDate"`
}

// BusinessFunction - функция, которую лицо выполняет в организации.
type BusinessFunction struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	JobTitle  string                 `json:"jobTitle"`
	Period    BusinessFunctionPeriod `json:"period"`
	Documents []Document             `json:"documents,omitempty"`
}

// Person - ответственное лицо закупающей организации.
type Person struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Name              string             `json:"name"`
	Identifier        Identifier         `json:"identifier"`
	BusinessFunctions []BusinessFunction `json:"businessFunctions"`
}

// ProcuringEntity - закупающая организация.
type ProcuringEntity struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Identifier Identifier `json:"identifier"`
	Persones   []Person   `json:"persones,omitempty"`
}

// SecondStage - ограничения количества кандидатов второго этапа.
type SecondStage struct {
	MinimumCandidates *int `json:"minimumCandidates,omitempty"`
	MaximumCandidates *int `json:"maximumCandidates,omitempty"`
}
