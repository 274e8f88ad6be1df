package models

import (
	"encoding/json"
	"time"
)

type (
	Action         string // Действие команды
	ResponseStatus string // Статус ответа на команду
)

const (
	ActionCheckItems     Action = "checkItems"
	ActionCreateTender   Action = "createTender"
	ActionUpdateTender   Action = "updateTender"
	ActionCheckCriteria  Action = "checkCriteria"
	ActionCreateCriteria Action = "createCriteria"
	ActionGetCriteria    Action = "getCriteria"
	ActionCheckFEData    Action = "checkFEData"

	StatusSuccess ResponseStatus = "success"
	StatusError   ResponseStatus = "error"
)

// Command - конверт входящей команды.
type Command struct {
	ID      string          `json:"id"`
	Action  Action          `json:"action"`
	Version string          `json:"version"`
	Params  json.RawMessage `json:"params"`
}

// CommandResponse - конверт ответа на команду.
type CommandResponse struct {
	ID      string         `json:"id"`
	Version string         `json:"version"`
	Status  ResponseStatus `json:"status"`
	Result  any            `json:"result,omitempty"`
}

// HistoryEntity - сохраненный ответ на ранее обработанную команду.
type HistoryEntity struct {
	CommandID   string
	Action      Action
	CreatedDate time.Time
	JsonData    []byte
}

// CreateTenderParams - параметры команды createTender.
type CreateTenderParams struct {
	Cpid          string        `json:"cpid"`
	Ocid          string        `json:"ocid"`
	Owner         string        `json:"owner"`
	OperationType OperationType `json:"operationType"`
	Tender        Tender        `json:"tender"`
}

// CreateTenderResult - результат команды createTender.
type CreateTenderResult struct {
	Token  string `json:"token"`
	Ocid   string `json:"ocid"`
	Stage  string `json:"stage"`
	Tender Tender `json:"tender"`
}

// UpdateTenderParams - параметры команды updateTender.
type UpdateTenderParams struct {
	Cpid   string `json:"cpid"`
	Ocid   string `json:"ocid"`
	Token  string `json:"token"`
	Owner  string `json:"owner"`
	Tender Tender `json:"tender"`
}

// CheckCriteriaParams - параметры команды checkCriteria.
type CheckCriteriaParams struct {
	Criteria []Criterion `json:"criteria"`
	Items    []Item      `json:"items,omitempty"`
	Lots     []Lot       `json:"lots,omitempty"`
}

// CreateCriteriaParams - параметры команды createCriteria.
type CreateCriteriaParams struct {
	Cpid     string      `json:"cpid"`
	Ocid     string      `json:"ocid"`
	Criteria []Criterion `json:"criteria"`
}

// GetCriteriaParams - параметры команды getCriteria.
type GetCriteriaParams struct {
	Cpid string `json:"cpid"`
	Ocid string `json:"ocid"`
}

// CriteriaResult - критерии тендера в ответе.
type CriteriaResult struct {
	Criteria []Criterion `json:"criteria"`
}

// CheckFETender - проверяемая часть тендера рамочного соглашения.
type CheckFETender struct {
	SecondStage     *SecondStage     `json:"secondStage,omitempty"`
	ProcuringEntity *ProcuringEntity `json:"procuringEntity,omitempty"`
}

// CheckFEDataParams - параметры команды checkFEData.
type CheckFEDataParams struct {
	Cpid          string        `json:"cpid"`
	Ocid          string        `json:"ocid,omitempty"`
	Country       string        `json:"country"`
	Pmd           string        `json:"pmd"`
	OperationType OperationType `json:"operationType"`
	StartDate     time.Time     `json:"startDate"`
	Tender        CheckFETender `json:"tender"`
}
