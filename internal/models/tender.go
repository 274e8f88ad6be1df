package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	Scheme                  string // Схема классификации
	MainProcurementCategory string // Основная категория закупки
)

const (
	SchemeCPV    Scheme = "CPV"
	SchemeCPVS   Scheme = "CPVS"
	SchemeGSIN   Scheme = "GSIN"
	SchemeUNSPSC Scheme = "UNSPSC"
	SchemeSITC   Scheme = "SITC"
	SchemeOKDP   Scheme = "OKDP"
	SchemeOKPD   Scheme = "OKPD"

	StagePN  = "PN"
	StagePIN = "PIN"
	StageCN  = "CN"
	StageEV  = "EV"
	StageNP  = "NP"
	StageTP  = "TP"
	StageAP  = "AP"
	StageFE  = "FE"
	StageRQ  = "RQ"

	Goods    MainProcurementCategory = "goods"
	Works    MainProcurementCategory = "works"
	Services MainProcurementCategory = "services"
)

func init() {
	// Количество и суммы в документах OCDS передаются числами.
	decimal.MarshalJSONWithoutQuotes = true
}

// ValidMainProcurementCategory проверяет значение категории закупки.
func ValidMainProcurementCategory(c MainProcurementCategory) bool {
	switch c {
	case Goods, Works, Services:
		return true
	default:
		return false
	}
}

// Classification описывает классификацию тендера или предмета закупки.
type Classification struct {
	Scheme      Scheme `json:"scheme"`
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	URI         string `json:"uri,omitempty"`
}

// Unit - единица измерения предмета закупки.
type Unit struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Item представляет предмет закупки внутри тендера.
type Item struct {
	ID                        string           `json:"id"`
	Description               string           `json:"description,omitempty"`
	Classification            Classification   `json:"classification"`
	AdditionalClassifications []Classification `json:"additionalClassifications,omitempty"`
	Quantity                  decimal.Decimal  `json:"quantity"`
	Unit                      Unit             `json:"unit"`
	RelatedLot                string           `json:"relatedLot"`
}

// Lot - лот тендера.
type Lot struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Tender - общая часть документов CN, PN, AP и FE, с которой работает сервис.
type Tender struct {
	ID                      string                  `json:"id,omitempty"`
	Title                   string                  `json:"title,omitempty"`
	Description             string                  `json:"description,omitempty"`
	Status                  string                  `json:"status,omitempty"`
	Classification          Classification          `json:"classification"`
	MainProcurementCategory MainProcurementCategory `json:"mainProcurementCategory,omitempty"`
	Items                   []Item                  `json:"items,omitempty"`
	Lots                    []Lot                   `json:"lots,omitempty"`
	Criteria                []Criterion             `json:"criteria,omitempty"`
	ProcuringEntity         *ProcuringEntity        `json:"procuringEntity,omitempty"`
	SecondStage             *SecondStage            `json:"secondStage,omitempty"`
}

// TenderDocument - содержимое jsonData снимка стадии.
type TenderDocument struct {
	Ocid   string `json:"ocid,omitempty"`
	Tender Tender `json:"tender"`
}

// TenderProcessEntity - сохраненный снимок стадии процесса закупки.
type TenderProcessEntity struct {
	Cpid        string    `json:"cpid"`
	Ocid        string    `json:"ocid"`
	Stage       string    `json:"stage"`
	Token       string    `json:"token"`
	Owner       string    `json:"owner"`
	CreatedDate time.Time `json:"createdDate"`
	JsonData    []byte    `json:"-"`
}
