package models

// CheckItemsClassification - классификация предмета в запросе проверки.
type CheckItemsClassification struct {
	ID string `json:"id"`
}

// CheckItemsItem - предмет закупки в запросе проверки.
type CheckItemsItem struct {
	ID             string                   `json:"id"`
	Classification CheckItemsClassification `json:"classification"`
	RelatedLot     string                   `json:"relatedLot"`
}

// CheckItemsParams - параметры команды checkItems.
type CheckItemsParams struct {
	OperationType OperationType    `json:"operationType"`
	Cpid          string           `json:"cpid"`
	Ocid          string           `json:"ocid,omitempty"`
	PreviousStage string           `json:"previousStage,omitempty"`
	Items         []CheckItemsItem `json:"items,omitempty"`
}

// ItemReference - предмет в ответе: идентификатор и связанный лот.
type ItemReference struct {
	ID         string `json:"id"`
	RelatedLot string `json:"relatedLot"`
}

// TenderClassificationResult - рассчитанная классификация тендера.
type TenderClassificationResult struct {
	Classification CheckItemsClassification `json:"classification"`
}

// CheckItemsResult - решение о добавлении предметов и рассчитанная классификация.
type CheckItemsResult struct {
	MdmValidation           bool                        `json:"mdmValidation"`
	ItemsAdd                bool                        `json:"itemsAdd"`
	Tender                  *TenderClassificationResult `json:"tender,omitempty"`
	MainProcurementCategory MainProcurementCategory     `json:"mainProcurementCategory,omitempty"`
	Items                   []ItemReference             `json:"items,omitempty"`
}
