package models

type (
	CriteriaRelatesTo string // Объект, к которому относится критерий
	CriteriaSource    string // Источник ответа на критерий
)

const (
	RelatesToAward         CriteriaRelatesTo = "award"
	RelatesToItem          CriteriaRelatesTo = "item"
	RelatesToLot           CriteriaRelatesTo = "lot"
	RelatesToQualification CriteriaRelatesTo = "qualification"
	RelatesToTender        CriteriaRelatesTo = "tender"
	RelatesToTenderer      CriteriaRelatesTo = "tenderer"

	SourceTenderer        CriteriaSource = "tenderer"
	SourceBuyer           CriteriaSource = "buyer"
	SourceProcuringEntity CriteriaSource = "procuringEntity"
)

// RequirementGroup - группа требований критерия.
type RequirementGroup struct {
	ID           string        `json:"id"`
	Description  string        `json:"description,omitempty"`
	Requirements []Requirement `json:"requirements"`
}

// CriterionClassification - классификация критерия.
type CriterionClassification struct {
	Scheme string `json:"scheme"`
	ID     string `json:"id"`
}

// Criterion - критерий квалификации или оценки.
type Criterion struct {
	ID                string                   `json:"id"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description,omitempty"`
	Source            CriteriaSource           `json:"source,omitempty"`
	RelatesTo         CriteriaRelatesTo        `json:"relatesTo,omitempty"`
	RelatedItem       string                   `json:"relatedItem,omitempty"`
	Classification    *CriterionClassification `json:"classification,omitempty"`
	RequirementGroups []RequirementGroup       `json:"requirementGroups"`
}
