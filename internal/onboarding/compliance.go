package onboarding

import (
	"sort"

	"gorm.io/gorm"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

// ComplianceStatus is the derived compliance picture for a company. It is
// recomputed on every read and never persisted, so it cannot drift from
// the document ledger.
type ComplianceStatus struct {
	RequiredDocumentTypes []string `json:"required_document_types"`
	ApprovedDocumentTypes []string `json:"approved_document_types"`
	MissingDocumentTypes  []string `json:"missing_document_types"`
	IsCompliant           bool     `json:"is_compliant"`
}

// Evaluate computes the compliance status from a requirement snapshot and
// the company's document ledger. A type counts as approved when at least
// one document of that type is currently VERIFIED; rejected or pending
// documents of the same type do not subtract from that.
func Evaluate(required []string, documents []model.Document) ComplianceStatus {
	approved := make(map[string]bool)
	for _, doc := range documents {
		if doc.Status == model.DocumentVerified {
			approved[doc.DocumentType] = true
		}
	}

	approvedTypes := make([]string, 0, len(approved))
	for t := range approved {
		approvedTypes = append(approvedTypes, t)
	}
	sort.Strings(approvedTypes)

	missing := make([]string, 0)
	for _, t := range required {
		if !approved[t] {
			missing = append(missing, t)
		}
	}

	return ComplianceStatus{
		RequiredDocumentTypes: required,
		ApprovedDocumentTypes: approvedTypes,
		MissingDocumentTypes:  missing,
		IsCompliant:           len(missing) == 0,
	}
}

// EvaluateCompany loads the requirement registry and the company's ledger
// from the given db handle (which may be a transaction) and evaluates
// compliance. An unknown company evaluates over an empty ledger.
func EvaluateCompany(db *gorm.DB, companyID uint) (ComplianceStatus, error) {
	prometheus.ComplianceEvalCounter.Inc()

	required, err := ListRequiredTypes(db)
	if err != nil {
		return ComplianceStatus{}, err
	}

	var documents []model.Document
	if result := db.Where("company_id = ?", companyID).Find(&documents); result.Error != nil {
		return ComplianceStatus{}, result.Error
	}

	return Evaluate(required, documents), nil
}
