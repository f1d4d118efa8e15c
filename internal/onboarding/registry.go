package onboarding

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
)

// ListRequiredTypes returns the names of all document types a company must
// supply to be compliant. The registry is administrator-managed; the
// engine never writes to it outside of the boot-time seed.
func ListRequiredTypes(db *gorm.DB) ([]string, error) {
	var types []model.RequiredDocumentType
	if result := db.Order("name").Find(&types); result.Error != nil {
		return nil, result.Error
	}

	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	return names, nil
}

// SeedRequiredTypes inserts the configured requirement set, skipping names
// that already exist so administrator edits survive restarts.
func SeedRequiredTypes(db *gorm.DB, names []string) error {
	for _, name := range names {
		entry := model.RequiredDocumentType{Name: name}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&entry)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// IsKnownType reports whether the given document type is part of the
// registry or the ad-hoc OTHER type accepted for non-required uploads.
func IsKnownType(required []string, documentType string) bool {
	if documentType == model.DocumentTypeOther {
		return true
	}
	for _, t := range required {
		if t == documentType {
			return true
		}
	}
	return false
}
