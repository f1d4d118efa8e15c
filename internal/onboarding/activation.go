package onboarding

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

// TryActivate recomputes compliance for the company and, if it is now
// compliant, flips the onboarding status to COMPLETED. The caller must
// supply a transaction; the company row is locked for the duration so the
// recompute and the status write form one atomic step. Activation never
// regresses: an already-active company stays active regardless of the
// evaluation outcome, and calling this on an active, still-compliant
// company is a no-op.
func TryActivate(tx *gorm.DB, companyID uint) (bool, model.Company, error) {
	var company model.Company
	if res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&company, companyID); res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, company, fmt.Errorf("%w: company %d", ErrNotFound, companyID)
		}
		return false, company, res.Error
	}

	compliance, err := EvaluateCompany(tx, companyID)
	if err != nil {
		return false, company, err
	}

	if !shouldActivate(company.OnboardingStatus, compliance) {
		return false, company, nil
	}

	company.OnboardingStatus = model.OnboardingCompleted
	if res := tx.Model(&model.Company{}).Where("id = ?", company.ID).
		Update("onboarding_status", model.OnboardingCompleted); res.Error != nil {
		return false, company, res.Error
	}

	prometheus.ActivationCounter.Inc()
	return true, company, nil
}

// shouldActivate is the activation decision: a company flips to COMPLETED
// when it is compliant and not already completed. An active company never
// regresses here regardless of the evaluation outcome.
func shouldActivate(onboardingStatus string, compliance ComplianceStatus) bool {
	return compliance.IsCompliant && onboardingStatus != model.OnboardingCompleted
}
