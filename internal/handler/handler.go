package handler

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/notify"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/onboarding"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/storage"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

// Collaborators wired in from main at startup
var (
	presigner storage.Presigner
	notifier  *notify.Notifier
)

// Init wires the storage and notification collaborators into the handlers
func Init(p storage.Presigner, n *notify.Notifier) {
	presigner = p
	notifier = n
}

// refreshPendingCompaniesGauge recounts companies still awaiting
// onboarding; called when a registration or an activation moves the count
func refreshPendingCompaniesGauge(db *gorm.DB) {
	var count int64
	if res := db.Model(&model.Company{}).
		Where("onboarding_status = ?", model.OnboardingPending).
		Count(&count); res.Error == nil {
		prometheus.UpdatePendingCompanies(int(count))
	}
}

// engineErrorStatus maps engine error kinds to HTTP status codes and
// records the error metric. Unrecognized errors map to 500.
func engineErrorStatus(err error) int {
	switch {
	case errors.Is(err, onboarding.ErrNotFound):
		prometheus.RecordEngineError("not_found")
		return http.StatusNotFound
	case errors.Is(err, onboarding.ErrForbidden):
		prometheus.RecordEngineError("forbidden")
		return http.StatusForbidden
	case errors.Is(err, onboarding.ErrValidation):
		prometheus.RecordEngineError("validation")
		return http.StatusBadRequest
	case errors.Is(err, onboarding.ErrConflict):
		prometheus.RecordEngineError("conflict")
		return http.StatusConflict
	default:
		prometheus.RecordEngineError("internal")
		return http.StatusInternalServerError
	}
}
