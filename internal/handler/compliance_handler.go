package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/onboarding"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/database"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/jwtutil"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/logger"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

// GetCompliance returns the derived compliance status for a company.
// Recomputed on every call; nothing here is persisted.
func GetCompliance(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid company ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	if !claims.IsAdmin() && (claims.CompanyID == nil || *claims.CompanyID != uint(id)) {
		log.Warn("Cross-company compliance access attempt",
			zap.Uint("requesting_user_id", claims.UserID),
			zap.Uint64("company_id", id))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	compliance, err := onboarding.EvaluateCompany(database.GetDB(), uint(id))
	if err != nil {
		log.Error("Failed to evaluate compliance", zap.Uint64("company_id", id), zap.Error(err))
		return c.JSON(engineErrorStatus(err), echo.Map{"error": "failed to evaluate compliance"})
	}

	return c.JSON(http.StatusOK, compliance)
}

// GetOnboardingState returns the derived onboarding stage together with
// the compliance breakdown. The client poller consumes this to route the
// user between the expired, waiting and upload screens.
func GetOnboardingState(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid company ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	if !claims.IsAdmin() && (claims.CompanyID == nil || *claims.CompanyID != uint(id)) {
		log.Warn("Cross-company onboarding state access attempt",
			zap.Uint("requesting_user_id", claims.UserID),
			zap.Uint64("company_id", id))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	db := database.GetDB()

	var company model.Company
	if result := db.First(&company, id); result.Error != nil {
		log.Error("Company not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	var documents []model.Document
	if result := db.Where("company_id = ?", id).Find(&documents); result.Error != nil {
		log.Error("Failed to load documents", zap.Uint64("company_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load documents"})
	}

	required, err := onboarding.ListRequiredTypes(db)
	if err != nil {
		log.Error("Failed to load requirement registry", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load requirements"})
	}

	compliance := onboarding.Evaluate(required, documents)
	stage := onboarding.DeriveStage(compliance, company.RenewalDate, documents, time.Now())

	return c.JSON(http.StatusOK, echo.Map{
		"stage":             stage,
		"compliance":        compliance,
		"onboarding_status": company.OnboardingStatus,
		"renewal_date":      company.RenewalDate,
	})
}
