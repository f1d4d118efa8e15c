package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/database"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/jwtutil"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/logger"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

// RegisterCompany handles company registration at signup
func RegisterCompany(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.CompanyRegistrationCounter.Inc()

	// Get user ID from context (set by AuthMiddleware)
	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	userID := claims.UserID

	// Parse request
	var req struct {
		Name         string `json:"name"`
		ContactEmail string `json:"contact_email"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse company registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.ContactEmail == "" {
		log.Error("Invalid company data", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and contact_email are required"})
	}

	company := model.Company{
		Name:             req.Name,
		ContactEmail:     req.ContactEmail,
		OwnerID:          userID,
		OnboardingStatus: model.OnboardingPending,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := database.GetDB().Create(&company); result.Error != nil {
		log.Error("Failed to create company", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "company registration failed"})
	}

	refreshPendingCompaniesGauge(database.GetDB())

	log.Info("Company registered",
		zap.String("name", company.Name),
		zap.Uint("id", company.ID),
		zap.Uint("owner_id", company.OwnerID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Company registered successfully",
		"company": company,
	})
}

// GetCompany retrieves a company profile. This is the read the client
// poller hits on an interval, so it must stay side-effect free.
func GetCompany(c echo.Context) error {
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

	// Company users may only read their own company
	if !claims.IsAdmin() && (claims.CompanyID == nil || *claims.CompanyID != uint(id)) {
		log.Warn("Cross-company access attempt",
			zap.Uint("requesting_user_id", claims.UserID),
			zap.Uint64("company_id", id))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var company model.Company
	if result := database.GetDB().First(&company, id); result.Error != nil {
		log.Error("Company not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	return c.JSON(http.StatusOK, company)
}

// ListCompanies retrieves all companies for the administrator review queue
func ListCompanies(c echo.Context) error {
	log := logger.FromEcho(c)

	status := c.QueryParam("status")

	defer prometheus.TrackDBOperation("query")(time.Now())

	db := database.GetDB()
	if status != "" {
		db = db.Where("onboarding_status = ?", status)
	}

	var companies []model.Company
	if result := db.Order("created_at").Find(&companies); result.Error != nil {
		log.Error("Failed to retrieve companies", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve companies"})
	}

	return c.JSON(http.StatusOK, companies)
}

// UpdateCompany lets an administrator set the renewal date or override the
// onboarding status
func UpdateCompany(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid company ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company ID"})
	}

	var req struct {
		RenewalDate      *string `json:"renewal_date"` // YYYY-MM-DD
		OnboardingStatus *string `json:"onboarding_status"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse company update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var company model.Company
	if result := database.GetDB().First(&company, id); result.Error != nil {
		log.Error("Company not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	updates := map[string]interface{}{}

	if req.RenewalDate != nil {
		renewal, err := time.Parse("2006-01-02", *req.RenewalDate)
		if err != nil {
			log.Error("Invalid renewal date", zap.String("renewal_date", *req.RenewalDate))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "renewal_date must be YYYY-MM-DD"})
		}
		updates["renewal_date"] = renewal
	}

	if req.OnboardingStatus != nil {
		switch *req.OnboardingStatus {
		case model.OnboardingPending, model.OnboardingCompleted, model.OnboardingRejected:
			updates["onboarding_status"] = *req.OnboardingStatus
		default:
			log.Error("Invalid onboarding status", zap.String("onboarding_status", *req.OnboardingStatus))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid onboarding status"})
		}
	}

	if len(updates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := database.GetDB().Model(&company).Updates(updates); result.Error != nil {
		log.Error("Failed to update company", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "company update failed"})
	}

	log.Info("Company updated",
		zap.Uint("id", company.ID),
		zap.Any("updates", updates))

	return c.JSON(http.StatusOK, company)
}
