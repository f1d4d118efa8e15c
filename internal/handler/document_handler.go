package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/notify"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/onboarding"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/database"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/jwtutil"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/pkg/logger"
	"github.com/girishahb/aspirecoworks-client-onboard-sub001/prometheus"
)

// deriveCompanyStage recomputes the derived onboarding stage from the
// company's current ledger and the requirement registry
func deriveCompanyStage(db *gorm.DB, companyID uint) (onboarding.Stage, error) {
	var company model.Company
	if res := db.First(&company, companyID); res.Error != nil {
		return "", res.Error
	}

	var documents []model.Document
	if res := db.Where("company_id = ?", companyID).Find(&documents); res.Error != nil {
		return "", res.Error
	}

	required, err := onboarding.ListRequiredTypes(db)
	if err != nil {
		return "", err
	}

	compliance := onboarding.Evaluate(required, documents)
	return onboarding.DeriveStage(compliance, company.RenewalDate, documents, time.Now()), nil
}

// ListDocuments returns the full document ledger for a company, including
// superseded and rejected records, ordered by upload time
func ListDocuments(c echo.Context) error {
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
		log.Warn("Cross-company document access attempt",
			zap.Uint("requesting_user_id", claims.UserID),
			zap.Uint64("company_id", id))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var documents []model.Document
	if result := database.GetDB().Where("company_id = ?", id).Order("created_at").Find(&documents); result.Error != nil {
		log.Error("Failed to retrieve documents", zap.Uint64("company_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve documents"})
	}

	return c.JSON(http.StatusOK, documents)
}

// RequestUploadSlot creates a provisional UPLOADED document record and
// returns a presigned destination the client uploads the file bytes to
// directly. A re-upload after rejection goes through here too and always
// creates a fresh record; the rejected one stays as audit trail.
func RequestUploadSlot(c echo.Context) error {
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
		log.Warn("Cross-company upload attempt",
			zap.Uint("requesting_user_id", claims.UserID),
			zap.Uint64("company_id", id))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var req struct {
		DocumentType string `json:"document_type"`
		FileName     string `json:"file_name"`
		FileSize     int64  `json:"file_size"`
		MimeType     string `json:"mime_type"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse upload slot request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.DocumentType == "" || req.FileName == "" {
		log.Error("Invalid upload slot data", zap.String("document_type", req.DocumentType))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_type and file_name are required"})
	}

	db := database.GetDB()

	var company model.Company
	if result := db.First(&company, id); result.Error != nil {
		log.Error("Company not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
	}

	required, err := onboarding.ListRequiredTypes(db)
	if err != nil {
		log.Error("Failed to load requirement registry", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load requirements"})
	}

	if !onboarding.IsKnownType(required, req.DocumentType) {
		log.Error("Unknown document type", zap.String("document_type", req.DocumentType))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown document type"})
	}

	slot, err := presigner.PresignUpload(c.Request().Context(), uint(id), req.FileName, req.MimeType)
	if err != nil {
		log.Error("Failed to presign upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create upload slot"})
	}

	document := model.Document{
		CompanyID:    uint(id),
		DocumentType: req.DocumentType,
		Status:       model.DocumentUploaded,
		FileName:     req.FileName,
		StorageKey:   slot.Key,
		FileSize:     req.FileSize,
		MimeType:     req.MimeType,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := db.Create(&document); result.Error != nil {
		log.Error("Failed to create document record", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create document"})
	}

	prometheus.RecordUploadSlot(req.DocumentType)
	log.Info("Upload slot issued",
		zap.Uint("document_id", document.ID),
		zap.Uint64("company_id", id),
		zap.String("document_type", req.DocumentType))

	return c.JSON(http.StatusCreated, echo.Map{
		"document":   document,
		"upload_url": slot.UploadURL,
		"expires_at": slot.ExpiresAt,
	})
}

// ReviewDocument applies an administrator APPROVE/REJECT decision. The
// engine runs the activation check in the same transaction; notifications
// fire only after a successful commit.
func ReviewDocument(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid document ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid document ID"})
	}

	var req struct {
		Decision        string `json:"decision"`
		RejectionReason string `json:"rejection_reason"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse review request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()

	// Snapshot the derived stage before the decision; the stage-changed
	// event fires only on an actual transition.
	priorStage := onboarding.Stage("")
	var priorDoc model.Document
	if res := db.First(&priorDoc, uint(id)); res.Error == nil {
		if s, serr := deriveCompanyStage(db, priorDoc.CompanyID); serr == nil {
			priorStage = s
		}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	result, err := onboarding.Review(db, uint(id), onboarding.Decision(req.Decision), req.RejectionReason)
	if err != nil {
		log.Error("Review failed",
			zap.Uint64("document_id", id),
			zap.String("decision", req.Decision),
			zap.Error(err))
		return c.JSON(engineErrorStatus(err), echo.Map{"error": err.Error()})
	}

	switch result.Document.Status {
	case model.DocumentVerified:
		prometheus.RecordReviewDecision("approve")
		notifier.SendAsync(notify.Event{
			CompanyID: result.Company.ID,
			Event:     notify.EventDocumentApproved,
			Payload: map[string]interface{}{
				"document_id":   result.Document.ID,
				"document_type": result.Document.DocumentType,
			},
		})
	case model.DocumentRejected:
		prometheus.RecordReviewDecision("reject")
		notifier.SendAsync(notify.Event{
			CompanyID: result.Company.ID,
			Event:     notify.EventDocumentRejected,
			Payload: map[string]interface{}{
				"document_id":      result.Document.ID,
				"document_type":    result.Document.DocumentType,
				"rejection_reason": result.Document.RejectionReason,
			},
		})
	}

	if result.Activated {
		notifier.SendAsync(notify.Event{
			CompanyID: result.Company.ID,
			Event:     notify.EventCompanyActivated,
			Payload: map[string]interface{}{
				"onboarding_status": result.Company.OnboardingStatus,
			},
		})
		refreshPendingCompaniesGauge(db)
	}

	// Re-derive the stage from the committed ledger so the client-facing
	// collaborator learns about routing changes without waiting for its
	// next poll. Approving one of several pending documents moves
	// nothing, so equal stages stay silent.
	if newStage, serr := deriveCompanyStage(db, result.Company.ID); serr == nil && newStage != priorStage {
		notifier.SendAsync(notify.Event{
			CompanyID: result.Company.ID,
			Event:     notify.EventStageChanged,
			Payload: map[string]interface{}{
				"stage": string(newStage),
			},
		})
	}

	log.Info("Document reviewed",
		zap.Uint("document_id", result.Document.ID),
		zap.Uint("company_id", result.Company.ID),
		zap.String("status", result.Document.Status),
		zap.Bool("activated", result.Activated))

	return c.JSON(http.StatusOK, echo.Map{
		"document":  result.Document,
		"activated": result.Activated,
	})
}
