package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
)

// Decision is an administrator's verdict on a single document.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// ReviewResult is the outcome of a review call: the updated document, the
// owning company after the activation check, and whether this review
// tipped the company into the active state.
type ReviewResult struct {
	Document  model.Document
	Company   model.Company
	Activated bool
}

// applyDecision validates and applies a review decision to the document in
// memory. UPLOADED and REJECTED are the reviewable source states; VERIFIED
// is terminal for a record. On error the document is left untouched.
func applyDecision(doc *model.Document, decision Decision, reason string) error {
	if decision != DecisionApprove && decision != DecisionReject {
		return fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}

	if doc.Status == model.DocumentVerified {
		return fmt.Errorf("%w: document %d is already verified", ErrConflict, doc.ID)
	}
	if doc.Status != model.DocumentUploaded && doc.Status != model.DocumentRejected {
		return fmt.Errorf("%w: document %d is not reviewable in status %s", ErrConflict, doc.ID, doc.Status)
	}

	switch decision {
	case DecisionApprove:
		doc.Status = model.DocumentVerified
		doc.RejectionReason = ""
	case DecisionReject:
		trimmed := strings.TrimSpace(reason)
		if trimmed == "" {
			return fmt.Errorf("%w: rejection reason is required", ErrValidation)
		}
		doc.Status = model.DocumentRejected
		doc.RejectionReason = trimmed
	}

	return nil
}

// Review applies an administrator decision to a document and runs the
// activation check for the owning company inside the same transaction, so
// the compliance recomputation and the status write cannot interleave with
// a concurrent reviewer's. A failed call leaves no partial state.
func Review(db *gorm.DB, documentID uint, decision Decision, reason string) (*ReviewResult, error) {
	var result ReviewResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var doc model.Document
		if res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&doc, documentID); res.Error != nil {
			if errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: document %d", ErrNotFound, documentID)
			}
			return res.Error
		}

		if err := applyDecision(&doc, decision, reason); err != nil {
			return err
		}

		if res := tx.Save(&doc); res.Error != nil {
			return res.Error
		}

		activated, company, err := TryActivate(tx, doc.CompanyID)
		if err != nil {
			return err
		}

		result = ReviewResult{
			Document:  doc,
			Company:   company,
			Activated: activated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
