package onboarding

import (
	"time"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
)

// Stage is the client-facing derived onboarding state used for routing and
// access gating. It is a pure function of the compliance status, the
// renewal date and the ledger, and is never persisted.
type Stage string

const (
	StageRenewalExpired   Stage = "renewal_expired"
	StageCompliant        Stage = "compliant"
	StagePendingApproval  Stage = "pending_approval"
	StageMissingDocuments Stage = "missing_documents"
)

// DeriveStage evaluates the stage rules in fixed priority order; the first
// matching rule wins and the order must not change:
//
//  1. renewal_expired when the renewal date's calendar day is strictly
//     before today's, regardless of compliance
//  2. compliant when no required type is missing
//  3. pending_approval when every missing type has at least one document
//     awaiting review
//  4. missing_documents otherwise
//
// The current date is injected so callers and tests control the clock.
func DeriveStage(compliance ComplianceStatus, renewalDate *time.Time, documents []model.Document, today time.Time) Stage {
	if renewalDate != nil && calendarDayBefore(*renewalDate, today) {
		return StageRenewalExpired
	}

	if compliance.IsCompliant {
		return StageCompliant
	}

	// Every gap must have a pending submission. A type with no documents
	// at all fails this check.
	pending := make(map[string]bool)
	for _, doc := range documents {
		if doc.Status == model.DocumentUploaded {
			pending[doc.DocumentType] = true
		}
	}
	allPending := true
	for _, missing := range compliance.MissingDocumentTypes {
		if !pending[missing] {
			allPending = false
			break
		}
	}
	if allPending && len(compliance.MissingDocumentTypes) > 0 {
		return StagePendingApproval
	}

	return StageMissingDocuments
}

// calendarDayBefore reports whether a's calendar day is strictly before
// b's. Each value is read in its own location: a renewal date is a civil
// date (stored as UTC midnight) and must not shift to the previous day
// when the server clock runs in a different zone.
func calendarDayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
