package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
)

var today = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestDeriveStage_RenewalExpiryBeatsCompliance(t *testing.T) {
	// A lapsed renewal is a hard gate: an otherwise fully compliant
	// company is still reported as expired.
	yesterday := today.AddDate(0, 0, -1)
	documents := []model.Document{doc("PAN", model.DocumentVerified)}
	compliance := Evaluate([]string{"PAN"}, documents)
	assert.True(t, compliance.IsCompliant)

	stage := DeriveStage(compliance, datePtr(yesterday), documents, today)

	assert.Equal(t, StageRenewalExpired, stage)
}

func TestDeriveStage_RenewalComparedAtDayGranularity(t *testing.T) {
	// A renewal date earlier today is not expired; only a strictly
	// earlier calendar day is.
	earlierToday := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)
	documents := []model.Document{doc("PAN", model.DocumentVerified)}
	compliance := Evaluate([]string{"PAN"}, documents)

	stage := DeriveStage(compliance, datePtr(earlierToday), documents, today)

	assert.Equal(t, StageCompliant, stage)
}

func TestDeriveStage_CompliantWithoutRenewalDate(t *testing.T) {
	documents := []model.Document{
		doc("AADHAAR", model.DocumentVerified),
		doc("PAN", model.DocumentVerified),
	}
	compliance := Evaluate([]string{"AADHAAR", "PAN"}, documents)

	stage := DeriveStage(compliance, nil, documents, today)

	assert.Equal(t, StageCompliant, stage)
}

func TestDeriveStage_PendingApprovalWhenEveryGapHasUpload(t *testing.T) {
	documents := []model.Document{
		doc("AADHAAR", model.DocumentVerified),
		doc("PAN", model.DocumentUploaded),
	}
	compliance := Evaluate([]string{"AADHAAR", "PAN"}, documents)

	stage := DeriveStage(compliance, nil, documents, today)

	assert.Equal(t, StagePendingApproval, stage)
}

func TestDeriveStage_RejectedGapWithoutReuploadIsMissing(t *testing.T) {
	// Same gap, but the PAN submission was rejected and nothing replaced
	// it: the client should see the upload call-to-action, not a waiting
	// screen.
	documents := []model.Document{
		doc("AADHAAR", model.DocumentVerified),
		doc("PAN", model.DocumentRejected),
	}
	compliance := Evaluate([]string{"AADHAAR", "PAN"}, documents)

	stage := DeriveStage(compliance, nil, documents, today)

	assert.Equal(t, StageMissingDocuments, stage)
}

func TestDeriveStage_TypeWithNoDocumentsAtAllIsMissing(t *testing.T) {
	documents := []model.Document{
		doc("AADHAAR", model.DocumentUploaded),
	}
	compliance := Evaluate([]string{"AADHAAR", "PAN"}, documents)

	stage := DeriveStage(compliance, nil, documents, today)

	assert.Equal(t, StageMissingDocuments, stage)
}

func TestDeriveStage_RejectedThenReuploadedGapIsPending(t *testing.T) {
	// Re-upload after rejection creates a new record; the retained
	// rejected record does not block the pending classification.
	documents := []model.Document{
		doc("PAN", model.DocumentRejected),
		doc("PAN", model.DocumentUploaded),
	}
	compliance := Evaluate([]string{"PAN"}, documents)

	stage := DeriveStage(compliance, nil, documents, today)

	assert.Equal(t, StagePendingApproval, stage)
}

func TestDeriveStage_SameCalendarDayAcrossZonesIsNotExpired(t *testing.T) {
	// Renewal dates are civil dates stored as UTC midnight. A server
	// clock in another zone on the same calendar day must not tip the
	// comparison into expiry.
	renewal := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	nowEastern := time.Date(2025, time.March, 10, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	documents := []model.Document{doc("PAN", model.DocumentVerified)}
	compliance := Evaluate([]string{"PAN"}, documents)

	stage := DeriveStage(compliance, datePtr(renewal), documents, nowEastern)

	assert.Equal(t, StageCompliant, stage)
}

func TestDeriveStage_PriorCalendarDayAcrossZonesIsExpired(t *testing.T) {
	renewal := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	nowEastern := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	documents := []model.Document{doc("PAN", model.DocumentVerified)}
	compliance := Evaluate([]string{"PAN"}, documents)

	stage := DeriveStage(compliance, datePtr(renewal), documents, nowEastern)

	assert.Equal(t, StageRenewalExpired, stage)
}

func TestDeriveStage_UnchangedWhenApprovingOneOfTwoPending(t *testing.T) {
	// Approving one of two pending documents leaves the company waiting
	// on the other; the derived stage does not move.
	before := []model.Document{
		doc("AADHAAR", model.DocumentUploaded),
		doc("PAN", model.DocumentUploaded),
	}
	after := []model.Document{
		doc("AADHAAR", model.DocumentVerified),
		doc("PAN", model.DocumentUploaded),
	}

	stageBefore := DeriveStage(Evaluate([]string{"AADHAAR", "PAN"}, before), nil, before, today)
	stageAfter := DeriveStage(Evaluate([]string{"AADHAAR", "PAN"}, after), nil, after, today)

	assert.Equal(t, StagePendingApproval, stageBefore)
	assert.Equal(t, stageBefore, stageAfter)
}

func TestDeriveStage_FutureRenewalDateIsNotExpired(t *testing.T) {
	tomorrow := today.AddDate(0, 0, 1)
	documents := []model.Document{doc("PAN", model.DocumentUploaded)}
	compliance := Evaluate([]string{"PAN"}, documents)

	stage := DeriveStage(compliance, datePtr(tomorrow), documents, today)

	assert.Equal(t, StagePendingApproval, stage)
}
