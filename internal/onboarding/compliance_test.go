package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
)

func doc(docType, status string) model.Document {
	return model.Document{DocumentType: docType, Status: status}
}

func TestEvaluate_AllRequiredVerified(t *testing.T) {
	required := []string{"AADHAAR", "PAN"}
	documents := []model.Document{
		doc("AADHAAR", model.DocumentVerified),
		doc("PAN", model.DocumentVerified),
	}

	status := Evaluate(required, documents)

	assert.True(t, status.IsCompliant)
	assert.Empty(t, status.MissingDocumentTypes)
	assert.ElementsMatch(t, []string{"AADHAAR", "PAN"}, status.ApprovedDocumentTypes)
}

func TestEvaluate_MissingIsRequiredMinusApproved(t *testing.T) {
	required := []string{"AADHAAR", "PAN", "GST_CERTIFICATE"}
	documents := []model.Document{
		doc("AADHAAR", model.DocumentVerified),
	}

	status := Evaluate(required, documents)

	assert.False(t, status.IsCompliant)
	assert.ElementsMatch(t, []string{"PAN", "GST_CERTIFICATE"}, status.MissingDocumentTypes)
}

func TestEvaluate_PendingAndRejectedDoNotCount(t *testing.T) {
	required := []string{"AADHAAR", "PAN"}
	documents := []model.Document{
		doc("AADHAAR", model.DocumentUploaded),
		doc("PAN", model.DocumentRejected),
	}

	status := Evaluate(required, documents)

	assert.False(t, status.IsCompliant)
	assert.Empty(t, status.ApprovedDocumentTypes)
	assert.ElementsMatch(t, []string{"AADHAAR", "PAN"}, status.MissingDocumentTypes)
}

func TestEvaluate_RejectedPlusVerifiedOfSameTypeCountsApproved(t *testing.T) {
	// Presence of a passing document decides; an earlier rejection of the
	// same type does not subtract.
	required := []string{"PAN"}
	documents := []model.Document{
		doc("PAN", model.DocumentRejected),
		doc("PAN", model.DocumentVerified),
	}

	status := Evaluate(required, documents)

	assert.True(t, status.IsCompliant)
	assert.Equal(t, []string{"PAN"}, status.ApprovedDocumentTypes)
}

func TestEvaluate_NonRequiredTypesDoNotSatisfyRequirements(t *testing.T) {
	required := []string{"PAN"}
	documents := []model.Document{
		doc(model.DocumentTypeOther, model.DocumentVerified),
	}

	status := Evaluate(required, documents)

	assert.False(t, status.IsCompliant)
	assert.Equal(t, []string{"PAN"}, status.MissingDocumentTypes)
	assert.Equal(t, []string{"OTHER"}, status.ApprovedDocumentTypes)
}

func TestEvaluate_EmptyLedger(t *testing.T) {
	// An unknown company evaluates over an empty ledger: fully
	// non-compliant unless nothing is required.
	status := Evaluate([]string{"AADHAAR"}, nil)
	assert.False(t, status.IsCompliant)
	assert.Equal(t, []string{"AADHAAR"}, status.MissingDocumentTypes)

	status = Evaluate(nil, nil)
	assert.True(t, status.IsCompliant)
	assert.Empty(t, status.MissingDocumentTypes)
}

func TestEvaluate_Idempotent(t *testing.T) {
	required := []string{"AADHAAR", "PAN"}
	documents := []model.Document{
		doc("AADHAAR", model.DocumentVerified),
		doc("PAN", model.DocumentUploaded),
	}

	first := Evaluate(required, documents)
	second := Evaluate(required, documents)

	assert.Equal(t, first, second)
}
