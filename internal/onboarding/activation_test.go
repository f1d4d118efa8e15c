package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
)

func TestApprovingLastMissingTypeActivates(t *testing.T) {
	// Required = {AADHAAR, PAN}; AADHAAR already verified, PAN awaiting
	// review. Approving PAN closes the last gap and the pending company
	// activates.
	required := []string{"AADHAAR", "PAN"}
	aadhaar := model.Document{ID: 1, DocumentType: "AADHAAR", Status: model.DocumentVerified}
	pan := model.Document{ID: 2, DocumentType: "PAN", Status: model.DocumentUploaded}

	before := Evaluate(required, []model.Document{aadhaar, pan})
	assert.False(t, before.IsCompliant)
	assert.False(t, shouldActivate(model.OnboardingPending, before))

	require.NoError(t, applyDecision(&pan, DecisionApprove, ""))
	assert.Equal(t, model.DocumentVerified, pan.Status)

	after := Evaluate(required, []model.Document{aadhaar, pan})
	assert.True(t, after.IsCompliant)
	assert.True(t, shouldActivate(model.OnboardingPending, after))
}

func TestShouldActivate_IdempotentOnActiveCompany(t *testing.T) {
	// Re-running the trigger on an already-active, still-compliant
	// company is a no-op.
	compliant := Evaluate([]string{"PAN"}, []model.Document{
		{DocumentType: "PAN", Status: model.DocumentVerified},
	})
	require.True(t, compliant.IsCompliant)

	assert.True(t, shouldActivate(model.OnboardingPending, compliant))
	assert.False(t, shouldActivate(model.OnboardingCompleted, compliant))
}

func TestShouldActivate_NeverRegressesOnLostCompliance(t *testing.T) {
	// A requirement added after activation makes the evaluation
	// non-compliant again, but only an administrator moves an active
	// company.
	nonCompliant := Evaluate([]string{"PAN", "GST_CERTIFICATE"}, []model.Document{
		{DocumentType: "PAN", Status: model.DocumentVerified},
	})
	require.False(t, nonCompliant.IsCompliant)

	assert.False(t, shouldActivate(model.OnboardingCompleted, nonCompliant))
	assert.False(t, shouldActivate(model.OnboardingPending, nonCompliant))
	assert.False(t, shouldActivate(model.OnboardingRejected, nonCompliant))
}

func TestRejectionDoesNotActivate(t *testing.T) {
	required := []string{"PAN"}
	pan := model.Document{ID: 1, DocumentType: "PAN", Status: model.DocumentUploaded}

	require.NoError(t, applyDecision(&pan, DecisionReject, "unreadable scan"))

	after := Evaluate(required, []model.Document{pan})
	assert.False(t, after.IsCompliant)
	assert.False(t, shouldActivate(model.OnboardingPending, after))
}
