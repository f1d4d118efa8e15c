package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/girishahb/aspirecoworks-client-onboard-sub001/internal/model"
)

func TestApplyDecision_ApproveUploadedDocument(t *testing.T) {
	document := model.Document{ID: 1, Status: model.DocumentUploaded}

	err := applyDecision(&document, DecisionApprove, "")

	require.NoError(t, err)
	assert.Equal(t, model.DocumentVerified, document.Status)
	assert.Empty(t, document.RejectionReason)
}

func TestApplyDecision_ApproveClearsPriorRejectionReason(t *testing.T) {
	// A REJECTED document is re-reviewable so an administrator can
	// correct a wrong decision; approval wipes the stale reason.
	document := model.Document{ID: 2, Status: model.DocumentRejected, RejectionReason: "blurry scan"}

	err := applyDecision(&document, DecisionApprove, "")

	require.NoError(t, err)
	assert.Equal(t, model.DocumentVerified, document.Status)
	assert.Empty(t, document.RejectionReason)
}

func TestApplyDecision_RejectRequiresReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		document := model.Document{ID: 3, Status: model.DocumentUploaded}

		err := applyDecision(&document, DecisionReject, reason)

		assert.ErrorIs(t, err, ErrValidation)
		// No mutation on a failed call
		assert.Equal(t, model.DocumentUploaded, document.Status)
		assert.Empty(t, document.RejectionReason)
	}
}

func TestApplyDecision_RejectStoresTrimmedReason(t *testing.T) {
	document := model.Document{ID: 4, Status: model.DocumentUploaded}

	err := applyDecision(&document, DecisionReject, "  document is expired  ")

	require.NoError(t, err)
	assert.Equal(t, model.DocumentRejected, document.Status)
	assert.Equal(t, "document is expired", document.RejectionReason)
}

func TestApplyDecision_VerifiedIsTerminal(t *testing.T) {
	document := model.Document{ID: 5, Status: model.DocumentVerified}

	err := applyDecision(&document, DecisionApprove, "")
	assert.ErrorIs(t, err, ErrConflict)

	err = applyDecision(&document, DecisionReject, "changed my mind")
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, model.DocumentVerified, document.Status)
}

func TestApplyDecision_RejectedIsReviewable(t *testing.T) {
	document := model.Document{ID: 6, Status: model.DocumentRejected, RejectionReason: "wrong file"}

	err := applyDecision(&document, DecisionReject, "still the wrong file")

	require.NoError(t, err)
	assert.Equal(t, model.DocumentRejected, document.Status)
	assert.Equal(t, "still the wrong file", document.RejectionReason)
}

func TestApplyDecision_UnknownDecision(t *testing.T) {
	document := model.Document{ID: 7, Status: model.DocumentUploaded}

	err := applyDecision(&document, Decision("ESCALATE"), "")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, model.DocumentUploaded, document.Status)
}
