package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name          string
		err           *StandardError
		expectCode    string
		expectRetries int
	}{
		{
			name:          "persistence failure retries",
			err:           NewAssignmentPersistenceFailedError("assign", fmt.Errorf("connection reset")),
			expectCode:    "ASSIGNMENT_PERSISTENCE_FAILED",
			expectRetries: 3,
		},
		{
			name:          "in-flight pair retries briefly",
			err:           NewAssignmentInFlightError("item-1", "lunch"),
			expectCode:    "ASSIGNMENT_IN_FLIGHT",
			expectRetries: 2,
		},
		{
			name:          "validation never retries",
			err:           NewMenuItemValidationFailedError("sessionIds: array must have at least 1 items"),
			expectCode:    "MENU_ITEM_VALIDATION_FAILED",
			expectRetries: 0,
		},
		{
			name:          "unmapped code falls back to itself",
			err:           &StandardError{Code: "SOMETHING_NEW", Message: "x"},
			expectCode:    "SOMETHING_NEW",
			expectRetries: 0,
		},
		{
			name: "non-retryable flag wins over code",
			err: &StandardError{
				Code:      ErrCodeQueryExecutionFailed,
				Message:   "query failed",
				Retryable: false,
			},
			expectCode:    "QUERY_EXECUTION_FAILED",
			expectRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectCode, bpmn.Code)
			assert.Equal(t, tt.expectRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.expectCode, vars["errorCode"])
			assert.Equal(t, tt.err.Message, vars["errorMessage"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	err := NewCascadeDeleteFailedError("item-9", fmt.Errorf("fk violation")).
		WithMetadata("menuItemId", "item-9")

	bpmn := ConvertToBPMNError(err)
	assert.Equal(t, "item-9", bpmn.ErrorVariables["menuItemId"])
	assert.True(t, bpmn.Retryable)
}

func TestNormalize(t *testing.T) {
	original := NewMenuItemNotFoundError("item-404")
	wrapped := fmt.Errorf("delete: %w", original)

	assert.Same(t, original, Normalize(wrapped))

	internal := Normalize(stderrors.New("boom"))
	require.NotNil(t, internal)
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), internal.Code)
	assert.Equal(t, "boom", internal.Details)
	assert.False(t, internal.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DASHBOARD", GetErrorCategory(ErrCodeDashboardInputInvalid))
	assert.Equal(t, "DASHBOARD", GetErrorCategory(ErrCodeExportUploadFailed))
	assert.Equal(t, "MENU", GetErrorCategory(ErrCodeDiningSessionNotFound))
	assert.Equal(t, "MENU", GetErrorCategory(ErrCodeCascadeDeleteFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "OTHER", GetErrorCategory("TIMEOUT_ERROR"))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeExportUploadFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeExportFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeDashboardCacheFailed))
}

func TestStandardError_Error(t *testing.T) {
	err := NewDiningSessionNotFoundError("midnight")
	assert.Equal(t, "StandardError[DINING_SESSION_NOT_FOUND]: Dining session not found", err.Error())
}
