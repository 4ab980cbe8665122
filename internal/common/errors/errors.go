// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDashboardInputInvalid ErrorCode = "DASHBOARD_INPUT_INVALID"
	ErrCodeDashboardCacheFailed  ErrorCode = "DASHBOARD_CACHE_FAILED"

	ErrCodeMenuItemValidationFailed    ErrorCode = "MENU_ITEM_VALIDATION_FAILED"
	ErrCodeMenuItemNotFound            ErrorCode = "MENU_ITEM_NOT_FOUND"
	ErrCodeDiningSessionNotFound       ErrorCode = "DINING_SESSION_NOT_FOUND"
	ErrCodeAssignmentInFlight          ErrorCode = "ASSIGNMENT_IN_FLIGHT"
	ErrCodeAssignmentPersistenceFailed ErrorCode = "ASSIGNMENT_PERSISTENCE_FAILED"
	ErrCodeCascadeDeleteFailed         ErrorCode = "CASCADE_DELETE_FAILED"

	ErrCodeExportFailed       ErrorCode = "EXPORT_FAILED"
	ErrCodeExportUploadFailed ErrorCode = "EXPORT_UPLOAD_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeInvalidFilterFormat    ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error's metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewDashboardInputInvalidError creates a non-retryable input error for the
// dashboard workers.
func NewDashboardInputInvalidError(details string) *StandardError {
	return newError(ErrCodeDashboardInputInvalid, "Invalid dashboard request", details, false)
}

// NewDashboardCacheFailedError is logged, never thrown: cache failures fall
// back to computing the view directly.
func NewDashboardCacheFailedError(err error) *StandardError {
	return newError(ErrCodeDashboardCacheFailed, "Dashboard cache unavailable", err.Error(), false)
}

func NewMenuItemValidationFailedError(details string) *StandardError {
	return newError(ErrCodeMenuItemValidationFailed, "Menu item failed validation", details, false)
}

func NewMenuItemNotFoundError(menuItemID string) *StandardError {
	return newError(ErrCodeMenuItemNotFound, "Menu item not found", fmt.Sprintf("menuItemId: %s", menuItemID), false)
}

func NewDiningSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeDiningSessionNotFound, "Dining session not found", fmt.Sprintf("sessionId: %s", sessionID), false)
}

// NewAssignmentInFlightError is retryable: the competing action on the same
// pair will finish shortly.
func NewAssignmentInFlightError(menuItemID, sessionID string) *StandardError {
	return newError(ErrCodeAssignmentInFlight, "Another change to this menu item and session is in progress",
		fmt.Sprintf("menuItemId: %s, sessionId: %s", menuItemID, sessionID), true)
}

func NewAssignmentPersistenceFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeAssignmentPersistenceFailed, "Menu assignment could not be saved",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

// NewCascadeDeleteFailedError is retryable because the delete runs in one
// transaction and a failure rolls back every row.
func NewCascadeDeleteFailedError(menuItemID string, err error) *StandardError {
	return newError(ErrCodeCascadeDeleteFailed, "Menu item could not be deleted",
		fmt.Sprintf("menuItemId: %s, error: %s", menuItemID, err.Error()), true)
}

func NewExportFailedError(err error) *StandardError {
	return newError(ErrCodeExportFailed, "Dashboard report could not be rendered", err.Error(), false)
}

func NewExportUploadFailedError(bucket string, err error) *StandardError {
	return newError(ErrCodeExportUploadFailed, "Dashboard report upload failed",
		fmt.Sprintf("bucket: %s, error: %s", bucket, err.Error()), true)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("queryType: %s", queryType), true)
}

// NewInvalidQueryTypeError creates a non-retryable invalid query type error.
func NewInvalidQueryTypeError(queryType string) *StandardError {
	return newError(ErrCodeInvalidQueryType, "Unsupported query type", fmt.Sprintf("queryType: %s", queryType), false)
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true)
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(index string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Elasticsearch query timeout", fmt.Sprintf("index: %s", index), true)
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Elasticsearch index not found", fmt.Sprintf("indexName: %s", indexName), false)
}

// NewInvalidFilterFormatError creates a non-retryable filter format error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Invalid filter format", details, false)
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. Codes not
// listed here are thrown under their own name.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeDashboardInputInvalid:         "DASHBOARD_INPUT_INVALID",
	ErrCodeMenuItemValidationFailed:      "MENU_ITEM_VALIDATION_FAILED",
	ErrCodeMenuItemNotFound:              "MENU_ITEM_NOT_FOUND",
	ErrCodeDiningSessionNotFound:         "DINING_SESSION_NOT_FOUND",
	ErrCodeAssignmentInFlight:            "ASSIGNMENT_IN_FLIGHT",
	ErrCodeAssignmentPersistenceFailed:   "ASSIGNMENT_PERSISTENCE_FAILED",
	ErrCodeCascadeDeleteFailed:           "CASCADE_DELETE_FAILED",
	ErrCodeExportFailed:                  "EXPORT_FAILED",
	ErrCodeExportUploadFailed:            "EXPORT_UPLOAD_FAILED",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:          "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:                  "QUERY_TIMEOUT",
	ErrCodeInvalidQueryType:              "INVALID_QUERY_TYPE",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:                 "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:                 "INDEX_NOT_FOUND",
	ErrCodeInvalidFilterFormat:           "INVALID_FILTER_FORMAT",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeAssignmentPersistenceFailed,
		ErrCodeCascadeDeleteFailed,
		ErrCodeExportUploadFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodeAssignmentInFlight:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "DASHBOARD") || strings.HasPrefix(codeStr, "EXPORT"):
		return "DASHBOARD"
	case strings.Contains(codeStr, "MENU") || strings.Contains(codeStr, "SESSION") ||
		strings.Contains(codeStr, "ASSIGNMENT") || strings.Contains(codeStr, "CASCADE"):
		return "MENU"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
