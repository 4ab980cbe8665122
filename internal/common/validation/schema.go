package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema defines the structure for input/output schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	MinItems    *int                `json:"minItems,omitempty"`
	UniqueItems bool                `json:"uniqueItems,omitempty"`
	Items       *Property           `json:"items,omitempty"`      // For array validation
	Properties  map[string]Property `json:"properties,omitempty"` // For nested objects
	Required    []string            `json:"required,omitempty"`   // For nested objects
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Float and Int build the optional bounds of a Property.
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }

// Document renders the schema as a JSON Schema document. Nested objects allow
// additional properties; the top level follows AdditionalProperties.
func (s JSONSchema) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"type":                 s.Type,
		"additionalProperties": s.AdditionalProperties,
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.document()
		}
		doc["properties"] = props
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	return doc
}

func (p Property) document() map[string]interface{} {
	doc := map[string]interface{}{}
	if p.Type != "" {
		doc["type"] = p.Type
	}
	if p.Minimum != nil {
		doc["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		doc["maximum"] = *p.Maximum
	}
	if len(p.Enum) > 0 {
		doc["enum"] = p.Enum
	}
	if p.Pattern != nil {
		doc["pattern"] = *p.Pattern
	}
	if p.MinLength != nil {
		doc["minLength"] = *p.MinLength
	}
	if p.MaxLength != nil {
		doc["maxLength"] = *p.MaxLength
	}
	if p.MinItems != nil {
		doc["minItems"] = *p.MinItems
	}
	if p.UniqueItems {
		doc["uniqueItems"] = true
	}
	if p.Items != nil {
		doc["items"] = p.Items.document()
	}
	if len(p.Properties) > 0 {
		props := make(map[string]interface{}, len(p.Properties))
		for name, np := range p.Properties {
			props[name] = np.document()
		}
		doc["properties"] = props
	}
	if len(p.Required) > 0 {
		doc["required"] = p.Required
	}
	return doc
}

// ValidateInput validates input against schema with one ValidationError per
// violation.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	return ValidateDocument(input, schema)
}

// ValidateDocument validates any JSON-marshalable value against schema.
func ValidateDocument(document interface{}, schema JSONSchema) *ValidationResult {
	schemaLoader := gojsonschema.NewGoLoader(schema.Document())
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "SCHEMA_ERROR",
			}},
		}
	}

	errors := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errors = append(errors, ValidationError{
			Field:   fieldOf(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errors,
	}
}

// fieldOf reports required-property errors against the missing property
// rather than its parent object.
func fieldOf(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			parent := desc.Field()
			if parent == "(root)" || parent == "" {
				return prop
			}
			return parent + "." + prop
		}
	}
	return desc.Field()
}

var taskTypePattern = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)

// ValidateTaskTypeNaming checks that a task type is lower kebab-case,
// e.g. assign-menu-session.
func ValidateTaskTypeNaming(taskType string) error {
	if !taskTypePattern.MatchString(taskType) {
		return fmt.Errorf("task type must be lower kebab-case (e.g. assign-menu-session), got %q", taskType)
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
