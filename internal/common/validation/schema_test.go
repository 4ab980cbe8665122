package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItemSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"name":     {Type: "string", MinLength: Int(1)},
			"category": {Type: "string", MinLength: Int(1)},
			"price":    {Type: "number", Minimum: Float(0)},
			"sessionIds": {
				Type:     "array",
				MinItems: Int(1),
				Items:    &Property{Type: "string", MinLength: Int(1)},
			},
		},
		Required:             []string{"name", "category", "price", "sessionIds"},
		AdditionalProperties: true,
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name        string
		input       map[string]interface{}
		expectValid bool
		expectField string
		expectCode  string
	}{
		{
			name: "valid item",
			input: map[string]interface{}{
				"name":       "Shakshuka",
				"category":   "Mains",
				"price":      12.5,
				"sessionIds": []interface{}{"breakfast"},
			},
			expectValid: true,
		},
		{
			name: "empty session list",
			input: map[string]interface{}{
				"name":       "Shakshuka",
				"category":   "Mains",
				"price":      12.5,
				"sessionIds": []interface{}{},
			},
			expectField: "sessionIds",
			expectCode:  "ARRAY_MIN_ITEMS",
		},
		{
			name: "missing name",
			input: map[string]interface{}{
				"category":   "Mains",
				"price":      12.5,
				"sessionIds": []interface{}{"lunch"},
			},
			expectField: "name",
			expectCode:  "REQUIRED",
		},
		{
			name: "negative price",
			input: map[string]interface{}{
				"name":       "Shakshuka",
				"category":   "Mains",
				"price":      -1,
				"sessionIds": []interface{}{"lunch"},
			},
			expectField: "price",
		},
		{
			name: "wrong type",
			input: map[string]interface{}{
				"name":       "Shakshuka",
				"category":   "Mains",
				"price":      "cheap",
				"sessionIds": []interface{}{"lunch"},
			},
			expectField: "price",
			expectCode:  "INVALID_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, menuItemSchema())
			require.NotNil(t, result)

			if tt.expectValid {
				assert.True(t, result.Valid, result.GetErrorMessages())
				assert.Empty(t, result.Errors)
				return
			}

			assert.False(t, result.Valid)
			assert.True(t, result.HasErrors(tt.expectField), result.GetErrorMessages())
			if tt.expectCode != "" {
				errs := result.GetErrorsForField(tt.expectField)
				require.NotEmpty(t, errs)
				assert.Equal(t, tt.expectCode, errs[0].Code)
			}
		})
	}
}

func TestValidateInput_AdditionalProperties(t *testing.T) {
	schema := JSONSchema{
		Type:       "object",
		Properties: map[string]Property{"role": {Type: "string"}},
	}

	result := ValidateInput(map[string]interface{}{"role": "guest", "debug": true}, schema)
	assert.False(t, result.Valid)

	schema.AdditionalProperties = true
	result = ValidateInput(map[string]interface{}{"role": "guest", "debug": true}, schema)
	assert.True(t, result.Valid)
}

func TestValidateDocument_Struct(t *testing.T) {
	type payload struct {
		Name       string   `json:"name"`
		Category   string   `json:"category"`
		Price      float64  `json:"price"`
		SessionIDs []string `json:"sessionIds"`
	}

	result := ValidateDocument(payload{Name: "Pho", Category: "Soups", Price: 9, SessionIDs: []string{"dinner"}}, menuItemSchema())
	assert.True(t, result.Valid, result.GetErrorMessages())

	result = ValidateDocument(payload{Name: "Pho", Category: "Soups", Price: 9}, menuItemSchema())
	assert.False(t, result.Valid)
}

func TestValidateTaskTypeNaming(t *testing.T) {
	assert.NoError(t, ValidateTaskTypeNaming("assign-menu-session"))
	assert.NoError(t, ValidateTaskTypeNaming("export"))
	assert.Error(t, ValidateTaskTypeNaming("Assign-Menu"))
	assert.Error(t, ValidateTaskTypeNaming("menu.session.assign"))
	assert.Error(t, ValidateTaskTypeNaming("assign--menu"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ops@franchise.example.com"))
	assert.False(t, ValidateEmail("ops@"))
}
