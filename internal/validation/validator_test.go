package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	ID       string `validate:"required,custom_id"`
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Severity string `validate:"omitempty,severity"`
	Category string `validate:"omitempty,category"`
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name             string
		input            TestStruct
		expectError      bool
		expectedErrorMsg string
	}{
		{
			name: "Success: All fields are valid",
			input: TestStruct{
				ID:    "valid-id_123-",
				Name:  "John Doe",
				Email: "test@example.com",
			},
			expectError: false,
		},
		{
			name: "Failure: Invalid custom_id with spaces",
			input: TestStruct{
				ID:    "invalid id",
				Name:  "John Doe",
				Email: "test@example.com",
			},
			expectError:      true,
			expectedErrorMsg: "field 'ID' must contain only letters, numbers, hyphens, and underscores",
		},
		{
			name: "Failure: Invalid custom_id with special characters",
			input: TestStruct{
				ID:    "invalid-id-!",
				Name:  "John Doe",
				Email: "test@example.com",
			},
			expectError:      true,
			expectedErrorMsg: "field 'ID' must contain only letters, numbers, hyphens, and underscores",
		},
		{
			name: "Failure: Missing required field (Name)",
			input: TestStruct{
				ID:    "valid-id",
				Name:  "",
				Email: "test@example.com",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Name' failed on the 'required' tag",
		},
		{
			name: "Failure: Invalid email format",
			input: TestStruct{
				ID:    "valid-id",
				Name:  "Jane Doe",
				Email: "not-an-email",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Email' failed on the 'email' tag",
		},
		{
			name: "Success: Known enum values",
			input: TestStruct{
				ID:       "bug-1",
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Severity: "Critical",
				Category: "Security",
			},
			expectError: false,
		},
		{
			name: "Failure: Unknown severity",
			input: TestStruct{
				ID:       "bug-1",
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Severity: "Blocker",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Severity' has unknown severity 'Blocker'",
		},
		{
			name: "Failure: Enum values are case sensitive",
			input: TestStruct{
				ID:       "bug-1",
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Category: "ui",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Category' has unknown category 'ui'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)

			if tc.expectError {
				assert.Error(t, err)
				require.IsType(t, &ValidationError{}, err, "error should be of type ValidationError")
				verr := err.(*ValidationError)
				assert.Contains(t, verr.Error(), tc.expectedErrorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_RoleAndStatus(t *testing.T) {
	type req struct {
		Role   string `validate:"required,role"`
		Status string `validate:"required,project_status"`
	}

	assert.NoError(t, ValidateStruct(req{Role: "maintainer", Status: "Paused"}))

	err := ValidateStruct(req{Role: "guest", Status: "Archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Role' has unknown role 'guest'")
	assert.Contains(t, err.Error(), "field 'Status' has unknown project_status 'Archived'")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []string{"error 1", "error 2"},
	}
	assert.Equal(t, "error 1, error 2", err.Error())
}
