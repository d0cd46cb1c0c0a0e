package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "alice@example.com"},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "alice.example.com", wantErr: true},
		{name: "display name form", email: "Alice <alice@example.com>", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@x.io", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct-horse"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 73)))
}

func TestValidateProjectName(t *testing.T) {
	assert.NoError(t, ValidateProjectName("Sales"))
	assert.NoError(t, ValidateProjectName(strings.Repeat("я", 255)))
	assert.Error(t, ValidateProjectName("   "))
	assert.Error(t, ValidateProjectName(strings.Repeat("a", 256)))
}

func TestValidateDatasetName(t *testing.T) {
	assert.NoError(t, ValidateDatasetName(" Q1 sales "))
	assert.NoError(t, ValidateDatasetName(strings.Repeat("d", 255)))
	assert.EqualError(t, ValidateDatasetName(""), "dataset name is required")
	assert.EqualError(t, ValidateDatasetName(strings.Repeat("d", 256)), "dataset name is too long (max 255 characters)")
}

func TestValidateFullName(t *testing.T) {
	assert.NoError(t, ValidateFullName(""))
	assert.Error(t, ValidateFullName(strings.Repeat("a", 256)))
}
