package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 255

// ValidateProjectName requires 1..255 characters after trimming.
func ValidateProjectName(name string) error {
	return validateTitle("project", name)
}

// ValidateDatasetName applies the project name rules to a dataset's display name.
func ValidateDatasetName(name string) error {
	return validateTitle("dataset", name)
}

func validateTitle(kind, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return fmt.Errorf("%s name is too long (max %d characters)", kind, maxNameLength)
	}
	return nil
}

// ValidateFullName allows an empty name.
func ValidateFullName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) > maxNameLength {
		return errors.New("full name is too long (max 255 characters)")
	}
	return nil
}
