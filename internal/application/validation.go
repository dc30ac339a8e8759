package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "lineID" -> "line ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"text":    "text",
		"lineID":  "line ID",
		"line":    "line",
		"content": "content",
		"mode":    "mode",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateLine checks that a 0-based line number falls inside a document of count lines
func ValidateLine(fieldName string, line, count int) error {
	if line < 0 || line >= count {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s %d out of range (document has %d lines)", formatFieldName(fieldName), line+1, count),
		}
	}
	return nil
}
