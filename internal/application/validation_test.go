package application

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "text",
			value:     "a = 2",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "text",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "text",
			value:     " \n\t ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateLine(t *testing.T) {
	tests := []struct {
		name    string
		line    int
		count   int
		wantErr bool
	}{
		{name: "first line", line: 0, count: 3, wantErr: false},
		{name: "last line", line: 2, count: 3, wantErr: false},
		{name: "past the end", line: 3, count: 3, wantErr: true},
		{name: "negative", line: -1, count: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLine("line", tt.line, tt.count)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "out of range") {
				t.Errorf("expected out of range message, got %q", err.Error())
			}
		})
	}
}

func TestFormatFieldName(t *testing.T) {
	if got := formatFieldName("lineID"); got != "line ID" {
		t.Errorf("expected %q, got %q", "line ID", got)
	}
	if got := formatFieldName("unknownField"); got != "unknownField" {
		t.Errorf("expected field name unchanged, got %q", got)
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		ref    string
		wantID LineID
		wantOK bool
	}{
		{ref: "_calc3", wantID: "calc3", wantOK: true},
		{ref: "_calc12", wantID: "calc12", wantOK: true},
		{ref: "calc3", wantOK: false},
		{ref: "_calc3 + 1", wantOK: false},
		{ref: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			id, ok := ParseReference(tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("ParseReference(%q) ok = %v, want %v", tt.ref, ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("ParseReference(%q) = %q, want %q", tt.ref, id, tt.wantID)
			}
		})
	}
}
