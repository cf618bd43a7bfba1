package validator

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IC number validation (Malaysian NRIC): 12 digits, optionally dashed as
// YYMMDD-PB-XXXX.
var icRegex = regexp.MustCompile(`^\d{6}-?\d{2}-?\d{4}$`)

func IsValidICNo(ic string) bool {
	return icRegex.MatchString(ic)
}
