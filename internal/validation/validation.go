// Package validation provides input validation for vote submissions.
// All checks are pure; error messages are safe to show to users.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinScore           = 1
	MaxScore           = 5
	MaxGroupNameLength = 50

	deviceIDPrefix = "device-"
)

var (
	deviceUUIDPattern = regexp.MustCompile(`^device-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	deviceWordPattern = regexp.MustCompile(`^device-\w+$`)
)

// IsValidScore reports whether score is a finite integer in [1,5].
// NaN, infinities and fractional values are rejected.
func IsValidScore(score float64) bool {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return false
	}
	if score != math.Trunc(score) {
		return false
	}
	return score >= MinScore && score <= MaxScore
}

// IsValidGroupName reports whether name trims to 1..50 characters.
func IsValidGroupName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	return utf8.RuneCountInString(trimmed) <= MaxGroupNameLength
}

// IsValidDeviceID reports whether id is "device-" followed by a canonical
// UUID, or (permissive form, used by tests and manual tooling) "device-"
// followed by any non-empty word-character sequence.
func IsValidDeviceID(id string) bool {
	if id == "" {
		return false
	}
	return deviceUUIDPattern.MatchString(strings.ToLower(id)) || deviceWordPattern.MatchString(id)
}

// SanitizeString HTML-escapes & < > " ' and /. The ampersand is escaped
// first so already-escaped input is not double-escaped further down the
// replacement chain.
func SanitizeString(input string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)
	return r.Replace(input)
}

// SanitizeValue stringifies arbitrary input before escaping. Nil yields "".
func SanitizeValue(input any) string {
	switch v := input.(type) {
	case nil:
		return ""
	case string:
		return SanitizeString(v)
	case int:
		return SanitizeString(strconv.Itoa(v))
	case float64:
		return SanitizeString(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return ""
	}
}

// Result carries the outcome of a combined validation pass.
type Result struct {
	Valid  bool
	Errors []string
}

// ValidateVoteInput checks a vote submission and accumulates every
// applicable error message, in a fixed order, rather than failing fast.
func ValidateVoteInput(groupID string, score float64, deviceID string) Result {
	var errs []string

	if strings.TrimSpace(groupID) == "" {
		errs = append(errs, "please select a group")
	}
	if !IsValidScore(score) {
		errs = append(errs, "score must be between 1 and 5")
	}
	if !IsValidDeviceID(deviceID) {
		errs = append(errs, "invalid device id")
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
