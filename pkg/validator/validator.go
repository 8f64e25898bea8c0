package validator

import (
	"fmt"
	"strings"

	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/truncate"
)

const (
	// Keys used for issues that are not tied to a document entry.
	KeyChars      = "chars"
	KeyWords      = "words"
	KeyLineBreaks = "line-breaks"
	KeyThresholds = "thresholds"
	KeyMoreLabel  = "more-label"
	KeyLessLabel  = "less-label"

	warnTextSize = 64 * 1024
)

const (
	LevelError   = "error"
	LevelWarning = "warning"
)

// ValidationIssue represents a single validation issue
type ValidationIssue struct {
	Key     string `json:"key"`
	Message string `json:"message"`
	Level   string `json:"level"`
}

// ValidationResult contains the results of validation
type ValidationResult struct {
	Issues []ValidationIssue `json:"issues"`
	Valid  bool              `json:"valid"`
}

// HasErrors returns true if there are any error-level issues
func (v *ValidationResult) HasErrors() bool {
	return v.count(LevelError) > 0
}

// HasWarnings returns true if there are any warning-level issues
func (v *ValidationResult) HasWarnings() bool {
	return v.count(LevelWarning) > 0
}

// Counts returns the number of errors and warnings.
func (v *ValidationResult) Counts() (errors, warnings int) {
	return v.count(LevelError), v.count(LevelWarning)
}

func (v *ValidationResult) count(level string) int {
	n := 0
	for _, issue := range v.Issues {
		if issue.Level == level {
			n++
		}
	}
	return n
}

// Labels are the toggle labels to validate. An empty label means the
// default is used and is not reported.
type Labels struct {
	More string
	Less string
}

// Validator checks truncation settings and input documents.
type Validator struct {
	strict bool // If true, treat warnings as errors
}

// NewValidator creates a new validator
func NewValidator(strict bool) *Validator {
	return &Validator{strict: strict}
}

// Validate checks thresholds and labels. Entries are optional; when given,
// each is checked against the thresholds.
func (v *Validator) Validate(th truncate.Thresholds, labels Labels, entries []*models.Entry) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Issues: []ValidationIssue{},
	}

	v.validateThresholds(th, result)
	v.validateLabel(KeyMoreLabel, labels.More, result)
	v.validateLabel(KeyLessLabel, labels.Less, result)

	seenKeys := make(map[string]bool)
	for _, e := range entries {
		if e.Key != "" {
			if seenKeys[e.Key] {
				result.addError(e.Key, "duplicate key found")
				continue
			}
			seenKeys[e.Key] = true
		}
		v.validateEntry(e, th, result)
	}

	result.Valid = !result.HasErrors()
	if v.strict && result.HasWarnings() {
		result.Valid = false
	}

	return result
}

func (v *Validator) validateThresholds(th truncate.Thresholds, result *ValidationResult) {
	for _, c := range []struct {
		key   string
		value int
	}{
		{KeyChars, th.Chars},
		{KeyWords, th.Words},
		{KeyLineBreaks, th.LineBreaks},
	} {
		if c.value < 0 {
			result.addWarning(c.key, fmt.Sprintf("negative value %d is treated as disabled", c.value))
		}
	}

	n := th.Normalize()
	if n.IsZero() {
		result.addWarning(KeyThresholds, "no threshold is set, text is never truncated")
		return
	}
	if n.Chars > 0 && n.Words > 0 {
		result.addWarning(KeyWords, "words is ignored when chars is set")
	}
}

func (v *Validator) validateLabel(key, label string, result *ValidationResult) {
	if label == "" {
		return
	}
	if strings.TrimSpace(label) == "" {
		result.addError(key, "label cannot be blank")
		return
	}
	if strings.Contains(label, "\n") {
		result.addWarning(key, "label contains a line break")
	}
}

func (v *Validator) validateEntry(e *models.Entry, th truncate.Thresholds, result *ValidationResult) {
	key := e.Key
	if key == "" {
		key = "<text>"
	}

	if e.Text == "" {
		result.addWarning(key, "text is empty")
		return
	}

	if size := len(e.Text); size > warnTextSize {
		result.addWarning(key, fmt.Sprintf("text size (%d bytes) exceeds recommended size of %d bytes", size, warnTextSize))
	}

	// a cut inside a surrogate pair corrupts both halves
	n := th.Normalize()
	if n.Chars == 0 {
		return
	}
	visible := truncate.Truncate(e.Text, truncate.Thresholds{LineBreaks: n.LineBreaks}).Visible
	if splitsSurrogate(visible, n.Chars) {
		result.addWarning(key, fmt.Sprintf("chars limit %d splits a character outside the basic multilingual plane", n.Chars))
	}
}

func splitsSurrogate(s string, limit int) bool {
	units := 0
	for _, r := range s {
		w := truncate.Length(string(r))
		if units < limit && units+w > limit {
			return true
		}
		units += w
		if units >= limit {
			return false
		}
	}
	return false
}

// addError adds an error-level issue
func (v *ValidationResult) addError(key, message string) {
	v.Issues = append(v.Issues, ValidationIssue{
		Level:   LevelError,
		Key:     key,
		Message: message,
	})
}

// addWarning adds a warning-level issue
func (v *ValidationResult) addWarning(key, message string) {
	v.Issues = append(v.Issues, ValidationIssue{
		Level:   LevelWarning,
		Key:     key,
		Message: message,
	})
}
