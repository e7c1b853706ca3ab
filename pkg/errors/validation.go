package errors

import (
	"regexp"
	"unicode"
)

// ValidateID validates a task, group, or leave identifier for safety and
// correctness. Identifiers end up as map keys, JSON values, and parts of
// storage keys, so the rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No whitespace
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "identifier too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "identifier cannot contain whitespace")
		}
	}

	return nil
}

// roomIDRegex matches room identifiers issued by the room store.
var roomIDRegex = regexp.MustCompile(`^[a-zA-Z0-9-]{4,64}$`)

// ValidateRoomID validates a game room identifier. Room IDs become part
// of storage keys, so anything outside the issued alphabet is rejected.
func ValidateRoomID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "room id cannot be empty")
	}

	if !roomIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid room id: %q", id)
	}

	return nil
}

// ValidateVersionLabel validates a snapshot version label.
//
// Validation rules:
//   - Label cannot be empty
//   - Maximum length of 80 characters
//   - No control characters
func ValidateVersionLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "version label cannot be empty")
	}

	const maxLabelLength = 80
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "version label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "version label contains invalid characters")
		}
	}

	return nil
}
