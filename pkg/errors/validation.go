package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds talent names and descriptions carried through layout.
const maxNameLength = 256

// ValidateIconName validates an icon file name referenced by a talent.
// Icons are resolved by the drawing widget relative to a fixed icon directory,
// so the name must be a plain basename.
//
// Validation rules:
//   - Empty names are allowed (talent without icon)
//   - No path separators or traversal sequences
//   - No control characters or null bytes
//   - No hidden files
func ValidateIconName(name string) error {
	if name == "" {
		return nil
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "icon name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "icon name cannot contain path separators: %q", name)
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "icon name cannot contain path traversal sequences: %q", name)
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "icon name cannot be a hidden file: %q", name)
	}

	return nil
}

// ValidateTalentName validates a talent display name.
// Names are opaque to layout but end up in tooltips and DOT labels.
func ValidateTalentName(name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "talent name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if r == '\x00' || (unicode.IsControl(r) && r != '\n' && r != '\t') {
			return New(ErrCodeInvalidInput, "talent name contains invalid control characters")
		}
	}

	return nil
}
