package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds entity names accepted from scene files.
const maxLabelLength = 256

// ValidateLabel validates an entity display name read from untrusted input.
//
// Hierarchy output is line oriented, so a label containing a newline or any
// other control character would split or corrupt a rendered line. The rules:
//   - No control characters (including \n, \r, \t and NUL)
//   - Maximum length of 256 bytes
//
// An empty label is valid: it is treated as "no name" by the scene loader.
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidEntity, "name too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEntity, "name %q contains control characters", label)
		}
	}
	return nil
}

// ValidateComponentName validates a component type name declared in a scene.
// Names must be non-empty, free of whitespace and control characters, and
// must not end with a path separator or dot (the short name would be empty).
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidEntity, "component name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidEntity, "component name %q contains invalid characters", name)
		}
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") || strings.HasSuffix(name, "::") {
		return New(ErrCodeInvalidEntity, "component name %q has no type name", name)
	}
	return nil
}

// ValidatePath validates an output file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
