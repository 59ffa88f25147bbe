package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Course id pattern (UUID shape)
	UUIDPattern = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`

	// Title slug max length used in storage object names
	SlugMaxLength = 50
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email   *regexp.Regexp
	UUID    *regexp.Regexp
	nonWord *regexp.Regexp
}{
	Email:   regexp.MustCompile(EmailPattern),
	UUID:    regexp.MustCompile(`(?i)` + UUIDPattern),
	nonWord: regexp.MustCompile(`[^a-z0-9]+`),
}

// IsEmail reports whether value is an email-shaped address.
func IsEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsUUID reports whether value has a UUID shape, case-insensitively.
func IsUUID(value string) bool {
	return CompiledPatterns.UUID.MatchString(value)
}

// TitleSlug lowercases the title, replaces every non-alphanumeric run with
// an underscore and caps the result at SlugMaxLength. Used to build
// collision-resistant storage object names.
func TitleSlug(title string) string {
	slug := CompiledPatterns.nonWord.ReplaceAllString(strings.ToLower(title), "_")
	if len(slug) > SlugMaxLength {
		slug = slug[:SlugMaxLength]
	}
	return slug
}
