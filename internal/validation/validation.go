package validation

import (
	"regexp"
	"strings"
)

// CategoryPrefix is the namespace prefix the wiki API uses for category titles.
const CategoryPrefix = "Category:"

// unsafeKeyChars matches every run of characters that may not appear in a
// cache key. Runs collapse to a single separator.
var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NormalizeCategory strips the namespace prefix and surrounding whitespace
// from a category name. Case is preserved and the operation is idempotent.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	return strings.TrimPrefix(category, CategoryPrefix)
}

// APITitle returns the fully prefixed category title expected by the wiki
// API's category-membership listing.
func APITitle(category string) string {
	category = strings.TrimSpace(category)
	if strings.HasPrefix(category, CategoryPrefix) {
		return category
	}
	return CategoryPrefix + category
}

// ValidateCategory checks that a category name is non-blank after trimming.
func ValidateCategory(category string) bool {
	return strings.TrimSpace(category) != ""
}

// CacheKey derives a filesystem-safe identifier from a category name.
// The result is collision-tolerant, not collision-free.
func CacheKey(category string) string {
	key := unsafeKeyChars.ReplaceAllString(NormalizeCategory(category), "_")
	if key == "" {
		return "_"
	}
	return key
}
