package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// FallbackUserName renders a label for a user id that could not be resolved
// through the membership store
func FallbackUserName(userID int64) string {
	return fmt.Sprintf("User %d", userID)
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	// Replace invalid characters with underscore
	reg := regexp.MustCompile(`[<>:"/\\|?*]`)
	cleaned := reg.ReplaceAllString(filename, "_")

	// Remove extra spaces and trim
	cleaned = strings.TrimSpace(cleaned)
	cleaned = regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, "_")

	return cleaned
}
