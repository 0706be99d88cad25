package content

import (
	"regexp"
	"strings"
	"time"
)

const wordsPerMinute = 200

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases title and joins its alphanumeric runs with "-".
func GenerateSlug(title string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// ReadTime estimates minutes to read text, rounded up.
func ReadTime(text string) int {
	words := len(strings.Fields(text))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateOnly}

// FormatDate renders a CMS date as "January 2, 2006". Values that do not
// parse, such as "October 2025", are returned unchanged.
func FormatDate(date string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return date
}
