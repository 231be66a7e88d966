package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
)

// SanitizeFilename cleans a name for use in Content-Disposition. German
// umlauts are transliterated, other non-alphanumeric chars (except - _)
// become _, consecutive underscores collapse, and the result is cut to 100 chars.
func SanitizeFilename(name string) string {
	s := umlauts.Replace(name)
	s = nonAlphanumeric.ReplaceAllString(s, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {market}_{periodRef}_{YYYY-MM-DD}.{ext}.
func BuildFilename(market, periodRef, ext string) string {
	date := time.Now().Format("2006-01-02")
	base := SanitizeFilename("Dokumentation " + market + " " + periodRef)
	return fmt.Sprintf("%s_%s.%s", base, date, ext)
}
