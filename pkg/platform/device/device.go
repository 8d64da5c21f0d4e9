// Package device reduces a User-Agent header to a short display summary.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Describe returns e.g. "Chrome on Windows 10" or "Safari on iPhone OS (mobile)".
// Empty input yields "".
func Describe(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return ""
	}

	ua := useragent.New(userAgent)
	if ua.Bot() {
		return "bot"
	}

	browser, _ := ua.Browser()
	system := ua.OS()

	var b strings.Builder
	switch {
	case browser != "" && system != "":
		b.WriteString(browser + " on " + system)
	case browser != "":
		b.WriteString(browser)
	case system != "":
		b.WriteString(system)
	default:
		return "unknown"
	}
	if ua.Mobile() {
		b.WriteString(" (mobile)")
	}
	return b.String()
}
