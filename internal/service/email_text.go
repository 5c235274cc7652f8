package service

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy = bluemonday.StrictPolicy()

	htmlMarkerPattern = regexp.MustCompile(`(?i)<(html|body|div|p|br|table|tr|td|span|ul|li)\b`)
	blockTagPattern   = regexp.MustCompile(`(?i)</?(br|p|div|tr|li|h[1-6]|table)\b[^>]*>`)
	spaceRunPattern   = regexp.MustCompile(`[ \t\x{00A0}]+`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)

	rfpReferencePattern = regexp.MustCompile(`(?i)\[RFP-([a-f0-9-]+)\]`)
)

// EmailText turns a vendor mail body into plain text. HTML bodies are
// stripped to their text with block elements kept as line breaks.
func EmailText(body string) string {
	body = sanitizeUTF8(body)
	if htmlMarkerPattern.MatchString(body) {
		body = blockTagPattern.ReplaceAllString(body, "\n")
		body = html.UnescapeString(emailPolicy.Sanitize(body))
	}

	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRunPattern.ReplaceAllString(line, " "))
	}
	text := blankRunPattern.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// FormatRFPSubject tags an outgoing RFP mail so replies can be matched back.
func FormatRFPSubject(title, rfpID string) string {
	return fmt.Sprintf("RFP: %s [RFP-%s]", title, rfpID)
}

// ParseRFPReference returns the RFP id tagged in a reply subject.
func ParseRFPReference(subject string) (string, bool) {
	m := rfpReferencePattern.FindStringSubmatch(subject)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}
