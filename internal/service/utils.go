package service

import "strings"

// sanitizeUTF8 drops invalid UTF-8 sequences. Vendor mail often arrives in
// mixed encodings and both the prompt and the JSONB columns need clean text.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
