package redact

import (
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._~+/=-]{8,}`),
	// Hugging Face user access tokens
	regexp.MustCompile(`hf_[A-Za-z0-9]{20,}`),
	// Hugging Face organization API tokens
	regexp.MustCompile(`api_org_[A-Za-z0-9]{20,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Generic API keys (long strings after common key patterns)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// Generic secrets/tokens/passwords in assignments or query strings
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']?([^"'\s&]{8,})["']?`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// Mask returns a short, non-reversible rendering of a credential suitable for
// logs: the first three and last two characters of long values, or "***".
// An empty credential stays empty.
func Mask(credential string) string {
	credential = strings.TrimSpace(credential)
	switch {
	case credential == "":
		return ""
	case len(credential) < 12:
		return "***"
	default:
		return credential[:3] + "…" + credential[len(credential)-2:]
	}
}
