// Package redact strips sensitive information from strings before they are
// logged. It prevents accidental leakage of credentials, connection strings,
// tokens and file paths through error messages.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	PathPlaceholder       = "[REDACTED_PATH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

// Precompiled patterns for the things this service can actually leak:
// database URLs, bcrypt hashes, JWTs, emails and upload paths.
var (
	dbConnRegex = regexp.MustCompile(`(?i)(postgres(ql)?|mysql|mongodb)://[^@\s]+@`)
	bcryptRegex = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{10,}`)
	jwtRegex    = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	passwdRegex = regexp.MustCompile(`(?i)(password|passwd|pwd|secret)([=:\s]['"]?)[^'"&\s]{3,}`)
	emailRegex  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	pathRegex   = regexp.MustCompile(`(/[\w.-]+){2,}`)

	placeholders = []struct {
		re          *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, CredentialPlaceholder},
		{bcryptRegex, CredentialPlaceholder},
		{jwtRegex, TokenPlaceholder},
		{passwdRegex, CredentialPlaceholder},
		{emailRegex, EmailPlaceholder},
		{pathRegex, PathPlaceholder},
	}
)

// String redacts all recognized sensitive patterns from s.
func String(s string) string {
	for _, p := range placeholders {
		s = p.re.ReplaceAllString(s, p.placeholder)
	}
	return s
}

// Error redacts the message of err. A nil error yields an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
