package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders is the set of HTTP header names (lowercase) whose values
// never reach the logs. The HTTP middleware's RedactHeaders reads the same
// set, so request header dumps and masq agree. X-Board-Signature is the
// webhook HMAC; a leaked signature lets anyone replay a delivery.
var SensitiveHeaders = map[string]bool{
	"authorization":     true,
	"cookie":            true,
	"x-api-key":         true,
	"x-board-signature": true,
}

// sensitiveFields are attribute keys redacted wherever they appear. "secret"
// covers webhook target secrets logged as part of a config dump.
var sensitiveFields = []string{"password", "secret", "signature", "token"}

var (
	// bearerPattern matches "Bearer <token>" values.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// signaturePattern matches a webhook signature value logged under any key.
	signaturePattern = regexp.MustCompile(`sha256=[0-9a-f]{64}`)

	// urlCredentialsPattern matches URLs with embedded user:password, which
	// webhook target URLs sometimes carry.
	urlCredentialsPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.\-]*://[^/\s:@]+:[^/\s@]+@`)
)

// newRedactAttr returns a masq-powered ReplaceAttr function for use in
// slog.HandlerOptions. Fields are redacted by name first; the regexes catch
// sensitive values logged under innocent keys.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(sensitiveFields)+4)

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts,
		masq.WithFieldPrefix("secret_"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(signaturePattern),
		masq.WithRegex(urlCredentialsPattern),
	)

	return masq.New(opts...)
}
