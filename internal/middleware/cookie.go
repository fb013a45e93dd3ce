package middleware

import (
	"net/url"
	"strings"
)

// ParseCookies decodes a raw Cookie header into a key/value map.  Pairs are
// split on ';', each pair on the first '=' only (cookie values may contain
// '=').  Keys are trimmed, values percent-decoded; a value that fails to
// decode is kept raw so one malformed pair never corrupts its siblings.
// Pairs without '=' or with an empty key are skipped.
func ParseCookies(header string) map[string]string {
	cookies := map[string]string{}
	if header == "" {
		return cookies
	}
	for _, pair := range strings.Split(header, ";") {
		idx := strings.Index(pair, "=")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(pair[:idx])
		if key == "" {
			continue
		}
		raw := strings.TrimSpace(pair[idx+1:])
		if decoded, err := url.PathUnescape(raw); err == nil {
			cookies[key] = decoded
		} else {
			cookies[key] = raw
		}
	}
	return cookies
}
