package scraper

import "strings"

// NormalizeURL canonicalizes a raw input string into a fetchable URL:
// whitespace is trimmed, exactly one trailing slash is stripped, and
// "https://" is prepended when no scheme prefix is present.
//
// The prefix check is a literal, case-sensitive string match; domain syntax
// is not validated — malformed input surfaces at the fetch step instead.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimSuffix(u, "/")
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}
