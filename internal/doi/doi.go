// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doi normalizes and extracts DOI identifiers from the free-text
// identifier fields returned by citation APIs and seed files.
package doi

import (
	"regexp"
	"strings"
)

// resolverPrefix is the DOI resolver URL prefix stripped during normalization.
const resolverPrefix = "https://doi.org/"

// doiSchemeRe matches a doi: scheme marker anywhere in a string,
// case-insensitively, capturing the identifier that follows.
var doiSchemeRe = regexp.MustCompile(`(?i)doi:(\S+)`)

// Extract returns the single DOI contained in s. It strips a leading
// resolver URL, otherwise matches a doi: marker anywhere in the string.
// Strings carrying neither are returned unchanged (already-bare DOIs
// pass through, so Extract is idempotent). Case is preserved.
func Extract(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := trimResolver(s); ok {
		return rest
	}
	if m := doiSchemeRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// ExtractAll returns every DOI found in a whitespace-separated field that may
// carry several identifiers (OMIDs, PMIDs, DOIs...). Only tokens with a
// recognized scheme marker (doi: prefix or resolver URL) are accepted;
// everything else is silently dropped.
func ExtractAll(field string) []string {
	var dois []string
	for _, token := range strings.Fields(field) {
		lower := strings.ToLower(token)
		switch {
		case strings.HasPrefix(lower, "doi:"):
			dois = append(dois, token[len("doi:"):])
		case strings.HasPrefix(lower, resolverPrefix):
			dois = append(dois, token[len(resolverPrefix):])
		}
	}
	return dois
}

// trimResolver strips a leading DOI resolver URL, case-insensitive on the
// prefix only.
func trimResolver(s string) (string, bool) {
	if len(s) >= len(resolverPrefix) && strings.EqualFold(s[:len(resolverPrefix)], resolverPrefix) {
		return s[len(resolverPrefix):], true
	}
	return s, false
}
