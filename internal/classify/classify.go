// Package classify parses canonical Spotify URLs into (kind, id) pairs.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"spotlink/internal/domain"
)

// localePattern matches internationalized path prefixes such as "intl-pt" or
// "intl-pt-BR".
var localePattern = regexp.MustCompile(`^intl-[a-z]{2,3}(?:-[A-Za-z]{2,4})?$`)

const embedSegment = "embed"

// Classify parses a canonical URL into a resolved entity. It returns nil when
// the URL is not on the main domain or its path does not describe a
// recognized resource.
func Classify(raw string) *domain.ResolvedEntity {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, domain.MainDomain) {
		return nil
	}

	segs := splitPath(u.Path)
	if len(segs) < 2 {
		return nil
	}
	if localePattern.MatchString(segs[0]) && len(segs) >= 3 {
		segs = segs[1:]
	}
	if segs[0] == embedSegment {
		segs = segs[1:]
	}
	if len(segs) < 2 {
		return nil
	}

	// Legacy user-owned playlist path: user/<owner>/playlist/<id>.
	if segs[0] == "user" && len(segs) >= 4 && segs[2] == string(domain.KindPlaylist) {
		return &domain.ResolvedEntity{Kind: domain.KindPlaylist, ID: trimQuery(segs[3])}
	}

	if !domain.ValidKind(segs[0]) {
		return nil
	}
	id := trimQuery(segs[1])
	if id == "" {
		return nil
	}
	return &domain.ResolvedEntity{Kind: domain.Kind(segs[0]), ID: id}
}

func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// trimQuery cuts the identifier at a query-string marker when the segment
// still carries one.
func trimQuery(seg string) string {
	if i := strings.IndexByte(seg, '?'); i >= 0 {
		return seg[:i]
	}
	return seg
}
