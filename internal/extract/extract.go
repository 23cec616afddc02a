// Package extract scans inbound post text and entities for candidate Spotify
// URLs. It is pure string work; network resolution and classification happen
// downstream.
package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf16"

	"spotlink/internal/domain"
)

// linkPattern matches http(s) URLs on the main domain or the short-link host
// anywhere in free text, case-insensitively.
var linkPattern = regexp.MustCompile(`(?i)https?://[^\s<>"']*(?:spotify\.com|spotify\.link)/[^\s<>"']*`)

// trailingPunct is the set of characters stripped from the end of an
// extracted URL. Chat clients frequently glue these onto pasted links.
const trailingPunct = ">)].,!?"

// FromPost collects every candidate Spotify URL from a post, scanning
// text+entities and caption+caption_entities independently and merging the
// results. The returned slice is deduplicated by exact string equality, in
// discovery order.
func FromPost(p *domain.Post) []string {
	seen := make(map[string]struct{})
	var out []string
	collect(p.Text, p.Entities, seen, &out)
	collect(p.Caption, p.CaptionEntities, seen, &out)
	return out
}

func collect(text string, entities []domain.Entity, seen map[string]struct{}, out *[]string) {
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		*out = append(*out, s)
	}

	if text != "" {
		for _, m := range linkPattern.FindAllString(text, -1) {
			if s := Sanitize(m); s != "" && TargetURL(s) {
				add(s)
			}
		}
	}

	for _, e := range entities {
		switch e.Kind {
		case domain.EntityTextLink:
			// The annotation carries the literal URL, not the displayed label.
			if s := Sanitize(e.URL); s != "" && TargetURL(s) {
				add(s)
			}
		case domain.EntityURL:
			raw := sliceUTF16(text, e.Offset, e.Length)
			if s := Sanitize(raw); s != "" && TargetURL(s) {
				add(s)
			}
		}
	}
}

// Sanitize trims surrounding whitespace and strips trailing punctuation from
// an extracted URL. Stripping is idempotent: it only ever removes characters
// from the end of the string.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	for len(s) > 0 && strings.ContainsRune(trailingPunct, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return s
}

// TargetURL reports whether raw parses as a URL whose hostname is the
// short-link host or ends with the main domain suffix. Malformed URLs are
// rejected, not errors.
func TargetURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	return host == domain.ShortLinkHost || strings.HasSuffix(host, domain.MainDomain)
}

// sliceUTF16 extracts the substring at a Telegram entity's offset/length,
// which count UTF-16 code units rather than bytes or runes.
func sliceUTF16(text string, offset, length int) string {
	units := utf16.Encode([]rune(text))
	if offset < 0 || length <= 0 || offset+length > len(units) {
		return ""
	}
	return string(utf16.Decode(units[offset : offset+length]))
}
