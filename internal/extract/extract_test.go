package extract

import (
	"reflect"
	"testing"

	"spotlink/internal/domain"
)

func TestSanitize_TrailingPunctuation(t *testing.T) {
	cases := map[string]string{
		"https://open.spotify.com/track/abc":     "https://open.spotify.com/track/abc",
		"https://open.spotify.com/track/abc).":   "https://open.spotify.com/track/abc",
		"https://open.spotify.com/track/abc!?":   "https://open.spotify.com/track/abc",
		"  https://open.spotify.com/track/abc, ": "https://open.spotify.com/track/abc",
		"https://spotify.link/xyz>":              "https://spotify.link/xyz",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	in := "https://open.spotify.com/track/abc)]!."
	once := Sanitize(in)
	twice := Sanitize(once)
	if once != twice {
		t.Errorf("sanitize not idempotent: %q vs %q", once, twice)
	}
}

func TestSanitize_AllPunctuation(t *testing.T) {
	if got := Sanitize(">)].,!?"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestTargetURL(t *testing.T) {
	valid := []string{
		"https://open.spotify.com/track/abc",
		"https://OPEN.SPOTIFY.COM/album/x",
		"http://spotify.com/artist/y",
		"https://spotify.link/abcd",
	}
	for _, u := range valid {
		if !TargetURL(u) {
			t.Errorf("expected %q to match target domains", u)
		}
	}
	invalid := []string{
		"https://example.com/track/abc",
		"https://spotify.link.evil.com/abcd",
		"not a url",
		"",
	}
	for _, u := range invalid {
		if TargetURL(u) {
			t.Errorf("expected %q to be rejected", u)
		}
	}
}

func TestFromPost_TextScan(t *testing.T) {
	p := &domain.Post{
		Text: "check this out https://open.spotify.com/track/abc123 and https://spotify.link/xy12.",
	}
	got := FromPost(p)
	want := []string{
		"https://open.spotify.com/track/abc123",
		"https://spotify.link/xy12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromPost = %v, want %v", got, want)
	}
}

func TestFromPost_DeduplicatesExactMatches(t *testing.T) {
	url := "https://open.spotify.com/track/abc123"
	p := &domain.Post{
		Text: url + " again " + url,
		Entities: []domain.Entity{
			{Kind: domain.EntityTextLink, URL: url},
		},
	}
	got := FromPost(p)
	if len(got) != 1 || got[0] != url {
		t.Errorf("expected single deduplicated link, got %v", got)
	}
}

func TestFromPost_DistinctLinksAllKept(t *testing.T) {
	p := &domain.Post{
		Text: "https://open.spotify.com/track/a https://open.spotify.com/track/b https://open.spotify.com/album/c",
	}
	if got := FromPost(p); len(got) != 3 {
		t.Errorf("expected 3 links, got %v", got)
	}
}

func TestFromPost_TextLinkEntityUsesURLNotLabel(t *testing.T) {
	p := &domain.Post{
		Text: "this song",
		Entities: []domain.Entity{
			{Kind: domain.EntityTextLink, Offset: 0, Length: 9, URL: "https://open.spotify.com/track/abc123"},
		},
	}
	got := FromPost(p)
	if len(got) != 1 || got[0] != "https://open.spotify.com/track/abc123" {
		t.Errorf("expected the entity URL, got %v", got)
	}
}

func TestFromPost_TextLinkEntitySanitized(t *testing.T) {
	p := &domain.Post{
		Text: "this song",
		Entities: []domain.Entity{
			{Kind: domain.EntityTextLink, Offset: 0, Length: 9, URL: "https://open.spotify.com/track/abc123)."},
		},
	}
	got := FromPost(p)
	if len(got) != 1 || got[0] != "https://open.spotify.com/track/abc123" {
		t.Errorf("expected sanitized entity URL, got %v", got)
	}
}

func TestFromPost_TextLinkEntityOffDomainIgnored(t *testing.T) {
	p := &domain.Post{
		Text: "this song",
		Entities: []domain.Entity{
			{Kind: domain.EntityTextLink, Offset: 0, Length: 9, URL: "https://example.com/track/abc"},
		},
	}
	if got := FromPost(p); len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
}

func TestFromPost_URLEntityUTF16Offsets(t *testing.T) {
	// The emoji occupies two UTF-16 code units; offsets follow Telegram's
	// counting, not Go byte indexes.
	text := "\U0001F3B5 https://open.spotify.com/track/abc123"
	p := &domain.Post{
		Text: text,
		Entities: []domain.Entity{
			{Kind: domain.EntityURL, Offset: 3, Length: 38},
		},
	}
	got := FromPost(p)
	if len(got) != 1 || got[0] != "https://open.spotify.com/track/abc123" {
		t.Errorf("expected sliced URL, got %v", got)
	}
}

func TestFromPost_URLEntityOutOfRange(t *testing.T) {
	p := &domain.Post{
		Text: "short",
		Entities: []domain.Entity{
			{Kind: domain.EntityURL, Offset: 2, Length: 100},
		},
	}
	if got := FromPost(p); len(got) != 0 {
		t.Errorf("expected no links for out-of-range entity, got %v", got)
	}
}

func TestFromPost_CaptionAndTextMerged(t *testing.T) {
	p := &domain.Post{
		Text:    "https://open.spotify.com/track/a",
		Caption: "https://open.spotify.com/album/b and https://open.spotify.com/track/a",
	}
	got := FromPost(p)
	want := []string{
		"https://open.spotify.com/track/a",
		"https://open.spotify.com/album/b",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromPost = %v, want %v", got, want)
	}
}

func TestFromPost_NoLinks(t *testing.T) {
	p := &domain.Post{Text: "just chatting, no links here"}
	if got := FromPost(p); len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
}
