// Package notify renders reply text for resolved metadata and delivers it
// back to Telegram.
package notify

import (
	"fmt"
	"strings"

	"spotlink/internal/domain"
)

const defaultAnnouncer = "Someone"

// Announcer formats the display name used in reply text: the @username when
// present, the first/last name otherwise, "Someone" as a last resort.
func Announcer(s *domain.Sender) string {
	if s == nil {
		return defaultAnnouncer
	}
	if s.Username != "" {
		return "@" + s.Username
	}
	name := strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
	if name == "" {
		return defaultAnnouncer
	}
	return name
}

// Render builds the per-kind reply text. Pure function, no failure mode: the
// year suffix appears only when a release year is present, and the artist
// subtitle is parenthesized only when non-empty.
func Render(m *domain.MetadataRecord, announcer string) string {
	year := ""
	if m.ReleaseYear != "" {
		year = " (" + m.ReleaseYear + ")"
	}
	switch m.Kind {
	case domain.KindTrack:
		return fmt.Sprintf("%s wants you to listen to %s by %s%s!", announcer, m.Title, m.Subtitle, year)
	case domain.KindAlbum:
		return fmt.Sprintf("%s wants you to listen to the album %s by %s%s!", announcer, m.Title, m.Subtitle, year)
	case domain.KindPlaylist:
		return fmt.Sprintf("%s wants you to check out the playlist %s curated by %s!", announcer, m.Title, m.Subtitle)
	case domain.KindArtist:
		subtitle := ""
		if m.Subtitle != "" {
			subtitle = " (" + m.Subtitle + ")"
		}
		return fmt.Sprintf("%s wants you to check out %s%s!", announcer, m.Title, subtitle)
	case domain.KindShow:
		return fmt.Sprintf("%s wants you to listen to the show %s by %s!", announcer, m.Title, m.Subtitle)
	case domain.KindEpisode:
		return fmt.Sprintf("%s wants you to listen to the episode %s from %s%s!", announcer, m.Title, m.Subtitle, year)
	}
	return FallbackNotice(announcer)
}

// FallbackNotice is the reply sent when metadata could not be obtained.
func FallbackNotice(announcer string) string {
	return fmt.Sprintf("%s shared a Spotify link but I could not load its details.", announcer)
}

// ErrorNotice is the reply sent when per-link processing failed unexpectedly.
func ErrorNotice(announcer string) string {
	return fmt.Sprintf("%s shared a Spotify link but something went wrong while processing it.", announcer)
}
