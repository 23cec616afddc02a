package domain

const (
	// MainDomain is the hostname suffix shared by canonical Spotify URLs.
	MainDomain = "spotify.com"
	// ShortLinkHost serves abbreviated redirect URLs.
	ShortLinkHost = "spotify.link"
)

// Kind is a Spotify resource kind recognized by the classifier.
type Kind string

const (
	KindTrack    Kind = "track"
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
	KindArtist   Kind = "artist"
	KindShow     Kind = "show"
	KindEpisode  Kind = "episode"
)

// Kinds lists every recognized resource kind.
var Kinds = []Kind{KindTrack, KindAlbum, KindPlaylist, KindArtist, KindShow, KindEpisode}

// ValidKind reports whether s names a recognized resource kind. Matching is
// case-sensitive; there is no aliasing beyond the legacy user-playlist path
// handled by the classifier itself.
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindTrack, KindAlbum, KindPlaylist, KindArtist, KindShow, KindEpisode:
		return true
	}
	return false
}

// ResolvedEntity is a classified link: which resource kind it names and the
// resource identifier. Immutable once produced.
type ResolvedEntity struct {
	Kind Kind
	ID   string
}

// MetadataRecord is the uniform catalog record the fetcher maps every
// provider response into. ReleaseYear and ImageURL are optional; empty means
// absent, never an error.
type MetadataRecord struct {
	Kind         Kind
	Title        string
	Subtitle     string
	ReleaseYear  string
	ImageURL     string
	CanonicalURL string
}
