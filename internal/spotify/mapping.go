package spotify

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"spotlink/internal/domain"
)

// mapperFunc turns one provider response body into a uniform record. Each
// mapper is pure so the per-kind field rules stay independently testable.
type mapperFunc func(entity domain.ResolvedEntity, body []byte) (*domain.MetadataRecord, error)

var mappers = map[domain.Kind]mapperFunc{
	domain.KindTrack:    mapTrack,
	domain.KindAlbum:    mapAlbum,
	domain.KindPlaylist: mapPlaylist,
	domain.KindArtist:   mapArtist,
	domain.KindShow:     mapShow,
	domain.KindEpisode:  mapEpisode,
}

type image struct {
	URL string `json:"url"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type artistRef struct {
	Name string `json:"name"`
}

func mapTrack(entity domain.ResolvedEntity, body []byte) (*domain.MetadataRecord, error) {
	var p struct {
		Name    string      `json:"name"`
		Artists []artistRef `json:"artists"`
		Album   struct {
			ReleaseDate string  `json:"release_date"`
			Images      []image `json:"images"`
		} `json:"album"`
		ExternalURLs externalURLs `json:"external_urls"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &domain.MetadataRecord{
		Kind:         entity.Kind,
		Title:        p.Name,
		Subtitle:     joinArtists(p.Artists),
		ReleaseYear:  releaseYear(p.Album.ReleaseDate),
		ImageURL:     firstImage(p.Album.Images),
		CanonicalURL: canonicalURL(p.ExternalURLs, entity),
	}, nil
}

func mapAlbum(entity domain.ResolvedEntity, body []byte) (*domain.MetadataRecord, error) {
	var p struct {
		Name         string       `json:"name"`
		Artists      []artistRef  `json:"artists"`
		ReleaseDate  string       `json:"release_date"`
		Images       []image      `json:"images"`
		ExternalURLs externalURLs `json:"external_urls"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &domain.MetadataRecord{
		Kind:         entity.Kind,
		Title:        p.Name,
		Subtitle:     joinArtists(p.Artists),
		ReleaseYear:  releaseYear(p.ReleaseDate),
		ImageURL:     firstImage(p.Images),
		CanonicalURL: canonicalURL(p.ExternalURLs, entity),
	}, nil
}

func mapPlaylist(entity domain.ResolvedEntity, body []byte) (*domain.MetadataRecord, error) {
	var p struct {
		Name  string `json:"name"`
		Owner struct {
			DisplayName string `json:"display_name"`
			ID          string `json:"id"`
		} `json:"owner"`
		Images       []image      `json:"images"`
		ExternalURLs externalURLs `json:"external_urls"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	subtitle := p.Owner.DisplayName
	if subtitle == "" {
		subtitle = p.Owner.ID
	}
	if subtitle == "" {
		subtitle = "unknown curator"
	}
	return &domain.MetadataRecord{
		Kind:         entity.Kind,
		Title:        p.Name,
		Subtitle:     subtitle,
		ImageURL:     firstImage(p.Images),
		CanonicalURL: canonicalURL(p.ExternalURLs, entity),
	}, nil
}

func mapArtist(entity domain.ResolvedEntity, body []byte) (*domain.MetadataRecord, error) {
	var p struct {
		Name         string       `json:"name"`
		Genres       []string     `json:"genres"`
		Images       []image      `json:"images"`
		ExternalURLs externalURLs `json:"external_urls"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	subtitle := "artist"
	if len(p.Genres) > 0 {
		genres := p.Genres
		if len(genres) > 3 {
			genres = genres[:3]
		}
		subtitle = strings.Join(genres, ", ")
	}
	return &domain.MetadataRecord{
		Kind:         entity.Kind,
		Title:        p.Name,
		Subtitle:     subtitle,
		ImageURL:     firstImage(p.Images),
		CanonicalURL: canonicalURL(p.ExternalURLs, entity),
	}, nil
}

func mapShow(entity domain.ResolvedEntity, body []byte) (*domain.MetadataRecord, error) {
	var p struct {
		Name         string       `json:"name"`
		Publisher    string       `json:"publisher"`
		Images       []image      `json:"images"`
		ExternalURLs externalURLs `json:"external_urls"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	subtitle := p.Publisher
	if subtitle == "" {
		subtitle = "unknown publisher"
	}
	return &domain.MetadataRecord{
		Kind:         entity.Kind,
		Title:        p.Name,
		Subtitle:     subtitle,
		ImageURL:     firstImage(p.Images),
		CanonicalURL: canonicalURL(p.ExternalURLs, entity),
	}, nil
}

func mapEpisode(entity domain.ResolvedEntity, body []byte) (*domain.MetadataRecord, error) {
	var p struct {
		Name           string  `json:"name"`
		ReleaseDate    string  `json:"release_date"`
		ReleaseDateAlt string  `json:"releaseDate"`
		Images         []image `json:"images"`
		Show           struct {
			Name   string  `json:"name"`
			Images []image `json:"images"`
		} `json:"show"`
		ExternalURLs externalURLs `json:"external_urls"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	subtitle := p.Show.Name
	if subtitle == "" {
		subtitle = "podcast"
	}
	date := p.ReleaseDate
	if date == "" {
		date = p.ReleaseDateAlt
	}
	imageURL := firstImage(p.Images)
	if imageURL == "" {
		imageURL = firstImage(p.Show.Images)
	}
	return &domain.MetadataRecord{
		Kind:         entity.Kind,
		Title:        p.Name,
		Subtitle:     subtitle,
		ReleaseYear:  releaseYear(date),
		ImageURL:     imageURL,
		CanonicalURL: canonicalURL(p.ExternalURLs, entity),
	}, nil
}

var yearPattern = regexp.MustCompile(`^\d{4}`)

// releaseYear extracts the leading 4-digit year from a provider date string.
// Absent or malformed dates yield an empty year, never an error.
func releaseYear(date string) string {
	return yearPattern.FindString(date)
}

func joinArtists(artists []artistRef) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}

func firstImage(images []image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func canonicalURL(ext externalURLs, entity domain.ResolvedEntity) string {
	if ext.Spotify != "" {
		return ext.Spotify
	}
	return fmt.Sprintf("https://open.%s/%s/%s", domain.MainDomain, entity.Kind, entity.ID)
}
