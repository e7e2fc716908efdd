package similarity

import (
	"regexp"
	"strconv"
	"strings"

	"contentbot/textnorm"
)

// TitleMetadata is the structured information embedded in a free-text title.
type TitleMetadata struct {
	Year    int    `json:"year,omitempty"`
	Season  int    `json:"season,omitempty"`
	Episode int    `json:"episode,omitempty"`
	Quality string `json:"quality,omitempty"`
}

var (
	yearRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	// Go's \b is ASCII-only, so the Hebrew alternatives sit outside it.
	seasonRe  = regexp.MustCompile(`(?i)(?:\b(?:season|s)\s*|עונה\s*)(\d+)\b`)
	episodeRe = regexp.MustCompile(`(?i)(?:\b(?:episode|ep|e)\s*|פרק\s*)(\d+)\b`)
	qualityRe = regexp.MustCompile(`(?i)\b(HD|4K|1080p|720p|480p|BluRay|DVD|WEB|HDTV)\b`)
)

// ExtractMetadata pulls year, season, episode and quality markers out of a
// title. Years outside 1900-2030 are discarded as noise.
func ExtractMetadata(text string) TitleMetadata {
	var meta TitleMetadata

	if m := yearRe.FindStringSubmatch(text); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil && year >= 1900 && year <= 2030 {
			meta.Year = year
		}
	}
	if m := seasonRe.FindStringSubmatch(text); m != nil {
		meta.Season, _ = strconv.Atoi(m[1])
	}
	if m := episodeRe.FindStringSubmatch(text); m != nil {
		meta.Episode, _ = strconv.Atoi(m[1])
	}
	if m := qualityRe.FindStringSubmatch(text); m != nil {
		meta.Quality = strings.ToUpper(m[1])
	}
	return meta
}

// StandardizeTitle produces a canonical storage form of a title: normalized,
// structured markers removed, then the year (if any) re-appended in a single
// uniform position.
func StandardizeTitle(title string) string {
	if title == "" {
		return ""
	}

	standardized := textnorm.Normalize(title)
	meta := ExtractMetadata(standardized)

	for _, re := range []*regexp.Regexp{yearRe, seasonRe, episodeRe, qualityRe} {
		standardized = re.ReplaceAllString(standardized, "")
	}
	standardized = strings.Join(strings.Fields(standardized), " ")

	if meta.Year != 0 {
		standardized = strings.TrimSpace(standardized + " " + strconv.Itoa(meta.Year))
	}
	return standardized
}
