package movie

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 10.0

// Rating is a score on the 0-10 scale.
type Rating float64

// Float returns the rating as a float64.
func (r Rating) Float() float64 { return float64(r) }

// String renders the rating with at least one decimal place ("9.0", "8.25").
func (r Rating) String() string {
	s := strconv.FormatFloat(float64(r), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ParseRating converts text into a Rating. Only plain decimals such as "8"
// or "7.5" are accepted; anything else, including signs, exponents, and
// values above 10, yields 0.
func ParseRating(value string) Rating {
	value = strings.TrimSpace(value)
	if !isPlainDecimal(value) {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return ClampRating(parsed)
}

func isPlainDecimal(value string) bool {
	digits, dots := 0, 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// ClampRating coerces a numeric score, returning 0 for anything outside [0, 10].
func ClampRating(value float64) Rating {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > MaxRating {
		return 0
	}
	return Rating(value)
}

// UnmarshalJSON accepts both numeric and string encodings.
func (r *Rating) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		*r = 0
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*r = 0
			return nil
		}
		*r = ParseRating(s)
		return nil
	}
	*r = ParseRating(text)
	return nil
}

// Movie is one catalog entry.
type Movie struct {
	Title      string `json:"title"`
	Year       string `json:"year"`
	Rating     Rating `json:"rating"`
	PosterURL  string `json:"poster_url"`
	ExternalID string `json:"external_id"`
}

// Key returns the normalized title used for uniqueness and deletion.
func (m Movie) Key() string {
	return NormalizeTitle(m.Title)
}

// String renders the movie the way listings print it.
func (m Movie) String() string {
	if strings.TrimSpace(m.Year) == "" {
		return fmt.Sprintf("%s, Rating: %s", m.Title, m.Rating)
	}
	return fmt.Sprintf("%s (%s), Rating: %s", m.Title, m.Year, m.Rating)
}

// UnmarshalJSON decodes a movie, also accepting the imdb_ID key used by older
// catalog files and string-typed year values.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title      string          `json:"title"`
		Year       json.RawMessage `json:"year"`
		Rating     Rating          `json:"rating"`
		PosterURL  string          `json:"poster_url"`
		ExternalID string          `json:"external_id"`
		LegacyID   string          `json:"imdb_ID"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Movie{
		Title:      raw.Title,
		Year:       rawText(raw.Year),
		Rating:     raw.Rating,
		PosterURL:  raw.PosterURL,
		ExternalID: raw.ExternalID,
	}
	if m.ExternalID == "" {
		m.ExternalID = raw.LegacyID
	}
	return nil
}

func rawText(data json.RawMessage) string {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		return ""
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s
		}
	}
	return text
}

// NormalizeTitle trims surrounding whitespace and case-folds the title.
func NormalizeTitle(title string) string {
	return cases.Fold().String(strings.TrimSpace(title))
}

// SameTitle reports whether two titles are equal after normalization.
func SameTitle(a, b string) bool {
	return NormalizeTitle(a) == NormalizeTitle(b)
}
