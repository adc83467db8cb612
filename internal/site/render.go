package site

import (
	"bytes"
	"html/template"
	"strings"

	"cinelog/internal/movie"
)

// Placeholder is the template marker replaced by the movie grid.
const Placeholder = "__TEMPLATE_MOVIE_GRID__"

// DefaultDetailURL prefixes external identifiers in detail links.
const DefaultDetailURL = "https://www.imdb.com/title/"

// RenderOptions controls fragment rendering.
type RenderOptions struct {
	// DetailURL is prepended to a movie's external id to build its link.
	DetailURL string
}

var fragmentTemplate = template.Must(template.New("movie").Parse(`
<div>
    <ol class="movie-grid">
        <li>
            <div class="movie">
                {{- if .DetailLink}}
                <a href="{{.DetailLink}}" target="_blank">
                    <img class="movie-poster" src="{{.PosterURL}}" alt="{{.Title}}"/>
                </a>
                {{- else}}
                <img class="movie-poster" src="{{.PosterURL}}" alt="{{.Title}}"/>
                {{- end}}
                <div class="movie-title">{{.Title}}</div>
                <div class="movie-year">{{.Year}}</div>
                <div class="movie-rating">{{.Rating}} IMDb</div>
            </div>
        </li>
    </ol>
</div>`))

type fragmentData struct {
	Title      string
	Year       string
	Rating     string
	PosterURL  string
	DetailLink string
}

// Render replaces every occurrence of Placeholder in tmpl with the movie
// grid. Field values are HTML-escaped and missing fields render empty. A
// movie without an external id gets no detail link.
func Render(tmpl string, movies []movie.Movie, opts RenderOptions) string {
	detailURL := opts.DetailURL
	if detailURL == "" {
		detailURL = DefaultDetailURL
	}

	var grid bytes.Buffer
	for _, m := range movies {
		data := fragmentData{
			Title:     m.Title,
			Year:      m.Year,
			Rating:    m.Rating.String(),
			PosterURL: m.PosterURL,
		}
		if id := strings.TrimSpace(m.ExternalID); id != "" {
			data.DetailLink = detailURL + id
		}
		// Execute only fails on writer errors, which bytes.Buffer never returns.
		_ = fragmentTemplate.Execute(&grid, data)
	}
	return strings.ReplaceAll(tmpl, Placeholder, grid.String())
}
