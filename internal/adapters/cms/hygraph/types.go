package hygraph

import (
	"encoding/json"

	"github.com/galactis/web/internal/domain/model"
)

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlError struct {
	Message string `json:"message"`
}

type asset struct {
	URL string `json:"url"`
}

type richText struct {
	HTML string `json:"html"`
}

type post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	PublishedDate string    `json:"publishedDate"`
	UpdatedAt     string    `json:"updatedAt"`
	Content       *richText `json:"content"`
	CoverImage    *asset    `json:"coverImage"`
}

func (p post) toModel() model.BlogPost {
	bp := model.BlogPost{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		PublishedDate: p.PublishedDate,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Content != nil {
		bp.Content = p.Content.HTML
	}
	if p.CoverImage != nil {
		bp.CoverImageURL = p.CoverImage.URL
	}
	return bp
}
