package model

// BlogPost is a published post as read from the CMS.
// Slug is unique, URL-safe and routes /resources/blog/{slug}.
type BlogPost struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	PublishedDate string `json:"publishedDate"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
	Content       string `json:"content,omitempty"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
}
