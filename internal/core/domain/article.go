package domain

import "time"

// Article is a blog post. Slug is derived from the title on creation and is
// unique across all articles; URL always points at the public detail page for
// the slug.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"-"`
	AuthorName string    `json:"author_name"`
	Date       string    `json:"date"`
	ImageURL   string    `json:"image_url"`
	URL        string    `json:"url"`
	Published  bool      `json:"published"`
	Slug       string    `json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ArticleURL returns the public detail path for a slug.
func ArticleURL(slug string) string {
	return "/articles/" + slug + "/"
}
