package domain

// Source attributes an article to the outlet it was sourced from.
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Favicon string `json:"favicon,omitempty"`
}

// Article is the primary content entity: one published piece.
//
// ID is globally unique and immutable. Slug, when present, is unique among
// articles that have one and is preferred over ID in URLs. Tags are lowercase
// hyphenated slugs. ViewCount only ever increases and is the single field this
// system mutates; everything else is edited out-of-band.
type Article struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug,omitempty"`
	Headline     string   `json:"headline"`
	Excerpt      string   `json:"excerpt,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Body         string   `json:"body,omitempty"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	Author       string   `json:"author,omitempty"`
	ReadTime     string   `json:"readTime"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
	OriginalURL  string   `json:"originalUrl,omitempty"`
	IsExclusive  bool     `json:"isExclusive"`
	IsFeatured   bool     `json:"isFeatured"`
	IsBreaking   bool     `json:"isBreaking"`
	Source       *Source  `json:"source,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	KeyPoints    []string `json:"keyPoints,omitempty"`
	WhyItMatters string   `json:"whyItMatters,omitempty"`
	ViewCount    int      `json:"viewCount"`
}

// HasTag reports whether the article carries the exact tag slug.
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagCount is one entry of a tag-frequency aggregation.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SlugOrID identifies an article for URL construction: slug when present,
// raw id otherwise.
type SlugOrID struct {
	ID   string `json:"id"`
	Slug string `json:"slug,omitempty"`
}
