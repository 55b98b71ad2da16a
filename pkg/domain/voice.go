package domain

// AIVoice is one curated expert quote shown in the voices section.
// Read-only editorial content; display order comes from the store.
type AIVoice struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Quote       string `json:"quote"`
	ArticleLink string `json:"articleLink,omitempty"`
}
