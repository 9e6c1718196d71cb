package model

// SuggestTagsRequest is the body of POST /bookmarks/suggest-tags.
type SuggestTagsRequest struct {
	URL          string   `json:"url"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	ExistingTags []string `json:"existing_tags,omitempty"`
}

type SuggestTagsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// URLAnalysis: результат POST /bookmarks/analyze-url.
type URLAnalysis struct {
	URL           string  `json:"url"`
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Summary       *string `json:"summary,omitempty"`
	ContentLength int     `json:"content_length"`
}

// SimilarRequest is the body of POST /bookmarks/recommend-similar.
type SimilarRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	UserID      *int64 `json:"user_id,omitempty"`
}

// TagRef: метка в рекомендациях (без id).
type TagRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Recommendation struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	Description       *string   `json:"description,omitempty"`
	Summary           *string   `json:"summary,omitempty"`
	SimilarityScore   float64   `json:"similarity_score"`
	SimilarityReasons []string  `json:"similarity_reasons"`
	Tags              []TagRef  `json:"tags"`
	CreatedAt         Timestamp `json:"created_at,omitempty"`
}

type SimilarResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}
