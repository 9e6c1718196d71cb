package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"Linkshelf/internal/model"
	"Linkshelf/internal/repo"
)

const (
	fetchTimeout     = 10 * time.Second
	maxPageBytes     = 2 << 20
	summaryLength    = 300
	maxSuggestions   = 5
	maxRecommended   = 5
	similarThreshold = 0.1
	sameDomainBonus  = 0.2
)

// URLAnalysis: результат разбора страницы.
type URLAnalysis struct {
	URL           string  `json:"url"`
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Summary       *string `json:"summary,omitempty"`
	ContentLength int     `json:"content_length"`
}

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
	CreatedAt         time.Time `json:"created_at"`
}

// HTTPDoer is the part of *http.Client used to fetch pages.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// AssistService implements the bookmark helpers: page analysis, tag suggestions
// and similar-bookmark recommendations.
type AssistService struct {
	http      HTTPDoer
	bookmarks repo.BookmarkRepository
	tags      repo.TagRepository
	logger    *zap.SugaredLogger
}

func NewAssistService(hc HTTPDoer, b repo.BookmarkRepository, t repo.TagRepository, logger *zap.SugaredLogger) *AssistService {
	if hc == nil {
		hc = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AssistService{http: hc, bookmarks: b, tags: t, logger: logger}
}

// AnalyzeURL downloads the page and extracts title, description and a short summary.
func (s *AssistService) AnalyzeURL(ctx context.Context, rawURL string) (*URLAnalysis, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalid("Invalid URL: %s", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, invalid("Invalid URL: %s", rawURL)
	}
	req.Header.Set("User-Agent", "Linkshelf/1.0 (+bookmark analyzer)")

	resp, err := s.http.Do(req)
	if err != nil {
		s.logger.Infow("fetch failed", "url", u.String(), "error", err)
		return nil, invalid("Failed to fetch URL: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, invalid("Failed to fetch URL: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, invalid("Failed to read page: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, invalid("Failed to parse page: %v", err)
	}

	out := &URLAnalysis{URL: u.String(), ContentLength: len(body)}
	out.Title = firstNonEmpty(
		doc.Find("head title").First().Text(),
		metaContent(doc, `meta[property="og:title"]`),
	)
	out.Description = firstNonEmpty(
		metaContent(doc, `meta[name="description"]`),
		metaContent(doc, `meta[property="og:description"]`),
	)
	out.Summary = summarize(doc)
	return out, nil
}

// SuggestTags returns up to five tag names: existing tags found in the text first,
// then the most frequent words.
func (s *AssistService) SuggestTags(ctx context.Context, in SuggestTagsInput) ([]string, error) {
	text := strings.Join([]string{urlText(in.URL), in.Title, in.Description}, " ")
	present := make(map[string]struct{})
	for _, w := range tokens(text) {
		present[w] = struct{}{}
	}

	known := append([]string(nil), in.ExistingTags...)
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		known = append(known, t.Name)
	}

	out := make([]string, 0, maxSuggestions)
	seen := make(map[string]struct{})
	add := func(name string) {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup || len(out) >= maxSuggestions {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}

	for _, name := range known {
		tw := tokens(name)
		if len(tw) == 0 {
			continue
		}
		all := true
		for _, w := range tw {
			if _, ok := present[w]; !ok {
				all = false
				break
			}
		}
		if all {
			add(name)
		}
	}
	for _, w := range topWords(text, maxSuggestions*2) {
		add(w)
	}
	return out, nil
}

// RecommendSimilar scores stored bookmarks against the given page.
func (s *AssistService) RecommendSimilar(ctx context.Context, in SimilarInput) ([]Recommendation, error) {
	candidates, err := s.bookmarks.List(ctx, repo.BookmarkFilter{UserID: in.UserID, Limit: maxPageSize})
	if err != nil {
		return nil, err
	}

	target := wordSet(urlText(in.URL), in.Title, in.Description)
	targetDomain := domain(in.URL)

	out := make([]Recommendation, 0)
	for _, b := range candidates {
		if b.URL == in.URL {
			continue
		}
		score, shared := jaccard(target, wordSet(urlText(b.URL), b.Title, deref(b.Description)))
		var reasons []string
		if len(shared) > 0 {
			reasons = append(reasons, "Shared words: "+strings.Join(limit(shared, 5), ", "))
		}
		if d := domain(b.URL); d != "" && d == targetDomain {
			score += sameDomainBonus
			reasons = append(reasons, "Same domain: "+d)
		}
		if score < similarThreshold {
			continue
		}
		out = append(out, recommendation(b, min(score, 1), reasons))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SimilarityScore > out[j].SimilarityScore })
	return limit(out, maxRecommended), nil
}

func recommendation(b model.Bookmark, score float64, reasons []string) Recommendation {
	tags := make([]TagRef, 0, len(b.Tags))
	for _, t := range b.Tags {
		tags = append(tags, TagRef{Name: t.Name, Color: t.Color})
	}
	return Recommendation{
		ID:                b.ID,
		Title:             b.Title,
		URL:               b.URL,
		Description:       b.Description,
		Summary:           b.Summary,
		SimilarityScore:   float64(int(score*1000+0.5)) / 1000,
		SimilarityReasons: reasons,
		Tags:              tags,
		CreatedAt:         b.CreatedAt,
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return v
}

// summarize склеивает первые абзацы до ~300 символов.
func summarize(doc *goquery.Document) *string {
	var b strings.Builder
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		p := strings.Join(strings.Fields(sel.Text()), " ")
		if p == "" {
			return true
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		return b.Len() < summaryLength
	})
	text := b.String()
	if text == "" {
		return nil
	}
	if r := []rune(text); len(r) > summaryLength {
		text = strings.TrimSpace(string(r[:summaryLength])) + "..."
	}
	return &text
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v = strings.Join(strings.Fields(v), " "); v != "" {
			return &v
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

