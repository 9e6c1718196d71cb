package api

import (
	"context"
	"net/http"
	"net/url"

	"Linkshelf/internal/cli/model"
)

// BookmarksAPI: запросы к /bookmarks/ и вспомогательным эндпоинтам анализа.
type BookmarksAPI struct{ c *Client }

func (c *Client) Bookmarks() BookmarksAPI { return BookmarksAPI{c: c} }

// List sends the filters as query parameters; NoCollection is sent as collection_id=null.
func (a BookmarksAPI) List(ctx context.Context, f model.BookmarkFilters) ([]model.Bookmark, error) {
	var out []model.Bookmark
	if err := a.c.do(ctx, http.MethodGet, "/bookmarks/", f.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a BookmarksAPI) Get(ctx context.Context, id int64) (model.Bookmark, error) {
	var out model.Bookmark
	err := a.c.do(ctx, http.MethodGet, itemPath("bookmarks", id), nil, nil, &out)
	return out, err
}

func (a BookmarksAPI) Create(ctx context.Context, in model.BookmarkInput) (model.Bookmark, error) {
	in.TagIDs = model.UniqueIDs(in.TagIDs)
	var out model.Bookmark
	err := a.c.do(ctx, http.MethodPost, "/bookmarks/", nil, in, &out)
	return out, err
}

func (a BookmarksAPI) Update(ctx context.Context, id int64, in model.BookmarkUpdate) (model.Bookmark, error) {
	in.TagIDs = model.UniqueIDs(in.TagIDs)
	var out model.Bookmark
	err := a.c.do(ctx, http.MethodPut, itemPath("bookmarks", id), nil, in, &out)
	return out, err
}

func (a BookmarksAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, itemPath("bookmarks", id), nil, nil, nil)
}

func (a BookmarksAPI) SuggestTags(ctx context.Context, in model.SuggestTagsRequest) ([]string, error) {
	var out model.SuggestTagsResponse
	if err := a.c.do(ctx, http.MethodPost, "/bookmarks/suggest-tags", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

// AnalyzeURL передаёт url query-параметром, тело запроса пустое.
func (a BookmarksAPI) AnalyzeURL(ctx context.Context, rawURL string) (model.URLAnalysis, error) {
	q := url.Values{}
	q.Set("url", rawURL)
	q.Set("use_ml", "true")
	var out model.URLAnalysis
	err := a.c.do(ctx, http.MethodPost, "/bookmarks/analyze-url", q, nil, &out)
	return out, err
}

func (a BookmarksAPI) RecommendSimilar(ctx context.Context, in model.SimilarRequest) ([]model.Recommendation, error) {
	var out model.SimilarResponse
	if err := a.c.do(ctx, http.MethodPost, "/bookmarks/recommend-similar", nil, in, &out); err != nil {
		return nil, err
	}
	return out.Recommendations, nil
}
