package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/model"
)

// Assist wraps the stateless helper endpoints: page analysis, tag suggestions
// and similar-bookmark recommendations.
type Assist struct {
	api     api.BookmarksAPI
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewAssist(c *api.Client, opts Options) *Assist {
	opts = opts.withDefaults()
	return &Assist{api: c.Bookmarks(), timeout: opts.Timeout, logger: opts.Logger}
}

func (a *Assist) AnalyzeURL(ctx context.Context, rawURL string) (model.URLAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	res, err := a.api.AnalyzeURL(ctx, rawURL)
	if err != nil {
		a.logger.Warnw("analyze failed", "url", rawURL, "error", err)
	}
	return res, err
}

func (a *Assist) SuggestTags(ctx context.Context, in model.SuggestTagsRequest) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.api.SuggestTags(ctx, in)
}

func (a *Assist) RecommendSimilar(ctx context.Context, in model.SimilarRequest) ([]model.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.api.RecommendSimilar(ctx, in)
}
