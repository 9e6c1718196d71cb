package commands

import (
	"context"
	"fmt"
	"strings"

	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/service"
	"Linkshelf/internal/cli/view"
	"Linkshelf/internal/config"
)

type analyzeCmd struct{}

func (analyzeCmd) Name() string        { return "analyze" }
func (analyzeCmd) Description() string { return "Extract title, description and summary of a page" }
func (analyzeCmd) Usage() string       { return "analyze <url>" }

func (analyzeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	d := newDeps(cfg)
	res, err := service.NewAssist(d.client, d.opts).AnalyzeURL(ctx, args[0])
	if err != nil {
		return failed("Cannot analyze page", err)
	}
	return view.Analysis(Out, res)
}

type suggestTagsCmd struct{}

func (suggestTagsCmd) Name() string        { return "suggest-tags" }
func (suggestTagsCmd) Description() string { return "Suggest tags for a page" }
func (suggestTagsCmd) Usage() string {
	return "suggest-tags <url> [--title t] [--description d]"
}

func (suggestTagsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("suggest-tags")
	title := fs.String("title", "", "page title")
	desc := fs.String("description", "", "page description")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) != 1 {
		return ErrUsage
	}

	d := newDeps(cfg)
	req := model.SuggestTagsRequest{URL: pos[0], Title: *title, Description: *desc}
	// существующие метки повышают шанс совпадения; без них тоже работает
	tags := service.NewTags(d.client, d.opts)
	if err := tags.Load(ctx); err == nil {
		for _, t := range tags.State().Items {
			req.ExistingTags = append(req.ExistingTags, t.Name)
		}
	}
	suggestions, err := service.NewAssist(d.client, d.opts).SuggestTags(ctx, req)
	if err != nil {
		return failed("Cannot suggest tags", err)
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(Out, "• no suggestions")
		return nil
	}
	fmt.Fprintf(Out, "• %s\n", strings.Join(suggestions, ", "))
	return nil
}

type similarCmd struct{}

func (similarCmd) Name() string        { return "similar" }
func (similarCmd) Description() string { return "Find saved bookmarks similar to a page" }
func (similarCmd) Usage() string {
	return "similar <url> [--title t] [--description d] [--user id]"
}

func (similarCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("similar")
	title := fs.String("title", "", "page title")
	desc := fs.String("description", "", "page description")
	var user int64Flag
	fs.Var(&user, "user", "only this user's bookmarks")
	pos, err := parseInterleaved(fs, args)
	if err != nil || len(pos) != 1 {
		return ErrUsage
	}

	d := newDeps(cfg)
	recs, err := service.NewAssist(d.client, d.opts).RecommendSimilar(ctx, model.SimilarRequest{
		URL: pos[0], Title: *title, Description: *desc, UserID: user.v,
	})
	if err != nil {
		return failed("Cannot find similar bookmarks", err)
	}
	return view.Recommendations(Out, recs)
}

func init() {
	RegisterCmd(analyzeCmd{})
	RegisterCmd(suggestTagsCmd{})
	RegisterCmd(similarCmd{})
}
