package handlers

import (
	"net/http"
	"strings"

	"Linkshelf/internal/service"
	"Linkshelf/internal/validation"
)

// BookmarkHandler обслуживает /api/bookmarks/ и вспомогательные эндпоинты анализа.
type BookmarkHandler struct {
	responder
	bookmarks *service.BookmarkService
	assist    *service.AssistService
}

func NewBookmarkHandler(bookmarks *service.BookmarkService, assist *service.AssistService, base responder) *BookmarkHandler {
	return &BookmarkHandler{responder: base, bookmarks: bookmarks, assist: assist}
}

// List: ?user_id=&collection_id=<id|null>&search=&skip=&limit=
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	errs := validation.Errors{}

	query := service.BookmarkQuery{
		UserID: queryInt(r, "user_id", errs),
		Search: strings.TrimSpace(q.Get("search")),
	}
	if q.Get("collection_id") == "null" {
		query.NoCollection = true
	} else {
		query.CollectionID = queryInt(r, "collection_id", errs)
	}
	if v := queryInt(r, "skip", errs); v != nil {
		query.Skip = int(*v)
	}
	if v := queryInt(r, "limit", errs); v != nil {
		query.Limit = int(*v)
	}
	if len(errs) > 0 {
		h.writeValidation(w, "query", errs)
		return
	}

	list, err := h.bookmarks.List(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	b, err := h.bookmarks.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.BookmarkInput
	if !h.decode(w, r, &in) {
		return
	}
	b, err := h.bookmarks.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Infow("bookmark created", "bookmark_id", b.ID, "user_id", b.UserID)
	h.writeJSON(w, http.StatusCreated, b)
}

func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in service.BookmarkUpdate
	if !h.decode(w, r, &in) {
		return
	}
	b, err := h.bookmarks.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.bookmarks.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookmarkHandler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	var in service.SuggestTagsInput
	if !h.decode(w, r, &in) {
		return
	}
	out, err := h.assist.SuggestTags(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"suggestions": out})
}

// AnalyzeURL берёт адрес из ?url=; use_ml принимается и игнорируется.
func (h *BookmarkHandler) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if raw == "" {
		h.writeValidation(w, "query", validation.Errors{"url": "is required"})
		return
	}
	out, err := h.assist.AnalyzeURL(r.Context(), raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *BookmarkHandler) RecommendSimilar(w http.ResponseWriter, r *http.Request) {
	var in service.SimilarInput
	if !h.decode(w, r, &in) {
		return
	}
	out, err := h.assist.RecommendSimilar(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]service.Recommendation{"recommendations": out})
}
