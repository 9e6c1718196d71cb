package handlers

import (
	"net/http"

	"Linkshelf/internal/service"
)

// TagHandler обслуживает /api/tags/.
type TagHandler struct {
	responder
	tags *service.TagService
}

func NewTagHandler(tags *service.TagService, base responder) *TagHandler {
	return &TagHandler{responder: base, tags: tags}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.tags.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	t, err := h.tags.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.TagInput
	if !h.decode(w, r, &in) {
		return
	}
	t, err := h.tags.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, t)
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in service.TagInput
	if !h.decode(w, r, &in) {
		return
	}
	t, err := h.tags.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, t)
}

// Delete отвечает 409, пока метка используется закладками.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.tags.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
