package handlers

import (
	"net/http"

	"Linkshelf/internal/service"
	"Linkshelf/internal/validation"
)

// CollectionHandler обслуживает /api/collections/.
type CollectionHandler struct {
	responder
	cols *service.CollectionService
}

func NewCollectionHandler(cols *service.CollectionService, base responder) *CollectionHandler {
	return &CollectionHandler{responder: base, cols: cols}
}

// List принимает необязательный ?user_id=.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	errs := validation.Errors{}
	userID := queryInt(r, "user_id", errs)
	if len(errs) > 0 {
		h.writeValidation(w, "query", errs)
		return
	}
	list, err := h.cols.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, err := h.cols.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CollectionInput
	if !h.decode(w, r, &in) {
		return
	}
	c, err := h.cols.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in service.CollectionInput
	if !h.decode(w, r, &in) {
		return
	}
	c, err := h.cols.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.cols.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
