package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Linkshelf/internal/service"
	"Linkshelf/internal/validation"
)

const maxBodyBytes = 1 << 20

// responder: общие для всех хендлеров декодирование, валидация и ответы.
type responder struct {
	logger   *zap.SugaredLogger
	validate *validation.Validator
}

type fieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func (h responder) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warnw("encode response", "error", err)
	}
}

func (h responder) writeDetail(w http.ResponseWriter, status int, detail any) {
	h.writeJSON(w, status, map[string]any{"detail": detail})
}

// writeError переводит ошибку сервиса в HTTP-статус с телом {"detail": ...}.
func (h responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		h.writeValidation(w, "body", verrs)
		return
	}

	var se *service.Error
	if errors.As(err, &se) {
		status := http.StatusBadRequest
		switch {
		case errors.Is(se, service.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(se, service.ErrConflict):
			status = http.StatusConflict
		}
		h.writeDetail(w, status, se.Detail)
		return
	}

	h.logger.Errorw("request failed", "method", r.Method, "uri", r.RequestURI, "error", err)
	h.writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

// writeValidation отвечает 422 со списком {loc, msg} в порядке имён полей.
func (h responder) writeValidation(w http.ResponseWriter, where string, verrs validation.Errors) {
	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	out := make([]fieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldError{Loc: []string{where, f}, Msg: f + " " + verrs[f]})
	}
	h.writeDetail(w, http.StatusUnprocessableEntity, out)
}

// decode читает JSON-тело в dst и проверяет его валидатором.
func (h responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Debugw("invalid request body", "uri", r.RequestURI, "error", err)
		h.writeDetail(w, http.StatusUnprocessableEntity, []fieldError{{Loc: []string{"body"}, Msg: "invalid JSON: " + err.Error()}})
		return false
	}
	if err := h.validate.Validate(dst); err != nil {
		h.writeError(w, r, err)
		return false
	}
	return true
}

// pathID разбирает {id} из пути; при ошибке ответ уже записан.
func (h responder) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeValidation(w, "path", validation.Errors{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// queryInt читает необязательный целый query-параметр.
func queryInt(r *http.Request, name string, errs validation.Errors) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errs[name] = "must be an integer"
		return nil
	}
	return &v
}
