package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/salvadorperezm/ror-api-creation/internal/post/model"
	"github.com/salvadorperezm/ror-api-creation/internal/post/service"
	"github.com/salvadorperezm/ror-api-creation/middleware"
	"github.com/salvadorperezm/ror-api-creation/pkg/logger"
)

type PostHandler struct {
	Service *service.PostService
}

func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{Service: service}
}

// ListPosts handles GET /posts. Auth is optional; the search query
// param narrows by title when present.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	posts, err := h.Service.List(current, r.URL.Query().Get("search"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ShowPost handles GET /posts/{id}. A draft owned by somebody else is
// indistinguishable from a missing post.
func (h *PostHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	current := middleware.CurrentUser(r.Context())

	post, err := h.Service.Get(current, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /posts. Auth is required. The post's owner
// comes from the request body's user_id as declared; it is deliberately
// not forced to equal the caller.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	post, err := h.Service.Create(req.Post)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost handles PUT /posts/{id}. Auth is required and only the
// owner may update; anyone else gets a 404.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	current := middleware.CurrentUser(r.Context())

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	post, err := h.Service.Update(current, id, req.Post)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// respondError maps service failures onto the status taxonomy. Not
// found and validation failures are expected control flow; anything
// else is surfaced as a 500 so the API always answers with JSON.
func (h *PostHandler) respondError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "post not found")
	case errors.As(err, &validationErr):
		writeError(w, http.StatusUnprocessableEntity, validationErr.Message)
	default:
		logger.Sugar.Errorf("Unexpected error handling request: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message})
}
