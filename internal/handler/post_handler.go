package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"redsocial/internal/models"
	"redsocial/internal/repository"
	"redsocial/internal/service"
)

type LikeResponse struct {
	Likes int `json:"likes"`
}

// postID extracts and validates the {id} path variable. A structurally
// invalid identifier is a client error, not a lookup miss.
func postID(r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		respondError(w, err, "failed to get posts")
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title" validate:"required"`
		Text     string `json:"text" validate:"required"`
		Username string `json:"username"`
	}
	var image *service.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "invalid form data", http.StatusBadRequest)
			return
		}
		req.Title = r.FormValue("title")
		req.Text = r.FormValue("text")
		req.Username = r.FormValue("username")
		image = formUpload(r, "image")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "title and text are required", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreatePostRequest{
		Username: requestUsername(r, req.Username),
		Title:    req.Title,
		Text:     req.Text,
	}

	if _, err := h.PostService.CreatePost(r.Context(), serviceReq, image); err != nil {
		respondError(w, err, "failed to create post")
		return
	}

	WriteJSON(w, MessageResponse{Message: "post created"}, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to get post")
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var req repository.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.PostID = id

	if err := h.PostService.UpdatePost(r.Context(), req); err != nil {
		respondError(w, err, "failed to update post")
		return
	}

	WriteJSON(w, MessageResponse{Message: "post updated"}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), id); err != nil {
		respondError(w, err, "failed to delete post")
		return
	}

	WriteJSON(w, MessageResponse{Message: "post and comments deleted"}, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	// an empty body is fine, the username check below handles it
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := requestUsername(r, req.Username)
	if username == "" {
		WriteError(w, "login required", http.StatusUnauthorized)
		return
	}

	likes, err := h.PostService.ToggleLike(r.Context(), id, username)
	if err != nil {
		respondError(w, err, "failed to toggle like")
		return
	}

	WriteJSON(w, LikeResponse{Likes: likes}, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var req struct {
		Username string `json:"user"`
		Text     string `json:"text" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "text is required", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateCommentRequest{
		PostID:   id,
		Username: requestUsername(r, req.Username),
		Text:     req.Text,
	}

	if _, err := h.PostService.AddComment(r.Context(), serviceReq); err != nil {
		respondError(w, err, "failed to add comment")
		return
	}

	WriteJSON(w, MessageResponse{Message: "comment added"}, http.StatusOK)
}
