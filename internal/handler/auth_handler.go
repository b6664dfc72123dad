package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"redsocial/internal/repository"
	"redsocial/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterResponse struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	Token     string `json:"token"`
}

// formUpload pulls a single optional file out of a parsed multipart
// form. The caller owns closing nothing: the file is closed with the
// request body.
func formUpload(r *http.Request, field string) *service.Upload {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil
	}

	return &service.Upload{
		FileName: header.Filename,
		Size:     header.Size,
		Reader:   file,
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	var avatar *service.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "invalid form data", http.StatusBadRequest)
			return
		}
		req.Username = r.FormValue("username")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
		avatar = formUpload(r, "avatar")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid registration data", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.AuthService.Register(r.Context(), serviceReq, avatar)
	if err != nil {
		respondError(w, err, "failed to register user")
		return
	}

	WriteJSON(w, RegisterResponse{Username: user.Username}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err, "failed to log in")
		return
	}

	response := LoginResponse{
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Token:     token,
	}

	WriteJSON(w, response, http.StatusOK)
}
