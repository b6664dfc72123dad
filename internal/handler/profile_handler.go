package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"redsocial/internal/repository"
	"redsocial/internal/service"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := h.ProfileService.GetProfile(r.Context(), username)
	if err != nil {
		respondError(w, err, "failed to get profile")
		return
	}

	WriteJSON(w, profile, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	// a token-carrying client may only edit its own profile
	if tokenUser, ok := r.Context().Value(ContextUsername).(string); ok && tokenUser != "" && tokenUser != username {
		WriteError(w, "cannot edit another user's profile", http.StatusForbidden)
		return
	}

	req := repository.UpdateProfileRequest{Username: username}
	var avatar *service.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			WriteError(w, "invalid form data", http.StatusBadRequest)
			return
		}
		// only fields present in the form are updated
		if values, ok := r.MultipartForm.Value["bio"]; ok && len(values) > 0 {
			req.Bio = &values[0]
		}
		if values, ok := r.MultipartForm.Value["language"]; ok && len(values) > 0 {
			req.Language = &values[0]
		}
		avatar = formUpload(r, "avatar")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		req.Username = username
	}

	if err := h.ProfileService.UpdateProfile(r.Context(), req, avatar); err != nil {
		respondError(w, err, "failed to update profile")
		return
	}

	WriteJSON(w, MessageResponse{Message: "profile updated"}, http.StatusOK)
}
