package handler

import (
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/service"
)

const maxPhotoSize = 10 << 20

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req profileUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	user, err := h.svc.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.handleError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UploadPhoto stores the multipart "photo" file as the profile photo
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid multipart body")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "photo is required")
		return
	}
	defer file.Close()

	user, err := h.svc.UploadPhoto(r.Context(), userID, header.Header.Get("Content-Type"), header.Filename, file)
	if err != nil {
		h.handleError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
