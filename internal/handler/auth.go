package handler

import (
	"mime"
	"net/http"

	"github.com/Dan9191/finance-tracker/internal/service"
)

// maxFormSize bounds the memory used by a multipart login form
const maxFormSize = 1 << 20

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.svc.Register(r.Context(), service.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.handleError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Login handles user authentication. It accepts a JSON body with email and
// password, or an OAuth2 password form with username and password, sent
// urlencoded or as multipart/form-data.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if !h.decodeJSON(w, r, &req) {
			return
		}
	} else {
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(maxFormSize)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Invalid form body")
			return
		}
		req.Email = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if !h.validateStruct(w, &req) {
			return
		}
	}

	resp, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
