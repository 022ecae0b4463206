// Package auth, as part of the authentication module.
// This file, `handlers.go`, exposes login over HTTP and holds the response helpers
// shared by every resource package.
package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/degreeportal-go/apperror"
)

// Handlers wraps the Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the login endpoint.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleAuthenticate())
}

// HandleAuthenticate godoc
// @Summary Log in
// @Description Exchanges HTTP Basic credentials for a bearer token returned in the Authorization response header.
// @Tags Authenticate
// @Produce json
// @Security BasicAuth
// @Success 200 {object} apperror.SuccessResponse "Token created successfully"
// @Header 200 {string} Authorization "Bearer <token>"
// @Failure 401 {object} apperror.ErrorResponse "Missing header or bad credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/authenticate [get]
func (h *Handlers) HandleAuthenticate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := ParseBasicAuthHeader(r.Header.Get("Authorization"))
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Secure Area"`)
			WriteError(w, r, apperror.NewUnauthorizedError("Authentication failed: Missing or invalid Authorization header", nil))
			return
		}

		token, err := h.service.Login(r.Context(), user, password)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+token)
		WriteJSON(w, http.StatusOK, apperror.SuccessResponse{Success: "Token created successfully"})
	}
}

// WriteJSON serializes data to JSON and writes it with the given status.
// A nil data writes headers only.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError converts err into the standard {"Error": ...} body. Server-side
// failures are logged with the request id and their detail is hidden.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.IsServerError() {
		slog.ErrorContext(r.Context(), "request failed",
			"type", appErr.Type.String(),
			"error", appErr.Error(),
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}

// Decode reads a JSON request body into dst. Malformed JSON is a BadRequest.
func Decode(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewBadRequestError("invalid request body", err)
	}
	return nil
}
