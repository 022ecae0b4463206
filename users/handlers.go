// Package users, as part of the identity management module.
// This file, `handlers.go`, maps the users endpoints onto UserService.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/degreeportal-go/auth"
)

// UserHandlers provides HTTP handlers for identity management.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts /api/users. The router must already run auth.JWTMiddleware.
func (h *UserHandlers) RegisterRoutes(r chi.Router) {
	r.With(auth.RequireAccess(auth.AdminOnly)).Get("/", h.HandleList())
	r.With(auth.RequireAccess(auth.AdminOnly)).Post("/", h.HandleCreate())
	r.Get("/{userID}", h.HandleGet())
	r.Put("/{userID}", h.HandleUpdate())
	r.With(auth.RequireAccess(auth.AdminOnly)).Delete("/{userID}", h.HandleDelete())
}

// RegisterPublicRoutes mounts /api/publicUsers.
func (h *UserHandlers) RegisterPublicRoutes(r chi.Router) {
	r.Post("/", h.HandleRegister())
}

// HandleList godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} auth.Identity
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Router /api/users [get]
func (h *UserHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identities, err := h.service.List(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, identities)
	}
}

// HandleGet godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} auth.Identity
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/users/{userID} [get]
func (h *UserHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.service.Get(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, identity)
	}
}

// HandleCreate godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "New user"
// @Success 201 {object} auth.Identity
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/users [post]
func (h *UserHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := auth.Decode(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		identity, err := h.service.Create(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, identity)
	}
}

// HandleRegister godoc
// @Summary Register
// @Description Public self-registration. isAdministrator must not be true.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body CreateUserRequest true "New user"
// @Success 201 {object} auth.Identity
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/publicUsers [post]
func (h *UserHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := auth.Decode(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		identity, err := h.service.Register(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, identity)
	}
}

// HandleUpdate godoc
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body UpdateUserRequest true "Fields to change"
// @Success 200 {object} auth.Identity
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/users/{userID} [put]
func (h *UserHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateUserRequest
		if err := auth.Decode(r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		identity, err := h.service.Update(r.Context(), chi.URLParam(r, "userID"), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, identity)
	}
}

// HandleDelete godoc
// @Summary Delete a user
// @Tags Users
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 204
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/users/{userID} [delete]
func (h *UserHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
