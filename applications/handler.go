package applications

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/degreeportal-go/auth"
)

// ApplicationHandler handles HTTP requests for degree course applications.
type ApplicationHandler struct {
	service ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// RegisterRoutes mounts /api/degreeCourseApplications. The router must already
// run auth.JWTMiddleware.
func (h *ApplicationHandler) RegisterRoutes(router chi.Router) {
	router.Get("/myApplications", h.myApplications)
	router.With(auth.RequireAccess(auth.AdminOnly)).Get("/", h.listApplications)
	router.Post("/", h.createApplication)
	router.Get("/{id}", h.getApplication)
	router.Put("/{id}", h.updateApplication)
	router.Delete("/{id}", h.deleteApplication)
}

// myApplications godoc
// @Summary List my applications
// @Tags DegreeCourseApplications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Application
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/degreeCourseApplications/myApplications [get]
func (h *ApplicationHandler) myApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.MyApplications(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, apps)
}

// listApplications godoc
// @Summary Search applications
// @Tags DegreeCourseApplications
// @Produce json
// @Security BearerAuth
// @Param applicantUserID query string false "Only this applicant"
// @Param degreeCourseID query string false "Only this degree course"
// @Success 200 {array} Application
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Router /api/degreeCourseApplications [get]
func (h *ApplicationHandler) listApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	apps, err := h.service.List(r.Context(), Filter{
		ApplicantUserID: q.Get("applicantUserID"),
		DegreeCourseID:  q.Get("degreeCourseID"),
	})
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, apps)
}

// HandleListForCourse godoc
// @Summary List the applications to a degree course
// @Tags DegreeCourses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Degree course ID"
// @Success 200 {array} Application
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/degreeCourses/{id}/degreeCourseApplications [get]
func (h *ApplicationHandler) HandleListForCourse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := h.service.ListForCourse(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, apps)
	}
}

// getApplication godoc
// @Summary Get an application
// @Tags DegreeCourseApplications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} Application
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/degreeCourseApplications/{id} [get]
func (h *ApplicationHandler) getApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, app)
}

// createApplication godoc
// @Summary Apply to a degree course
// @Tags DegreeCourseApplications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateApplicationRequest true "New application"
// @Success 201 {object} Application
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/degreeCourseApplications [post]
func (h *ApplicationHandler) createApplication(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if err := auth.Decode(r, &req); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	app, err := h.service.Create(r.Context(), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, app)
}

// updateApplication godoc
// @Summary Change an application
// @Tags DegreeCourseApplications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body UpdateApplicationRequest true "Fields to change"
// @Success 200 {object} Application
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/degreeCourseApplications/{id} [put]
func (h *ApplicationHandler) updateApplication(w http.ResponseWriter, r *http.Request) {
	var req UpdateApplicationRequest
	if err := auth.Decode(r, &req); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	app, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, app)
}

// deleteApplication godoc
// @Summary Withdraw an application
// @Tags DegreeCourseApplications
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 204
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/degreeCourseApplications/{id} [delete]
func (h *ApplicationHandler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
