package degreecourses

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/degreeportal-go/auth"
)

// CourseHandler handles HTTP requests for the degree course catalog.
type CourseHandler struct {
	service DegreeCourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(service DegreeCourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// RegisterRoutes mounts the catalog. Reads stay public; authenticate guards the writes.
func (h *CourseHandler) RegisterRoutes(router chi.Router, authenticate func(http.Handler) http.Handler) {
	router.Get("/", h.listCourses)
	router.Get("/{id}", h.getCourse)

	router.Group(func(r chi.Router) {
		r.Use(authenticate, auth.RequireAccess(auth.AdminOnly))
		r.Post("/", h.createCourse)
		r.Put("/{id}", h.updateCourse)
		r.Delete("/{id}", h.deleteCourse)
	})
}

// listCourses godoc
// @Summary List degree courses
// @Tags DegreeCourses
// @Produce json
// @Param universityShortName query string false "Only courses of this university"
// @Success 200 {array} DegreeCourse
// @Router /api/degreeCourses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	filter := Filter{UniversityShortName: r.URL.Query().Get("universityShortName")}
	courses, err := h.service.List(r.Context(), filter)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, courses)
}

// getCourse godoc
// @Summary Get a degree course
// @Tags DegreeCourses
// @Produce json
// @Param id path string true "Degree course ID"
// @Success 200 {object} DegreeCourse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/degreeCourses/{id} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, course)
}

// createCourse godoc
// @Summary Create a degree course
// @Tags DegreeCourses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateDegreeCourseRequest true "New degree course"
// @Success 201 {object} DegreeCourse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/degreeCourses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateDegreeCourseRequest
	if err := auth.Decode(r, &req); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	course, err := h.service.Create(r.Context(), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, course)
}

// updateCourse godoc
// @Summary Update a degree course
// @Tags DegreeCourses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Degree course ID"
// @Param body body UpdateDegreeCourseRequest true "Fields to change"
// @Success 200 {object} DegreeCourse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/degreeCourses/{id} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req UpdateDegreeCourseRequest
	if err := auth.Decode(r, &req); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	course, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, course)
}

// deleteCourse godoc
// @Summary Delete a degree course
// @Tags DegreeCourses
// @Security BearerAuth
// @Param id path string true "Degree course ID"
// @Success 204
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/degreeCourses/{id} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
