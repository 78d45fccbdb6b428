package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coursebook/backend/internal/contract"
	"github.com/coursebook/backend/internal/models"
	"github.com/coursebook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps methods for courses and lessons business logic.
type CatalogService interface {
	// Method GetCourses retrieve all courses using configured repository.
	GetCourses(ctx context.Context) ([]models.Course, error)
	// Method GetCourse retrieve a course by its ID.
	//
	// A missing course is returned as "nil" together with a "nil" error.
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	// Method CreateCourse stores a course built from a validated request.
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error)
	// Method DeleteCourse deletes a course together with its lessons.
	DeleteCourse(ctx context.Context, id int) error
	// Method GetLessons retrieve the lessons of a course sorted by their order field.
	GetLessons(ctx context.Context, courseID int) ([]models.Lesson, error)
	// Method GetLesson retrieve a lesson by its ID.
	//
	// A missing lesson is returned as "nil" together with a "nil" error.
	GetLesson(ctx context.Context, id int) (*models.Lesson, error)
	// Method CreateLesson stores a lesson for the course identified by "courseID".
	//
	// If the course does not exist, services.ErrCourseNotFound is returned.
	CreateLesson(ctx context.Context, courseID int, req *models.CreateLessonRequest) (*models.Lesson, error)
	// Method DeleteLesson deletes a lesson.
	DeleteLesson(ctx context.Context, id int) error
	// Method Ping checks that the storage answers.
	Ping(ctx context.Context) error
}

// CatalogHandler handles HTTP requests for courses and lessons
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes mounts every route of the API table plus the health check.
// It panics if a route has no handler.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	byName := map[string]http.HandlerFunc{
		contract.API.Courses.List.Name:   h.GetCourses,
		contract.API.Courses.Get.Name:    h.GetCourse,
		contract.API.Courses.Create.Name: h.CreateCourse,
		contract.API.Courses.Delete.Name: h.DeleteCourse,
		contract.API.Lessons.List.Name:   h.GetLessons,
		contract.API.Lessons.Create.Name: h.CreateLesson,
		contract.API.Lessons.Get.Name:    h.GetLesson,
		contract.API.Lessons.Delete.Name: h.DeleteLesson,
	}

	for _, route := range contract.Routes() {
		handler, ok := byName[route.Name]
		if !ok {
			panic(fmt.Sprintf("no handler registered for route %s", route.Name))
		}
		r.Method(route.Method, route.Pattern(), handler)
	}

	r.Get("/healthz", h.Health)
}

// GetCourses handles GET /api/courses
// @Summary List courses
// @Description Get all courses of the catalog
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/courses [get]
func (h *CatalogHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetCourses(r.Context())
	if err != nil {
		h.respondInternalError(w, r, "failed to get courses", err)
		return
	}

	h.respondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /api/courses/{id}
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} contract.ErrorResponse
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/courses/{id} [get]
func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.respondError(w, http.StatusNotFound, "Course not found")
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		h.respondInternalError(w, r, "failed to get course", err)
		return
	}
	if course == nil {
		h.respondError(w, http.StatusNotFound, "Course not found")
		return
	}

	h.respondJSON(w, http.StatusOK, course)
}

// CreateCourse handles POST /api/courses
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param course body models.CreateCourseRequest true "Course to create"
// @Success 201 {object} models.Course
// @Failure 400 {object} contract.ValidationErrorResponse
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/courses [post]
func (h *CatalogHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r, contract.API.Courses.Create)
	if !ok {
		return
	}

	course, err := h.service.CreateCourse(r.Context(), in.(*models.CreateCourseRequest))
	if err != nil {
		h.respondInternalError(w, r, "failed to create course", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, course)
}

// DeleteCourse handles DELETE /api/courses/{id}
// @Summary Delete course
// @Description Delete a course together with all of its lessons
// @Tags courses
// @Param id path int true "Course ID"
// @Success 204
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.service.DeleteCourse(r.Context(), id); err != nil {
		h.respondInternalError(w, r, "failed to delete course", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLessons handles GET /api/courses/{courseId}/lessons
// @Summary List lessons of a course
// @Description Get the lessons of a course sorted by their order field
// @Tags lessons
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} models.Lesson
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/courses/{courseId}/lessons [get]
func (h *CatalogHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		h.respondJSON(w, http.StatusOK, []models.Lesson{})
		return
	}

	lessons, err := h.service.GetLessons(r.Context(), courseID)
	if err != nil {
		h.respondInternalError(w, r, "failed to get lessons", err)
		return
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}

	h.respondJSON(w, http.StatusOK, lessons)
}

// CreateLesson handles POST /api/courses/{courseId}/lessons
// @Summary Create lesson
// @Description Create a lesson in an existing course, type defaults to text
// @Tags lessons
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param lesson body models.CreateLessonRequest true "Lesson to create"
// @Success 201 {object} models.Lesson
// @Failure 400 {object} contract.ValidationErrorResponse
// @Failure 404 {object} contract.ErrorResponse
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/courses/{courseId}/lessons [post]
func (h *CatalogHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseId")
	if !ok {
		h.respondError(w, http.StatusNotFound, "Course not found")
		return
	}

	in, ok := h.decodeInput(w, r, contract.API.Lessons.Create)
	if !ok {
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), courseID, in.(*models.CreateLessonRequest))
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			h.respondError(w, http.StatusNotFound, "Course not found")
			return
		}
		h.respondInternalError(w, r, "failed to create lesson", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, lesson)
}

// GetLesson handles GET /api/lessons/{id}
// @Summary Get lesson by ID
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Failure 404 {object} contract.ErrorResponse
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/lessons/{id} [get]
func (h *CatalogHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.respondError(w, http.StatusNotFound, "Lesson not found")
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), id)
	if err != nil {
		h.respondInternalError(w, r, "failed to get lesson", err)
		return
	}
	if lesson == nil {
		h.respondError(w, http.StatusNotFound, "Lesson not found")
		return
	}

	h.respondJSON(w, http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /api/lessons/{id}
// @Summary Delete lesson
// @Tags lessons
// @Param id path int true "Lesson ID"
// @Success 204
// @Failure 413 {object} contract.ErrorResponse
// @Failure 429 {object} contract.ErrorResponse
// @Failure 500 {object} contract.ErrorResponse
// @Router /api/lessons/{id} [delete]
func (h *CatalogHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.service.DeleteLesson(r.Context(), id); err != nil {
		h.respondInternalError(w, r, "failed to delete lesson", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /healthz
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeInput reads the route input from the request body, answering 400 when it is invalid
func (h *CatalogHandler) decodeInput(w http.ResponseWriter, r *http.Request, route contract.Route) (contract.Input, bool) {
	in, err := route.DecodeInput(r.Body)
	if err != nil {
		var validationErr *contract.ValidationError
		if errors.As(err, &validationErr) {
			h.respondValidationError(w, validationErr)
			return nil, false
		}
		h.respondInternalError(w, r, "failed to decode request body", err)
		return nil, false
	}
	return in, true
}

// pathID parses a numeric path parameter. A value that is not an integer cannot match any row.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	return id, true
}
