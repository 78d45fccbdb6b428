package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursebook/backend/internal/models"
	"go.uber.org/zap"
)

// ErrCourseNotFound is returned when a lesson is created for a course that does not exist
var ErrCourseNotFound = errors.New("course not found")

// CourseRepository is the interface that wraps methods for courses table data access
type CourseRepository interface {
	// GetAll retrieves all courses in storage order.
	GetAll(ctx context.Context) ([]models.Course, error)
	// GetByID retrieves a course by its ID.
	//
	// A missing course is reported as a nil course with a nil error.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// Exists checks if a course with the given ID exists.
	Exists(ctx context.Context, id int) (bool, error)
	// Create inserts a course, filling its ID and creation time.
	Create(ctx context.Context, course *models.Course) error
	// Delete deletes a course together with its lessons.
	//
	// Deleting a missing course is not an error.
	Delete(ctx context.Context, id int) error
}

// LessonRepository is the interface that wraps methods for lessons table data access
type LessonRepository interface {
	// GetByCourseID retrieves the lessons of a course sorted ascending by order.
	GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error)
	// GetByID retrieves a lesson by its ID.
	//
	// A missing lesson is reported as a nil lesson with a nil error.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// Create inserts a lesson, filling its ID and creation time.
	Create(ctx context.Context, lesson *models.Lesson) error
	// Delete deletes a lesson. Deleting a missing lesson is not an error.
	Delete(ctx context.Context, id int) error
}

type catalogService struct {
	courses CourseRepository
	lessons LessonRepository
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service over the given repositories
func NewCatalogService(courses CourseRepository, lessons LessonRepository, logger *zap.Logger) *catalogService {
	return &catalogService{
		courses: courses,
		lessons: lessons,
		logger:  logger,
	}
}

// GetCourses retrieves all courses
func (s *catalogService) GetCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by ID, nil when it does not exist
func (s *catalogService) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// CreateCourse stores a course built from an already validated request
func (s *catalogService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	course := req.ToCourse()
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("course created", zap.Int("course_id", course.ID), zap.String("category", course.Category))
	return course, nil
}

// DeleteCourse deletes a course and its lessons
func (s *catalogService) DeleteCourse(ctx context.Context, id int) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("course deleted", zap.Int("course_id", id))
	return nil
}

// GetLessons retrieves the lessons of a course ordered by their order field
func (s *catalogService) GetLessons(ctx context.Context, courseID int) ([]models.Lesson, error) {
	lessons, err := s.lessons.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}
	return lessons, nil
}

// GetLesson retrieves a lesson by ID, nil when it does not exist
func (s *catalogService) GetLesson(ctx context.Context, id int) (*models.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return lesson, nil
}

// CreateLesson stores a lesson for an existing course from an already validated request.
//
// The course ID comes from the request path. ErrCourseNotFound is returned when the course
// does not exist at creation time.
func (s *catalogService) CreateLesson(ctx context.Context, courseID int, req *models.CreateLessonRequest) (*models.Lesson, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	req.ApplyDefaults()
	lesson := req.ToLesson(courseID)
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info("lesson created",
		zap.Int("lesson_id", lesson.ID),
		zap.Int("course_id", courseID),
		zap.String("type", string(lesson.Type)),
	)
	return lesson, nil
}

// DeleteLesson deletes a lesson
func (s *catalogService) DeleteLesson(ctx context.Context, id int) error {
	if err := s.lessons.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

// Ping checks that course storage answers
func (s *catalogService) Ping(ctx context.Context) error {
	if _, err := s.courses.Exists(ctx, 0); err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}
	return nil
}
