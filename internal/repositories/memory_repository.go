package repositories

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/coursebook/backend/internal/models"
)

// MemoryStore keeps courses and lessons in process memory.
// It mirrors the MySQL repositories and is used for local runs and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	courses      map[int]models.Course
	lessons      map[int]models.Lesson
	nextCourseID int
	nextLessonID int
	now          func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses:      make(map[int]models.Course),
		lessons:      make(map[int]models.Lesson),
		nextCourseID: 1,
		nextLessonID: 1,
		now:          currentTime,
	}
}

// Courses returns the course repository view of the store
func (s *MemoryStore) Courses() *memoryCourseRepository {
	return &memoryCourseRepository{store: s}
}

// Lessons returns the lesson repository view of the store
func (s *MemoryStore) Lessons() *memoryLessonRepository {
	return &memoryLessonRepository{store: s}
}

type memoryCourseRepository struct {
	store *MemoryStore
}

func (r *memoryCourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	courses := make([]models.Course, 0, len(r.store.courses))
	for _, course := range r.store.courses {
		courses = append(courses, course)
	}
	slices.SortFunc(courses, func(a, b models.Course) int { return cmp.Compare(a.ID, b.ID) })
	return courses, nil
}

func (r *memoryCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	course, ok := r.store.courses[id]
	if !ok {
		return nil, nil
	}
	return &course, nil
}

func (r *memoryCourseRepository) Exists(ctx context.Context, id int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.courses[id]
	return ok, nil
}

func (r *memoryCourseRepository) Create(ctx context.Context, course *models.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course.ID = r.store.nextCourseID
	course.CreatedAt = r.store.now()
	r.store.nextCourseID++
	r.store.courses[course.ID] = *course
	return nil
}

// Delete removes the course and its lessons under a single lock
func (r *memoryCourseRepository) Delete(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.courses, id)
	for lessonID, lesson := range r.store.lessons {
		if lesson.CourseID == id {
			delete(r.store.lessons, lessonID)
		}
	}
	return nil
}

type memoryLessonRepository struct {
	store *MemoryStore
}

func (r *memoryLessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lessons := []models.Lesson{}
	for _, lesson := range r.store.lessons {
		if lesson.CourseID == courseID {
			lessons = append(lessons, lesson.Clone())
		}
	}
	slices.SortFunc(lessons, func(a, b models.Lesson) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
	})
	return lessons, nil
}

func (r *memoryLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lesson, ok := r.store.lessons[id]
	if !ok {
		return nil, nil
	}
	cp := lesson.Clone()
	return &cp, nil
}

func (r *memoryLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	lesson.ID = r.store.nextLessonID
	lesson.CreatedAt = r.store.now()
	r.store.nextLessonID++
	r.store.lessons[lesson.ID] = lesson.Clone()
	return nil
}

func (r *memoryLessonRepository) Delete(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.lessons, id)
	return nil
}
