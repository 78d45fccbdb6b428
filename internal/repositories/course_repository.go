package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursebook/backend/internal/models"
	"go.uber.org/zap"
)

type courseRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB, logger *zap.Logger) *courseRepository {
	return &courseRepository{
		db:     db,
		logger: logger,
		now:    currentTime,
	}
}

// currentTime returns the creation timestamp stored for new rows.
// Columns are DATETIME(3), so the value is truncated to milliseconds to round-trip unchanged.
func currentTime() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// GetAll retrieves all courses in storage order
func (r *courseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT id, title, description, category, created_at
		FROM courses
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query courses", zap.Error(err))
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.Category,
			&course.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan course", zap.Error(err))
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course by its ID.
// A missing course is not an error: both return values are nil.
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, title, description, category, created_at
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to query course by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// Exists checks if a course with the given ID exists
func (r *courseRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM courses WHERE id = ?)"
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}

// Create inserts a course and fills its ID and creation time
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, category, created_at)
		VALUES (?, ?, ?, ?)
	`

	createdAt := r.now()
	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.Category,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	course.CreatedAt = createdAt
	return nil
}

// Delete deletes a course and every lesson that belongs to it in one transaction.
// Deleting a course that does not exist is a no-op.
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM lessons WHERE course_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete course lessons: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit course deletion: %w", err)
	}

	if removed, err := result.RowsAffected(); err == nil && removed > 0 {
		r.logger.Debug("deleted course lessons", zap.Int("course_id", id), zap.Int64("lessons", removed))
	}

	return nil
}
