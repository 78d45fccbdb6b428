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

type lessonRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB, logger *zap.Logger) *lessonRepository {
	return &lessonRepository{
		db:     db,
		logger: logger,
		now:    currentTime,
	}
}

const lessonColumns = "id, course_id, title, type, content, video_url, `order`, duration, created_at"

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLesson(row rowScanner) (models.Lesson, error) {
	var (
		lesson   models.Lesson
		videoURL sql.NullString
		duration sql.NullInt64
	)
	err := row.Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Type,
		&lesson.Content,
		&videoURL,
		&lesson.Order,
		&duration,
		&lesson.CreatedAt,
	)
	if err != nil {
		return models.Lesson{}, err
	}

	if videoURL.Valid {
		lesson.VideoURL = &videoURL.String
	}
	if duration.Valid {
		d := int(duration.Int64)
		lesson.Duration = &d
	}
	return lesson, nil
}

// GetByCourseID retrieves all lessons for a course, sorted by order
func (r *lessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE course_id = ?
		ORDER BY ` + "`order`" + `, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		r.logger.Error("failed to query lessons", zap.Error(err), zap.Int("course_id", courseID))
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			r.logger.Error("failed to scan lesson", zap.Error(err))
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetByID retrieves a lesson by its ID.
// A missing lesson is not an error: both return values are nil.
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	lesson, err := scanLesson(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to query lesson by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// Create inserts a lesson and fills its ID and creation time
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (course_id, title, type, content, video_url, ` + "`order`" + `, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := r.now()
	result, err := r.db.ExecContext(ctx, query,
		lesson.CourseID,
		lesson.Title,
		lesson.Type,
		lesson.Content,
		lesson.VideoURL,
		lesson.Order,
		lesson.Duration,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	lesson.CreatedAt = createdAt
	return nil
}

// Delete deletes a lesson by ID. Deleting a lesson that does not exist is a no-op.
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM lessons WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	return nil
}
