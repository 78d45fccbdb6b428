package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursebook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	repo := NewCourseRepository(db, logger)
	repo.now = func() time.Time { return fixedTime }

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewCourseRepository(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	db := &sql.DB{}

	repo := NewCourseRepository(db, logger)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, logger, repo.logger)
	assert.NotNil(t, repo.now)
}

func TestCurrentTime_MillisecondPrecision(t *testing.T) {
	now := currentTime()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestCourseRepository_GetAll(t *testing.T) {
	columns := []string{"id", "title", "description", "category", "created_at"}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, "Intro", "d", "Programming", fixedTime).
					AddRow(2, "Calculus I", "limits", "Mathematics", fixedTime)
				mock.ExpectQuery(`SELECT id, title, description, category, created_at FROM courses ORDER BY id`).
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "empty result",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, category, created_at FROM courses`).
					WillReturnRows(sqlmock.NewRows(columns))
			},
			expectedCount: 0,
		},
		{
			name: "database query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, category, created_at FROM courses`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("invalid", "Intro", "d", "Programming", fixedTime)
				mock.ExpectQuery(`SELECT id, title, description, category, created_at FROM courses`).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
		{
			name: "rows iteration error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, "Intro", "d", "Programming", fixedTime).
					RowError(0, errors.New("row error"))
				mock.ExpectQuery(`SELECT id, title, description, category, created_at FROM courses`).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetAll(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetByID(t *testing.T) {
	columns := []string{"id", "title", "description", "category", "created_at"}

	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedNil   bool
	}{
		{
			name: "success",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).AddRow(1, "Intro", "d", "Programming", fixedTime)
				mock.ExpectQuery(`SELECT id, title, description, category, created_at FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(rows)
			},
		},
		{
			name: "course not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM courses WHERE id = \?`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedNil: true,
		},
		{
			name: "database error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "failed to get course by id")
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, "Intro", result.Title)
				assert.Equal(t, fixedTime, result.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Exists(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM courses WHERE id = \?\)`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM courses WHERE id = \?\)`).
		WithArgs(6).
		WillReturnError(errors.New("database error"))

	exists, err := repo.Exists(context.Background(), 5)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), 6)
	assert.Error(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses \(title, description, category, created_at\)`).
					WithArgs("Intro", "d", "Programming", fixedTime).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			errorContains: "failed to create course",
		},
		{
			name: "last insert id error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO courses`).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no id")))
			},
			expectedError: true,
			errorContains: "failed to get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			course := &models.Course{Title: "Intro", Description: "d", Category: "Programming"}
			err := repo.Create(context.Background(), course)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Zero(t, course.ID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 42, course.ID)
				assert.Equal(t, fixedTime, course.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "deletes course and its lessons",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM lessons WHERE course_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
		},
		{
			name: "missing course is a no-op",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM lessons WHERE course_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
		},
		{
			name: "begin error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection lost"))
			},
			expectedError: true,
			errorContains: "failed to begin transaction",
		},
		{
			name: "course delete error rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
			errorContains: "failed to delete course",
		},
		{
			name: "lesson delete error rolls back course delete",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM lessons WHERE course_id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
			errorContains: "failed to delete course lessons",
		},
		{
			name: "commit error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM courses WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`DELETE FROM lessons WHERE course_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("commit failed"))
			},
			expectedError: true,
			errorContains: "failed to commit course deletion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
