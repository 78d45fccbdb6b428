package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_PairsUpAndDown(t *testing.T) {
	entries, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range entries {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestFS_LessonsSchema(t *testing.T) {
	data, err := fs.ReadFile(FS, "000002_create_lessons_table.up.sql")
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "`order` INT NOT NULL")
	assert.Contains(t, schema, "video_url VARCHAR(2048) NULL")
	assert.Contains(t, schema, "duration INT NULL")
	assert.Contains(t, schema, "INDEX idx_lessons_course_order (course_id, `order`)")
	assert.Contains(t, schema, "title VARCHAR(255) NOT NULL")
	assert.Contains(t, schema, "type VARCHAR(10) NOT NULL")
	assert.Contains(t, schema, "content MEDIUMTEXT NOT NULL")
}

func TestFS_CoursesSchema(t *testing.T) {
	data, err := fs.ReadFile(FS, "000001_create_courses_table.up.sql")
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "title VARCHAR(255) NOT NULL")
	assert.Contains(t, schema, "description MEDIUMTEXT NOT NULL")
	assert.Contains(t, schema, "category VARCHAR(100) NOT NULL")
	assert.Contains(t, schema, "created_at DATETIME(3) NOT NULL")
}
