package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPath(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		params        map[string]any
		expected      string
		expectedError bool
	}{
		{
			name:     "single placeholder",
			path:     "/api/courses/:id",
			params:   map[string]any{"id": 42},
			expected: "/api/courses/42",
		},
		{
			name:     "nested placeholder",
			path:     "/api/courses/:courseId/lessons",
			params:   map[string]any{"courseId": 7},
			expected: "/api/courses/7/lessons",
		},
		{
			name:     "no placeholders",
			path:     "/api/courses",
			params:   nil,
			expected: "/api/courses",
		},
		{
			name:     "extra params are ignored",
			path:     "/api/lessons/:id",
			params:   map[string]any{"id": 3, "courseId": 9},
			expected: "/api/lessons/3",
		},
		{
			name:     "value is escaped",
			path:     "/api/lessons/:id",
			params:   map[string]any{"id": "a/b c"},
			expected: "/api/lessons/a%2Fb%20c",
		},
		{
			name:     "similar names are not confused",
			path:     "/api/courses/:courseId/lessons",
			params:   map[string]any{"course": 1, "courseId": 2},
			expected: "/api/courses/2/lessons",
		},
		{
			name:          "missing placeholder value",
			path:          "/api/courses/:courseId/lessons",
			params:        map[string]any{"id": 1},
			expectedError: true,
		},
		{
			name:          "nil params with placeholder",
			path:          "/api/courses/:id",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BuildPath(tt.path, tt.params)

			if tt.expectedError {
				assert.ErrorIs(t, err, ErrMissingPathParam)
				assert.Empty(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRoute_Pattern(t *testing.T) {
	assert.Equal(t, "/api/courses", API.Courses.List.Pattern())
	assert.Equal(t, "/api/courses/{id}", API.Courses.Get.Pattern())
	assert.Equal(t, "/api/courses/{courseId}/lessons", API.Lessons.Create.Pattern())
	assert.Equal(t, "/api/lessons/{id}", API.Lessons.Delete.Pattern())
}

func TestRoute_Params(t *testing.T) {
	assert.Nil(t, API.Courses.List.Params())
	assert.Equal(t, []string{"courseId"}, API.Lessons.List.Params())
	assert.Equal(t, []string{"id"}, API.Lessons.Get.Params())
}
