package contract

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coursebook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInput_CreateCourse(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedField string
		expectedError bool
	}{
		{
			name: "valid course",
			body: `{"title":"Intro","description":"d","category":"Programming"}`,
		},
		{
			name: "empty description and category are allowed",
			body: `{"title":"Intro","description":"","category":""}`,
		},
		{
			name:          "empty title",
			body:          `{"title":"","description":"d","category":"Programming"}`,
			expectedField: "title",
			expectedError: true,
		},
		{
			name:          "missing title reported before other fields",
			body:          `{}`,
			expectedField: "title",
			expectedError: true,
		},
		{
			name:          "missing description",
			body:          `{"title":"Intro","category":"Programming"}`,
			expectedField: "description",
			expectedError: true,
		},
		{
			name:          "missing category",
			body:          `{"title":"Intro","description":"d"}`,
			expectedField: "category",
			expectedError: true,
		},
		{
			name:          "title longer than its column",
			body:          `{"title":"` + strings.Repeat("a", 256) + `","description":"d","category":"c"}`,
			expectedField: "title",
			expectedError: true,
		},
		{
			name:          "category longer than its column",
			body:          `{"title":"Intro","description":"d","category":"` + strings.Repeat("c", 101) + `"}`,
			expectedField: "category",
			expectedError: true,
		},
		{
			name:          "wrong type",
			body:          `{"title":5,"description":"d","category":"c"}`,
			expectedField: "title",
			expectedError: true,
		},
		{
			name:          "malformed json",
			body:          `{"title":`,
			expectedField: "",
			expectedError: true,
		},
		{
			name:          "empty body",
			body:          ``,
			expectedField: "",
			expectedError: true,
		},
		{
			name:          "array body",
			body:          `[]`,
			expectedField: "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := API.Courses.Create.DecodeInput(strings.NewReader(tt.body))

			if tt.expectedError {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.expectedField, vErr.Field)
				assert.NotEmpty(t, vErr.Message)
				assert.Nil(t, in)
				return
			}
			require.NoError(t, err)
			_, ok := in.(*models.CreateCourseRequest)
			assert.True(t, ok)
		})
	}
}

func TestDecodeInput_CreateLesson(t *testing.T) {
	t.Run("type defaults to text", func(t *testing.T) {
		in, err := API.Lessons.Create.DecodeInput(strings.NewReader(`{"title":"L1","order":1,"duration":10}`))
		require.NoError(t, err)
		req := in.(*models.CreateLessonRequest)
		assert.Equal(t, models.LessonTypeText, req.Type)
		assert.Nil(t, req.VideoURL)
		require.NotNil(t, req.Order)
		assert.Equal(t, 1, *req.Order)
	})

	t.Run("video without url is accepted", func(t *testing.T) {
		in, err := API.Lessons.Create.DecodeInput(strings.NewReader(`{"title":"V","type":"video","order":2}`))
		require.NoError(t, err)
		req := in.(*models.CreateLessonRequest)
		assert.Equal(t, models.LessonTypeVideo, req.Type)
		assert.Nil(t, req.VideoURL)
	})

	t.Run("empty video url becomes null", func(t *testing.T) {
		in, err := API.Lessons.Create.DecodeInput(strings.NewReader(`{"title":"V","type":"video","videoUrl":"","order":2}`))
		require.NoError(t, err)
		assert.Nil(t, in.(*models.CreateLessonRequest).VideoURL)
	})

	t.Run("zero order is valid", func(t *testing.T) {
		_, err := API.Lessons.Create.DecodeInput(strings.NewReader(`{"title":"L0","order":0}`))
		assert.NoError(t, err)
	})

	t.Run("courseId in body is ignored", func(t *testing.T) {
		_, err := API.Lessons.Create.DecodeInput(strings.NewReader(`{"title":"L1","order":1,"courseId":99}`))
		assert.NoError(t, err)
	})

	failures := []struct {
		name          string
		body          string
		expectedField string
	}{
		{"missing title", `{"order":1}`, "title"},
		{"missing order", `{"title":"L1"}`, "order"},
		{"unknown type", `{"title":"L1","type":"audio","order":1}`, "type"},
		{"order not an integer", `{"title":"L1","order":"first"}`, "order"},
		{"duration not an integer", `{"title":"L1","order":1,"duration":1.5}`, "duration"},
		{"order above int32", `{"title":"L1","order":2147483648}`, "order"},
		{"order below int32", `{"title":"L1","order":-2147483649}`, "order"},
		{"duration above int32", `{"title":"L1","order":1,"duration":9999999999}`, "duration"},
		{"title too long", `{"title":"` + strings.Repeat("a", 256) + `","order":1}`, "title"},
		{"video url too long", `{"title":"V","type":"video","videoUrl":"` + strings.Repeat("v", 2049) + `","order":1}`, "videoUrl"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := API.Lessons.Create.DecodeInput(strings.NewReader(tt.body))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.expectedField, vErr.Field)
		})
	}
}

func TestDecodeInput_ColumnLimits(t *testing.T) {
	t.Run("values at the limits are accepted", func(t *testing.T) {
		body := `{"title":"` + strings.Repeat("é", 255) + `","order":2147483647,"duration":-2147483648}`
		_, err := API.Lessons.Create.DecodeInput(strings.NewReader(body))
		assert.NoError(t, err)
	})

	messages := []struct {
		name            string
		route           Route
		body            string
		expectedMessage string
	}{
		{"string length", API.Courses.Create, `{"title":"t","description":"d","category":"` + strings.Repeat("c", 101) + `"}`, "category must be at most 100 characters"},
		{"integer maximum", API.Lessons.Create, `{"title":"t","order":2147483648}`, "order must be at most 2147483647"},
		{"integer minimum", API.Lessons.Create, `{"title":"t","order":1,"duration":-2147483649}`, "duration must be at least -2147483648"},
	}
	for _, tt := range messages {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.route.DecodeInput(strings.NewReader(tt.body))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.expectedMessage, vErr.Message)
		})
	}
}

func TestDecodeInput_RouteWithoutInput(t *testing.T) {
	_, err := API.Courses.List.DecodeInput(strings.NewReader(`{}`))
	assert.Error(t, err)
}

func TestValidationError_Response(t *testing.T) {
	err := &ValidationError{Message: "title is required", Field: "title"}
	assert.Equal(t, "title: title is required", err.Error())
	assert.Equal(t, ValidationErrorResponse{Message: "title is required", Field: "title"}, err.Response())

	noField := &ValidationError{Message: "request body must be valid JSON"}
	assert.Equal(t, "request body must be valid JSON", noField.Error())
}

func TestDecodeInput_BodyTooLarge(t *testing.T) {
	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(`{"title":"a long enough title"}`)), 8)

	_, err := API.Courses.Create.DecodeInput(body)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "request body too large", validationErr.Message)
	assert.Empty(t, validationErr.Field)
}
