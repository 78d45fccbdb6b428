// Package contract is the single description of the HTTP API shared by the server and the client.
//
// Every operation is a Route: method, path template, the request body type it accepts and the
// body type carried by each status code it may answer with. The server mounts its handlers from
// this table and the client builds its requests from it, so the two cannot drift apart.
package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/coursebook/backend/internal/models"
)

// ErrUndeclaredStatus is returned when a response carries a status the route does not declare
var ErrUndeclaredStatus = errors.New("undeclared response status")

// Input is a request body type. ApplyDefaults is called right after decoding, before validation.
type Input interface {
	ApplyDefaults()
}

// Response describes the body carried by one status code of a route
type Response struct {
	Description string
	// New returns a pointer to decode the body into, nil when the status has no body.
	New func() any
}

// Route describes a single API operation
type Route struct {
	Name      string
	Method    string
	Path      string
	Input     func() Input
	Responses map[int]Response
}

// CourseRoutes groups course operations
type CourseRoutes struct {
	List   Route
	Get    Route
	Create Route
	Delete Route
}

// LessonRoutes groups lesson operations
type LessonRoutes struct {
	List   Route
	Create Route
	Get    Route
	Delete Route
}

// API is the route table of the course service
var API = struct {
	Courses CourseRoutes
	Lessons LessonRoutes
}{
	Courses: CourseRoutes{
		List: Route{
			Name:   "courses.list",
			Method: http.MethodGet,
			Path:   "/api/courses",
			Responses: withShared(map[int]Response{
				http.StatusOK: {Description: "List of courses", New: func() any { return &[]models.Course{} }},
			}),
		},
		Get: Route{
			Name:   "courses.get",
			Method: http.MethodGet,
			Path:   "/api/courses/:id",
			Responses: withShared(map[int]Response{
				http.StatusOK:       {Description: "Course", New: func() any { return &models.Course{} }},
				http.StatusNotFound: notFound,
			}),
		},
		Create: Route{
			Name:   "courses.create",
			Method: http.MethodPost,
			Path:   "/api/courses",
			Input:  func() Input { return &models.CreateCourseRequest{} },
			Responses: withShared(map[int]Response{
				http.StatusCreated:    {Description: "Created course", New: func() any { return &models.Course{} }},
				http.StatusBadRequest: validationFailed,
			}),
		},
		Delete: Route{
			Name:   "courses.delete",
			Method: http.MethodDelete,
			Path:   "/api/courses/:id",
			Responses: withShared(map[int]Response{
				http.StatusNoContent: {Description: "Course and its lessons deleted"},
			}),
		},
	},
	Lessons: LessonRoutes{
		List: Route{
			Name:   "lessons.list",
			Method: http.MethodGet,
			Path:   "/api/courses/:courseId/lessons",
			Responses: withShared(map[int]Response{
				http.StatusOK: {Description: "Lessons ordered by their order field", New: func() any { return &[]models.Lesson{} }},
			}),
		},
		Create: Route{
			Name:   "lessons.create",
			Method: http.MethodPost,
			Path:   "/api/courses/:courseId/lessons",
			Input:  func() Input { return &models.CreateLessonRequest{} },
			Responses: withShared(map[int]Response{
				http.StatusCreated:    {Description: "Created lesson", New: func() any { return &models.Lesson{} }},
				http.StatusBadRequest: validationFailed,
				http.StatusNotFound:   notFound,
			}),
		},
		Get: Route{
			Name:   "lessons.get",
			Method: http.MethodGet,
			Path:   "/api/lessons/:id",
			Responses: withShared(map[int]Response{
				http.StatusOK:       {Description: "Lesson", New: func() any { return &models.Lesson{} }},
				http.StatusNotFound: notFound,
			}),
		},
		Delete: Route{
			Name:   "lessons.delete",
			Method: http.MethodDelete,
			Path:   "/api/lessons/:id",
			Responses: withShared(map[int]Response{
				http.StatusNoContent: {Description: "Lesson deleted"},
			}),
		},
	},
}

// Routes returns every route of the table in declaration order
func Routes() []Route {
	return []Route{
		API.Courses.List,
		API.Courses.Get,
		API.Courses.Create,
		API.Courses.Delete,
		API.Lessons.List,
		API.Lessons.Create,
		API.Lessons.Get,
		API.Lessons.Delete,
	}
}

// DecodeInput decodes a request body into the route input type, applies defaults and validates it.
//
// Any decoding or validation failure is returned as *ValidationError.
func (r Route) DecodeInput(body io.Reader) (Input, error) {
	if r.Input == nil {
		return nil, fmt.Errorf("route %s does not accept a request body", r.Name)
	}

	in := r.Input()
	if err := json.NewDecoder(body).Decode(in); err != nil {
		return nil, decodeError(err)
	}
	in.ApplyDefaults()

	if err := Validate(in); err != nil {
		return nil, err
	}
	return in, nil
}

// DecodeResponse decodes a response body into the type declared for the status.
//
// It returns nil for statuses without a body and ErrUndeclaredStatus for statuses the route
// does not declare.
func (r Route) DecodeResponse(status int, body io.Reader) (any, error) {
	resp, ok := r.Responses[status]
	if !ok {
		return nil, fmt.Errorf("%w: %s answered %d", ErrUndeclaredStatus, r.Name, status)
	}
	if resp.New == nil {
		return nil, nil
	}

	v := resp.New()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", r.Name, err)
	}
	return v, nil
}

// Declares reports whether the route declares the status
func (r Route) Declares(status int) bool {
	_, ok := r.Responses[status]
	return ok
}
