package contract

import "net/http"

// ErrorResponse is the body of not-found, size, rate-limit and internal error responses
type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse is the body of a 400 response.
// Field is the dotted path of the first failing field, when there is one.
type ValidationErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var (
	notFound = Response{
		Description: "Not found",
		New:         func() any { return &ErrorResponse{} },
	}
	validationFailed = Response{
		Description: "Validation failed",
		New:         func() any { return &ValidationErrorResponse{} },
	}
	tooLarge = Response{
		Description: "Request body too large",
		New:         func() any { return &ErrorResponse{} },
	}
	rateLimited = Response{
		Description: "Too many requests",
		New:         func() any { return &ErrorResponse{} },
	}
	internalError = Response{
		Description: "Internal server error",
		New:         func() any { return &ErrorResponse{} },
	}
)

// withShared adds the responses the middleware chain may answer any route with
func withShared(responses map[int]Response) map[int]Response {
	responses[http.StatusRequestEntityTooLarge] = tooLarge
	responses[http.StatusTooManyRequests] = rateLimited
	responses[http.StatusInternalServerError] = internalError
	return responses
}
