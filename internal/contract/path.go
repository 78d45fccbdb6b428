package contract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingPathParam is returned when a path placeholder has no value
var ErrMissingPathParam = errors.New("missing path parameter")

// BuildPath substitutes the ":name" placeholders of a path template with the given values.
//
// Values are formatted with fmt and path-escaped. Parameters without a matching placeholder are
// ignored; a placeholder without a parameter is an error.
func BuildPath(path string, params map[string]any) (string, error) {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		name, ok := placeholder(segment)
		if !ok {
			continue
		}
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("%w %q in %s", ErrMissingPathParam, name, path)
		}
		segments[i] = url.PathEscape(fmt.Sprint(value))
	}
	return strings.Join(segments, "/"), nil
}

// URL builds the concrete request path of the route
func (r Route) URL(params map[string]any) (string, error) {
	return BuildPath(r.Path, params)
}

// Pattern returns the route path in chi syntax ("/api/courses/{id}")
func (r Route) Pattern() string {
	segments := strings.Split(r.Path, "/")
	for i, segment := range segments {
		if name, ok := placeholder(segment); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

// Params returns the placeholder names of the route path in order
func (r Route) Params() []string {
	var names []string
	for _, segment := range strings.Split(r.Path, "/") {
		if name, ok := placeholder(segment); ok {
			names = append(names, name)
		}
	}
	return names
}

func placeholder(segment string) (string, bool) {
	if len(segment) < 2 || segment[0] != ':' {
		return "", false
	}
	return segment[1:], true
}
