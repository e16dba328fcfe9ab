package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the HR API.
type Error struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *Error) UpstreamStatus() int {
	return e.Status
}

// UpstreamDetails returns the decoded error body so field errors from the
// HR API reach the app unchanged.
func (e *Error) UpstreamDetails() any {
	if len(e.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(e.Body, &v); err != nil {
		return string(e.Body)
	}
	return v
}

func StatusOf(err error) int {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
