// Package upstreamtest provides an in-memory upstream.API for service tests.
package upstreamtest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
)

type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Token  string
	Form   *upstream.Form
	File   []byte
}

type Handler func(call Call) ([]byte, error)

// Fake routes calls by method and exact path. Unrouted calls answer 404 and
// honour Request.NotFoundAsEmpty the way the real client does.
type Fake struct {
	mu     sync.Mutex
	routes map[string]Handler
	calls  []Call
}

func New() *Fake {
	return &Fake{routes: make(map[string]Handler)}
}

func routeKey(method, path string) string {
	return method + " " + path
}

func (f *Fake) On(method, path string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[routeKey(method, path)] = h
	return f
}

// JSON answers with v encoded as JSON on every call.
func (f *Fake) JSON(method, path string, v any) *Fake {
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return f.On(method, path, func(Call) ([]byte, error) { return body, nil })
}

// Raw answers with a literal body.
func (f *Fake) Raw(method, path, body string) *Fake {
	return f.On(method, path, func(Call) ([]byte, error) { return []byte(body), nil })
}

func (f *Fake) Fail(method, path string, status int) *Fake {
	return f.On(method, path, func(c Call) ([]byte, error) {
		return nil, &upstream.Error{Method: c.Method, Path: c.Path, Status: status}
	})
}

func (f *Fake) Do(ctx context.Context, req upstream.Request) ([]byte, error) {
	call := Call{
		Method: req.Method,
		Path:   req.Path,
		Query:  req.Query,
		Body:   req.Body,
		Token:  upstream.TokenFrom(ctx),
	}
	body, err := f.dispatch(call)
	if err != nil && req.NotFoundAsEmpty && upstream.IsNotFound(err) {
		return nil, nil
	}
	return body, err
}

func (f *Fake) Upload(ctx context.Context, path string, form upstream.Form) ([]byte, error) {
	call := Call{
		Method: http.MethodPost,
		Path:   path,
		Token:  upstream.TokenFrom(ctx),
		Form:   &form,
	}
	if form.File != nil {
		data, err := io.ReadAll(form.File)
		if err != nil {
			return nil, err
		}
		call.File = data
	}
	return f.dispatch(call)
}

func (f *Fake) dispatch(call Call) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, ok := f.routes[routeKey(call.Method, call.Path)]
	f.mu.Unlock()

	if !ok {
		return nil, &upstream.Error{Method: call.Method, Path: call.Path, Status: http.StatusNotFound}
	}
	return h(call)
}

// Count returns how many times method+path was called.
func (f *Fake) Count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) Last(method, path string) (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Method == method && f.calls[i].Path == path {
			return f.calls[i], true
		}
	}
	return Call{}, false
}
