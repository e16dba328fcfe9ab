// Package upstream is the HTTP client for the Sarvagun HR API that sits
// behind the gateway. It attaches the session token, unwraps response
// envelopes and turns non-2xx answers into *Error values.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/contextutil"

	"go.uber.org/zap"
)

type API interface {
	Do(ctx context.Context, req Request) ([]byte, error)
	Upload(ctx context.Context, path string, form Form) ([]byte, error)
}

// Request describes one call. Path is relative to the base URL and keeps
// the HR API's trailing slash, e.g. "/hr/leaves/".
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// NotFoundAsEmpty makes a 404 resolve to an empty body instead of an
	// error. Only optional profile sub-resources set it.
	NotFoundAsEmpty bool
}

type Form struct {
	Fields   map[string]string
	File     io.Reader
	Field    string
	Filename string
}

type Client struct {
	baseURL    string
	authScheme string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, authScheme string, logger ...*zap.Logger) *Client {
	l := zap.L().Named("upstream.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("upstream.client")
	}
	if authScheme == "" {
		authScheme = "Token"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authScheme: authScheme,
		httpClient: &http.Client{Timeout: timeout},
		logger:     l,
	}
}

func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode upstream request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.url(r.Path, r.Query), body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	respBody, err := c.send(ctx, req, r.Path)
	if err != nil {
		if r.NotFoundAsEmpty && IsNotFound(err) {
			c.logger.Debug("upstream not found treated as empty",
				zap.String("request_id", contextutil.GetRequestID(ctx)),
				zap.String("path", r.Path),
			)
			return nil, nil
		}
		return nil, err
	}
	return respBody, nil
}

func (c *Client) Upload(ctx context.Context, path string, form Form) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range form.Fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write multipart field %s: %w", k, err)
		}
	}
	if form.File != nil {
		field := form.Field
		if field == "" {
			field = "file"
		}
		part, err := mw.CreateFormFile(field, form.Filename)
		if err != nil {
			return nil, fmt.Errorf("create multipart file: %w", err)
		}
		if _, err := io.Copy(part, form.File); err != nil {
			return nil, fmt.Errorf("copy multipart file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("build upstream upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(ctx, req, path)
}

func (c *Client) send(ctx context.Context, req *http.Request, path string) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", c.authScheme+" "+token)
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("upstream %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	c.logger.Debug("upstream request",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Method: req.Method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   respBody,
		}
	}
	return unwrapEnvelope(respBody), nil
}

func (c *Client) url(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// unwrapEnvelope strips the {"success":..,"data":..,"message":..} wrapper
// some HR endpoints use. Paginated bodies and plain objects pass through.
func unwrapEnvelope(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return trimmed
	}
	data, ok := obj["data"]
	if !ok {
		return trimmed
	}
	for k := range obj {
		switch k {
		case "data", "success", "message", "status":
		default:
			return trimmed
		}
	}
	return data
}
