package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newClient(t *testing.T, h http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL+"/api/", 2*time.Second, "Token")
}

func TestClient_Do(t *testing.T) {
	t.Run("attaches token and unwraps data envelope", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/hr/auth/me/", r.URL.Path)
			assert.Equal(t, "Token abc", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":7,"name":"Asha"}}`))
		})

		ctx := upstream.WithToken(context.Background(), "abc")
		got, err := upstream.GetJSON[item](ctx, c, "/hr/auth/me/", nil)
		require.NoError(t, err)
		assert.Equal(t, item{ID: 7, Name: "Asha"}, got)
	})

	t.Run("no token header without session", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":1}`))
		})

		_, err := upstream.GetJSON[item](context.Background(), c, "/hr/auth/login/", nil)
		assert.NoError(t, err)
	})

	t.Run("sends json body and query", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var payload map[string]string
			_ = json.NewDecoder(r.Body).Decode(&payload)
			assert.Equal(t, "annual", payload["leave_type"])
			_, _ = w.Write([]byte(`{"id":3,"name":"created"}`))
		})

		got, err := upstream.SendJSON[item](context.Background(), c, http.MethodPost, "/hr/leaves/", map[string]string{"leave_type": "annual"})
		require.NoError(t, err)
		assert.Equal(t, 3, got.ID)
	})

	t.Run("negative non-2xx becomes upstream error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"leave_type":["invalid choice"]}`))
		})

		_, err := upstream.GetJSON[item](context.Background(), c, "/hr/leaves/", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, upstream.StatusOf(err))

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeUpstream, httpErr.Code)
		assert.Equal(t, map[string]any{"leave_type": []any{"invalid choice"}}, httpErr.Details)
	})

	t.Run("negative 5xx maps to bad gateway", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := upstream.GetJSON[item](context.Background(), c, "/hr/leaves/", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, apperror.ToHTTP(err).Status)
	})
}

func TestClient_NotFoundAsEmpty(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	t.Run("opted in resolves to empty list", func(t *testing.T) {
		page, err := upstream.GetList[item](context.Background(), c, "/hr/users/7/skills/", nil, true)
		require.NoError(t, err)
		assert.NotNil(t, page.Results)
		assert.Empty(t, page.Results)
	})

	t.Run("negative not opted in propagates", func(t *testing.T) {
		_, err := upstream.GetList[item](context.Background(), c, "/hr/leaves/", nil, false)
		require.Error(t, err)
		assert.True(t, upstream.IsNotFound(err))
	})
}

func TestClient_Upload(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "receipt", r.FormValue("kind"))
		f, hdr, err := r.FormFile("photo")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "bill.jpg", hdr.Filename)
		assert.Equal(t, "jpegbytes", string(content))
		_, _ = w.Write([]byte(`{"id":9,"name":"bill.jpg"}`))
	})

	body, err := c.Upload(context.Background(), "/finance_management/reimbursements/9/photo/", upstream.Form{
		Fields:   map[string]string{"kind": "receipt"},
		File:     strings.NewReader("jpegbytes"),
		Field:    "photo",
		Filename: "bill.jpg",
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"id":9`)
}

func TestDecodeList(t *testing.T) {
	t.Run("paginated", func(t *testing.T) {
		page, err := upstream.DecodeList[item]([]byte(`{"count":12,"next":"n","previous":null,"results":[{"id":1}]}`))
		require.NoError(t, err)
		assert.Equal(t, 12, page.Count)
		assert.Equal(t, "n", page.Next)
		assert.Empty(t, page.Previous)
		assert.Len(t, page.Results, 1)
	})

	t.Run("plain array", func(t *testing.T) {
		page, err := upstream.DecodeList[item]([]byte(`[{"id":1},{"id":2}]`))
		require.NoError(t, err)
		assert.Equal(t, 2, page.Count)
		assert.Len(t, page.Results, 2)
	})

	t.Run("empty body", func(t *testing.T) {
		page, err := upstream.DecodeList[item](nil)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)
		assert.NotNil(t, page.Results)
	})

	t.Run("negative garbage", func(t *testing.T) {
		_, err := upstream.DecodeList[item]([]byte(`"nope"`))
		assert.Error(t, err)
	})
}
