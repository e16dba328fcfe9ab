package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	calls := 0

	r := gin.New()
	r.POST("/reimbursements", Idempotency(rdb), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": 1})
	})
	return r, mock, &calls
}

func TestIdempotency_StoresFirstResponse(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)
	key := "idemp:/reimbursements::abc"

	payload, err := json.Marshal(storedResponse{Status: http.StatusCreated, Body: json.RawMessage(`{"id":1}`)})
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSetNX(key+":lock", "locked", idempotencyLockTTL).SetVal(true)
	mock.ExpectSet(key, payload, idempotencyResultTTL).SetVal("OK")
	mock.ExpectDel(key + ":lock").SetVal(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reimbursements", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)
	key := "idemp:/reimbursements::abc"

	mock.ExpectGet(key).SetVal(`{"status":201,"body":{"id":1}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reimbursements", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
	assert.Zero(t, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicate(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)
	key := "idemp:/reimbursements::abc"

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSetNX(key+":lock", "locked", idempotencyLockTTL).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reimbursements", nil)
	req.Header.Set("Idempotency-Key", "abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_WithoutHeaderPassesThrough(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reimbursements", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
