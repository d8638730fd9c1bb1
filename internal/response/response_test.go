package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc, reqID string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess_MergesPayload(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		Success(c, http.StatusOK, "ok", gin.H{"count": 3, "success": false})
	}, "req-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, float64(3), body["count"])
	assert.NotContains(t, body, "code")

	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "req-1", meta["request_id"])
	assert.NotEmpty(t, meta["timestamp"])
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}

func TestFailField(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		FailField(c, http.StatusConflict, ErrDuplicate, "email", "Email is already registered.")
	}, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "DUPLICATE_ENTRY", body["code"])
	assert.Equal(t, "email", body["field"])
	assert.Equal(t, "Email is already registered.", body["message"])
}

func TestFail_NoField(t *testing.T) {
	_, body := serve(t, func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrNotFound)
	}, "")

	assert.Equal(t, GetMessage(ErrNotFound), body["message"])
	assert.NotContains(t, body, "field")
}

func TestAbortFail_StopsChain(t *testing.T) {
	r := gin.New()
	reached := false
	r.GET("/", func(c *gin.Context) { AbortFail(c, http.StatusUnauthorized, ErrUnauthorized) }, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestRequestIDMiddleware_ReplacesUnsafeIDs(t *testing.T) {
	for _, id := range []string{strings.Repeat("a", 65), "has space"} {
		w, body := serve(t, func(c *gin.Context) { Success(c, http.StatusOK, "ok", nil) }, id)

		got := w.Header().Get("X-Request-ID")
		assert.NotEqual(t, id, got)
		assert.Len(t, got, 36)
		assert.Equal(t, got, body["metadata"].(map[string]any)["request_id"])
	}
}
