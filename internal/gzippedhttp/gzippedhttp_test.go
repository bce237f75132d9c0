package gzippedhttp

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipResponse(t *testing.T) {
	handler := GzipResponse(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		res.Header().Set("Content-Type", "text/html")
		_, _ = res.Write([]byte("<h2>User List</h2>"))
	}))

	t.Run("client accepts gzip", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/users", nil)
		request.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(recorder.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, "<h2>User List</h2>", string(body))
	})

	t.Run("client does not accept gzip", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/users", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Empty(t, recorder.Header().Get("Content-Encoding"))
		assert.Equal(t, "<h2>User List</h2>", recorder.Body.String())
	})
}
