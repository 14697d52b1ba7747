package video

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoportfolio/internal/domain"
	"videoportfolio/internal/pkg/filestore"
	"videoportfolio/internal/repository"
)

func setupRouter(t *testing.T, maxUpload int64) (*gin.Engine, *filestore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	h := NewHandler(NewService(repository.NewVideoRepository(setupTestDB(t)), files, maxUpload, "/uploads"))

	r := gin.New()
	api := r.Group("/api")
	h.RegisterPublicRoutes(api)
	h.RegisterProtectedRoutes(api)
	return r, files
}

// multipartBody builds an upload form; an empty filename leaves the file part out.
func multipartBody(t *testing.T, fields map[string]string, filename, mediaType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="video"; filename="%s"`, filename))
		header.Set("Content-Type", mediaType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func doUpload(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/videos/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestHandler_UploadListDelete(t *testing.T) {
	r, files := setupRouter(t, testMaxUpload)

	body, ct := multipartBody(t, map[string]string{
		"title": "Teaser", "description": "Festival teaser", "category": "Teasers", "featured": "true",
	}, "teaser.mov", "video/quicktime", []byte("moov"))
	w := doUpload(r, body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "teaser.mov", created.OriginalName)
	assert.Equal(t, domain.CategoryTeasers, created.Category)
	assert.True(t, created.Featured)
	assert.True(t, strings.HasPrefix(created.URL, "/uploads/video-"))
	assert.True(t, files.Exists(created.Filename))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos/featured", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var featured []domain.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, created.ID, featured[0].ID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/videos/"+created.ID, strings.NewReader(`{"title":"Renamed","unknown":"ignored"}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"title":"Renamed"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/videos/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Video deleted successfully"}`, w.Body.String())
	assert.False(t, files.Exists(created.Filename))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/videos/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_UploadRejections(t *testing.T) {
	r, _ := setupRouter(t, 1024)
	meta := map[string]string{"title": "t", "description": "d"}

	t.Run("no file", func(t *testing.T) {
		body, ct := multipartBody(t, meta, "", "", nil)
		w := doUpload(r, body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "NO_FILE", errorCode(t, w))
	})

	t.Run("not multipart", func(t *testing.T) {
		w := doUpload(r, bytes.NewBufferString(`{"title":"t"}`), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "NO_FILE", errorCode(t, w))
	})

	t.Run("image", func(t *testing.T) {
		body, ct := multipartBody(t, meta, "cat.png", "image/png", []byte("png"))
		w := doUpload(r, body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", errorCode(t, w))
	})

	t.Run("missing title", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"description": "d"}, "a.mp4", "video/mp4", []byte("x"))
		w := doUpload(r, body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("file over limit", func(t *testing.T) {
		body, ct := multipartBody(t, meta, "a.mp4", "video/mp4", make([]byte, 4096))
		w := doUpload(r, body, ct)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "FILE_TOO_LARGE", errorCode(t, w))
	})

	t.Run("request over limit", func(t *testing.T) {
		body, ct := multipartBody(t, meta, "a.mp4", "video/mp4", make([]byte, 2*multipartOverhead))
		w := doUpload(r, body, ct)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "FILE_TOO_LARGE", errorCode(t, w))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_UpdateUnknownVideo(t *testing.T) {
	r, _ := setupRouter(t, testMaxUpload)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/videos/nope", strings.NewReader(`{"title":"x"}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}
