package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjectStore) UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.failPut {
		return errors.New("bucket unavailable")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = b
	f.types[key] = contentType
	return nil
}

func (f *fakeObjectStore) DownloadFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	b, ok := f.objects[key]
	if !ok {
		return nil, "", errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(b)), f.types[key], nil
}

func (f *fakeObjectStore) GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "http://minio.local/donation-images/" + key + "?X-Amz-Expires=" + expires.String(), nil
}

func multipartBody(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func newUploadRouter(store ObjectStore) *gin.Engine {
	r := gin.New()
	NewUploadHandler(store).Register(r.Group("/api/v1"))
	return r
}

func TestUpload_StoresImage(t *testing.T) {
	store := newFakeObjectStore()
	r := newUploadRouter(store)

	body, ct := multipartBody(t, "Avatar.PNG", "image/png", []byte("\x89PNG fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode(t, w)
	key := got["key"].(string)
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Contains(t, got["url"], key)
	assert.Equal(t, []byte("\x89PNG fake"), store.objects[key])

	w = get(r, "/api/v1/uploads/"+key)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG fake", w.Body.String())
}

func TestUpload_Rejections(t *testing.T) {
	store := newFakeObjectStore()
	r := newUploadRouter(store)

	body, ct := multipartBody(t, "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	store.failPut = true
	body, ct = multipartBody(t, "a.jpg", "image/jpeg", []byte("jpg"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = get(r, "/api/v1/uploads/missing.png")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
