package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multimodal-server/internal/domain/dto"
	Iservices "multimodal-server/internal/domain/interfaces/services"
	"multimodal-server/internal/infra/handlers"
	"multimodal-server/internal/infra/logger"
	"multimodal-server/internal/infra/repository"
	"multimodal-server/internal/infra/routes"
	"multimodal-server/internal/infra/services"
)

func newTestRouter(t *testing.T, maxFileSize int64) (*mux.Router, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	root := filepath.Join(string(filepath.Separator), "uploads")
	require.NoError(t, fs.MkdirAll(root, 0o750))

	log := logger.NewLogger(context.Background(), "error", false)
	store := repository.NewLocalStore(fs, root)

	var uploadSvc Iservices.IUploadService = services.NewUploadService(store, log, maxFileSize)
	var metadataSvc Iservices.IUserMetadataService = services.NewUserMetadataService(store, log, maxFileSize)

	router := mux.NewRouter()
	r := routes.NewRoutes(
		router,
		handlers.NewUploadHandlers(log, uploadSvc),
		handlers.NewUserMetadataHandlers(log, metadataSvc),
		dto.ServerInfo{
			Message: "Multimedia Upload Server",
			Version: "1.0.0",
			Config:  dto.ServerConfig{MaxFileSize: "100 MiB", UploadDir: "./uploads", ExternalURL: "http://localhost:3333"},
		},
		store.HTTPFileSystem(),
	)
	r.Init()

	return router, fs
}

type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartBody(t *testing.T) *multipartBody {
	b := &multipartBody{}
	b.writer = multipart.NewWriter(&b.buf)
	t.Cleanup(func() { _ = b.writer.Close() })
	return b
}

func (b *multipartBody) addFile(t *testing.T, field, name string, content []byte) {
	part, err := b.writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
}

func (b *multipartBody) request(t *testing.T, target string) *http.Request {
	require.NoError(t, b.writer.Close())
	req := httptest.NewRequest(http.MethodPost, target, &b.buf)
	req.Header.Set("Content-Type", b.writer.FormDataContentType())
	return req
}

func withIdentity(req *http.Request) *http.Request {
	req.Header.Set("X-User-ID", "user1")
	req.Header.Set("X-Session-ID", "sess1")
	req.Header.Set("X-Turn-ID", "turn1")
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUploadEndpoint(t *testing.T) {
	t.Run("stores files and answers 201", func(t *testing.T) {
		router, fs := newTestRouter(t, 1<<20)

		body := newMultipartBody(t)
		body.addFile(t, "video", "clip.mp4", []byte("video-bytes"))
		body.addFile(t, "utterance", "turn.json", []byte(`{"text":"hello"}`))
		req := withIdentity(body.request(t, "/api/upload"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		resp := decodeBody[struct {
			Success bool           `json:"success"`
			Message string         `json:"message"`
			Data    dto.UploadData `json:"data"`
		}](t, rec)

		assert.True(t, resp.Success)
		assert.Equal(t, "Files uploaded successfully", resp.Message)
		assert.Equal(t, "user1", resp.Data.UserID)
		assert.Equal(t, 2, resp.Data.FileCount)
		assert.Contains(t, resp.Data.UploadedFiles, "video")
		assert.Contains(t, resp.Data.UploadedFiles, "utterance")

		exists, err := afero.Exists(fs, resp.Data.UploadedFiles["video"].Path)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing identity header answers 400 even with valid files", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		body := newMultipartBody(t)
		body.addFile(t, "video", "clip.mp4", []byte("video-bytes"))
		req := body.request(t, "/api/upload")
		req.Header.Set("X-User-ID", "user1")
		// session and turn headers intentionally absent

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Missing required parameters", resp.Error)
		assert.Contains(t, resp.Message, "X-Session-ID")
	})

	t.Run("identity headers are case-insensitive", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		body := newMultipartBody(t)
		body.addFile(t, "audio", "take.wav", []byte("audio"))
		req := body.request(t, "/api/upload")
		req.Header.Set("x-user-id", "user1")
		req.Header.Set("x-session-id", "sess1")
		req.Header.Set("x-turn-id", "turn1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("disallowed extension answers 400", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		body := newMultipartBody(t)
		body.addFile(t, "audio", "take.flac", []byte("audio"))
		req := withIdentity(body.request(t, "/api/upload"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Invalid file type", resp.Error)
	})

	t.Run("oversize file answers 413", func(t *testing.T) {
		router, _ := newTestRouter(t, 8)

		body := newMultipartBody(t)
		body.addFile(t, "video", "clip.mp4", []byte("more than eight bytes"))
		req := withIdentity(body.request(t, "/api/upload"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		resp := decodeBody[dto.ErrorResponse](t, rec)
		assert.Equal(t, "File too large", resp.Error)
	})
}

func TestUserMetadataEndpoint(t *testing.T) {
	t.Run("inline fields answer 201", func(t *testing.T) {
		router, fs := newTestRouter(t, 1<<20)

		form := url.Values{}
		form.Set("gender", "female")
		form.Set("age", "34")
		req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-User-ID", "user1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeBody[struct {
			Success bool             `json:"success"`
			Data    dto.MetadataData `json:"data"`
		}](t, rec)
		assert.Equal(t, dto.MetadataSourceInline, resp.Data.Source)

		exists, err := afero.Exists(fs, resp.Data.MetadataPath)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("uploaded file wins over inline fields", func(t *testing.T) {
		router, fs := newTestRouter(t, 1<<20)

		body := newMultipartBody(t)
		body.addFile(t, "metadata", "intake.json", []byte(`{"gender":"male","age":52}`))
		require.NoError(t, body.writer.WriteField("age", "200"))
		req := body.request(t, "/api/user")
		req.Header.Set("X-User-ID", "user1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeBody[struct {
			Data dto.MetadataData `json:"data"`
		}](t, rec)
		assert.Equal(t, dto.MetadataSourceFile, resp.Data.Source)
		assert.True(t, strings.HasSuffix(resp.Data.MetadataPath, "intake.json"))

		raw, err := afero.ReadFile(fs, resp.Data.MetadataPath)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"age": 52`)
	})

	t.Run("out-of-range fields answer 400 with a combined message", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		form := url.Values{}
		form.Set("age", "200")
		form.Set("gad7_result", "25")
		req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-User-ID", "user1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Invalid data", resp.Error)
		assert.Contains(t, resp.Message, "age")
		assert.Contains(t, resp.Message, "GAD-7")
	})

	t.Run("malformed JSON file answers 400", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		body := newMultipartBody(t)
		body.addFile(t, "metadata", "intake.json", []byte(`{"age":`))
		req := body.request(t, "/api/user")
		req.Header.Set("X-User-ID", "user1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Invalid JSON file", resp.Error)
	})

	t.Run("missing X-User-ID answers 400", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		req := httptest.NewRequest(http.MethodPost, "/api/user", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Missing required parameters", resp.Error)
	})
}

func TestServerRoutes(t *testing.T) {
	t.Run("root listing reports identity and limits", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[dto.ServerInfo](t, rec)
		assert.Equal(t, "Multimedia Upload Server", resp.Message)
		assert.Equal(t, "1.0.0", resp.Version)
		assert.Equal(t, "100 MiB", resp.Config.MaxFileSize)
	})

	t.Run("health check", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("unmatched route answers a JSON 404", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/upload", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeBody[dto.NotFoundResponse](t, rec)
		assert.Equal(t, "Endpoint not found", resp.Error)
		assert.Equal(t, "/api/upload", resp.Path)
		assert.Equal(t, http.MethodDelete, resp.Method)
	})

	t.Run("stored artifacts are served statically", func(t *testing.T) {
		router, _ := newTestRouter(t, 1<<20)

		body := newMultipartBody(t)
		body.addFile(t, "utterance", "turn.json", []byte(`{"text":"hello"}`))
		req := withIdentity(body.request(t, "/api/upload"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/user1/sess1/turn1/turn.json", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hello")
	})
}
