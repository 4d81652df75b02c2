package file

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wizlit-Org/file-service/internal/domain"
	"github.com/Wizlit-Org/file-service/internal/staging"
)

type fakeService struct {
	ingestDesc domain.FileDescriptor
	ingestErr  error
	viewDesc   domain.FileDescriptor
	viewErr    error

	gotUploader int64
	gotHash     string
	gotViewID   domain.FileID
}

func (f *fakeService) Ingest(_ context.Context, st *staging.StagedFile, uploader int64) (domain.FileDescriptor, error) {
	f.gotUploader = uploader
	f.gotHash = st.Hash
	return f.ingestDesc, f.ingestErr
}

func (f *fakeService) RecordView(_ context.Context, id domain.FileID) (domain.FileDescriptor, error) {
	f.gotViewID = id
	return f.viewDesc, f.viewErr
}

type fakePresigner struct {
	link string
	err  error

	gotKey string
	gotCT  string
	gotTTL time.Duration
}

func (f *fakePresigner) PresignGet(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	f.gotKey = key
	f.gotCT = contentType
	f.gotTTL = ttl
	return f.link, f.err
}

func newHandler(t *testing.T, svc *fakeService, ps *fakePresigner) *Handler {
	t.Helper()
	return &Handler{
		Log:        log.New(io.Discard, "", 0),
		Files:      svc,
		Presign:    ps,
		StagingDir: t.TempDir(),
		PresignTTL: 5 * time.Minute,
	}
}

// multipartBody собирает тело запроса с одним файловым полем "file"
func multipartBody(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeEnvelope(t *testing.T, body io.Reader) domain.APIEnvelope {
	t.Helper()
	var env domain.APIEnvelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func TestUpload_Created(t *testing.T) {
	svc := &fakeService{ingestDesc: domain.FileDescriptor{
		FullName:             "abc.txt",
		FileID:               "abc",
		FileSize:             5,
		FileUploader:         42,
		FileCreatedTimestamp: 1700000000000,
		FileType:             "text/plain",
		FileExtension:        "txt",
	}}
	h := newHandler(t, svc, &fakePresigner{})

	body, ct := multipartBody(t, "notes.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/files?uploader=42", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, int64(42), svc.gotUploader)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", svc.gotHash)

	var got domain.FileDescriptor
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "abc.txt", got.FullName)
	assert.Equal(t, "abc", got.FileID)
	assert.Equal(t, int64(5), got.FileSize)
	assert.Equal(t, "txt", got.FileExtension)
}

func TestUpload_UploaderMustBeInteger(t *testing.T) {
	h := newHandler(t, &fakeService{}, &fakePresigner{})

	body, ct := multipartBody(t, "notes.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/files?uploader=bob", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr.Body)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrCodeBadParams, env.Error.Code)
}

func TestUpload_MissingFilePart(t *testing.T) {
	h := newHandler(t, &fakeService{}, &fakePresigner{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("comment", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/files?uploader=1", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr.Body)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrCodeBadParams, env.Error.Code)
}

func TestUpload_FilenameWithoutExtension(t *testing.T) {
	h := newHandler(t, &fakeService{}, &fakePresigner{})

	body, ct := multipartBody(t, "noext", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/files?uploader=1", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr.Body)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrCodeInvalidFileFormat, env.Error.Code)
}

func TestUpload_InternalErrorExposesCause(t *testing.T) {
	svc := &fakeService{ingestErr: domain.Internal(assert.AnError)}
	h := newHandler(t, svc, &fakePresigner{})

	body, ct := multipartBody(t, "notes.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/files?uploader=1", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeEnvelope(t, rr.Body)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrCodeInternal, env.Error.Code)
	assert.Contains(t, env.Error.Text, "an unexpected error occurred")
}

func TestUpload_StagingDirLeftClean(t *testing.T) {
	svc := &fakeService{ingestDesc: domain.FileDescriptor{FileID: "abc"}}
	h := newHandler(t, svc, &fakePresigner{})

	body, ct := multipartBody(t, "notes.txt", "text/plain", "hello")
	req := httptest.NewRequest(http.MethodPost, "/v1/files?uploader=1", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	h.Upload(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	entries, err := os.ReadDir(h.StagingDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "временная копия должна удаляться после запроса")
}

func TestView_RedirectsToPresignedLink(t *testing.T) {
	svc := &fakeService{viewDesc: domain.FileDescriptor{
		FullName: "abc.pdf",
		FileID:   "abc",
		FileType: "application/pdf",
	}}
	ps := &fakePresigner{link: "https://s3.local/bucket/abc.pdf?X-Amz-Signature=sig"}
	h := newHandler(t, svc, ps)

	req := httptest.NewRequest(http.MethodGet, "/v1/files/abc", nil)
	req.SetPathValue("fileId", "abc")
	rr := httptest.NewRecorder()

	h.View(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, ps.link, rr.Header().Get("Location"))
	assert.Equal(t, "abc", string(svc.gotViewID))
	assert.Equal(t, "abc.pdf", ps.gotKey)
	assert.Equal(t, "application/pdf", ps.gotCT)
	assert.Equal(t, 5*time.Minute, ps.gotTTL)
}

func TestView_UnknownFile(t *testing.T) {
	svc := &fakeService{viewErr: domain.ErrFileNotFound}
	h := newHandler(t, svc, &fakePresigner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/files/nope", nil)
	req.SetPathValue("fileId", "nope")
	rr := httptest.NewRecorder()

	h.View(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr.Body)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrCodeFileNotFound, env.Error.Code)
}

func TestView_PresignFailure(t *testing.T) {
	svc := &fakeService{viewDesc: domain.FileDescriptor{FullName: "abc.pdf", FileType: "application/pdf"}}
	ps := &fakePresigner{err: assert.AnError}
	h := newHandler(t, svc, ps)

	req := httptest.NewRequest(http.MethodGet, "/v1/files/abc", nil)
	req.SetPathValue("fileId", "abc")
	rr := httptest.NewRecorder()

	h.View(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeEnvelope(t, rr.Body)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.ErrCodeInternal, env.Error.Code)
}
