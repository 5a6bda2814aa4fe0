package rest

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace-backend/internal/domain"
	"github.com/casetrace/casetrace-backend/internal/service/attachment"
)

type attachmentServiceMock struct {
	uploadFn   func(ctx context.Context, input attachment.UploadInput) (domain.Attachment, error)
	listFn     func(ctx context.Context, caseFileID uuid.UUID) ([]domain.Attachment, error)
	downloadFn func(ctx context.Context, id uuid.UUID) (domain.Attachment, io.ReadCloser, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

var _ attachmentService = (*attachmentServiceMock)(nil)

func (m *attachmentServiceMock) Upload(ctx context.Context, input attachment.UploadInput) (domain.Attachment, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, input)
	}
	return sampleAttachment(), nil
}

func (m *attachmentServiceMock) List(ctx context.Context, caseFileID uuid.UUID) ([]domain.Attachment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, caseFileID)
	}
	return nil, nil
}

func (m *attachmentServiceMock) Download(ctx context.Context, id uuid.UUID) (domain.Attachment, io.ReadCloser, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, id)
	}
	return sampleAttachment(), io.NopCloser(strings.NewReader("file-bytes")), nil
}

func (m *attachmentServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func sampleAttachment() domain.Attachment {
	return domain.Attachment{
		ID:         uuid.MustParse("7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"),
		CaseFileID: uuid.MustParse("9f2c1d4e-0a3b-4c5d-8e7f-102938475601"),
		FileName:   "report.pdf",
		FileSize:   10,
		MimeType:   "application/pdf",
		UploadedBy: uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		UploadedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func multipartBody(t *testing.T, field, filename, contentType, content string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAttachmentHandler_Upload(t *testing.T) {
	t.Parallel()

	caseFileID := sampleAttachment().CaseFileID
	var got attachment.UploadInput
	svc := &attachmentServiceMock{
		uploadFn: func(_ context.Context, input attachment.UploadInput) (domain.Attachment, error) {
			got = input
			return sampleAttachment(), nil
		},
	}
	h := NewAttachmentHandler(svc, 1024, discardLogger())

	body, contentType := multipartBody(t, "file", "report.pdf", "application/pdf", "file-bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/case-files/"+caseFileID.String()+"/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", caseFileID.String())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, caseFileID, got.CaseFileID)
	assert.Equal(t, "report.pdf", got.FileName)
	assert.Equal(t, "application/pdf", got.MimeType)
	assert.Contains(t, rec.Body.String(), `"fileName":"report.pdf"`)
}

func TestAttachmentHandler_Upload_MissingFile(t *testing.T) {
	t.Parallel()

	caseFileID := sampleAttachment().CaseFileID
	h := NewAttachmentHandler(&attachmentServiceMock{}, 1024, discardLogger())

	body, contentType := multipartBody(t, "document", "report.pdf", "application/pdf", "x")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/case-files/"+caseFileID.String()+"/attachments", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", caseFileID.String())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAttachmentHandler_Download(t *testing.T) {
	t.Parallel()

	id := sampleAttachment().ID
	h := NewAttachmentHandler(&attachmentServiceMock{}, 1024, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attachments/"+id.String()+"/download", nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Download(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "file-bytes", rec.Body.String())
}

func TestAttachmentHandler_Download_NotFound(t *testing.T) {
	t.Parallel()

	id := sampleAttachment().ID
	svc := &attachmentServiceMock{
		downloadFn: func(_ context.Context, _ uuid.UUID) (domain.Attachment, io.ReadCloser, error) {
			return domain.Attachment{}, nil, domain.ErrNotFound
		},
	}
	h := NewAttachmentHandler(svc, 1024, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attachments/"+id.String()+"/download", nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Download(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAttachmentHandler_Delete(t *testing.T) {
	t.Parallel()

	id := sampleAttachment().ID
	var deleted uuid.UUID
	svc := &attachmentServiceMock{
		deleteFn: func(_ context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		},
	}
	h := NewAttachmentHandler(svc, 1024, discardLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/attachments/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, deleted)
}
