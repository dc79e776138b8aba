package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docintake/internal/config"
	"docintake/internal/port"
	s3storage "docintake/internal/storage/s3"
)

func TestS3Client_Upload_PathStyleEndpoint(t *testing.T) {
	var gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := s3storage.NewS3Client(&config.ArchiveConfig{
		Enabled:   true,
		Region:    "us-east-1",
		Bucket:    "intake-archive",
		Endpoint:  server.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	content := "%PDF-1.4 test content"
	out, err := client.Upload(context.Background(), port.UploadInput{
		Bucket:      "intake-archive",
		Key:         "intake/rec_42/batch123.pdf",
		Body:        strings.NewReader(content),
		ContentType: "application/pdf",
		Size:        int64(len(content)),
	})

	require.NoError(t, err)
	assert.Equal(t, "/intake-archive/intake/rec_42/batch123.pdf", gotPath)
	assert.Equal(t, "application/pdf", gotContentType)
	assert.Contains(t, out.Location, "intake/rec_42/batch123.pdf")
	assert.Equal(t, `"abc123"`, out.ETag)
}

func TestS3Client_Upload_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer server.Close()

	client, err := s3storage.NewS3Client(&config.ArchiveConfig{
		Region:    "us-east-1",
		Bucket:    "intake-archive",
		Endpoint:  server.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), port.UploadInput{
		Bucket: "intake-archive",
		Key:    "intake/rec_1/a.pdf",
		Body:   strings.NewReader("x"),
		Size:   1,
	})

	assert.ErrorContains(t, err, "s3 upload")
}
