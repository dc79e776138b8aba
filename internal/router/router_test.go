package router_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docintake/internal/domain"
	"docintake/internal/handler"
	"docintake/internal/router"
	"docintake/mocks"
)

func setup(t *testing.T, svc *mocks.MockIntakeService, opts router.Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return router.Setup(handler.NewIntakeHandler(svc, 1), handler.NewHealthHandler(svc), opts)
}

func defaultOptions() router.Options {
	return router.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxBodyBytes:   2 << 20,
		MetricsPath:    "/metrics",
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("docintake_submissions_total 0\n"))
		}),
	}
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndReadiness(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("MissingConfig").Return([]string{"SMARTSUITE_API_KEY"})
	r := setup(t, svc, defaultOptions())

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/readyz").Code)
}

func TestRouter_Metrics(t *testing.T) {
	r := setup(t, new(mocks.MockIntakeService), defaultOptions())

	w := serve(r, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "docintake_submissions_total")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	opts := defaultOptions()
	opts.MetricsHandler = nil
	r := setup(t, new(mocks.MockIntakeService), opts)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/metrics").Code)
}

func TestRouter_FormAndOptions(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Options").Return(domain.FormOptions())
	r := setup(t, svc, defaultOptions())

	form := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `action="/submit"`)

	w := serve(r, http.MethodGet, "/api/v1/options")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_Preflight(t *testing.T) {
	r := setup(t, new(mocks.MockIntakeService), defaultOptions())

	w := serve(r, http.MethodOptions, "/api/v1/submissions")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_OversizedUpload(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	opts := defaultOptions()
	opts.MaxBodyBytes = 1024
	r := setup(t, svc, opts)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(handler.FieldDocument, "big.pdf")
	require.NoError(t, err)
	_, _ = part.Write(bytes.Repeat([]byte("a"), 4096))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/submissions", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "The attached file exceeds the 1 MB limit.")
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
