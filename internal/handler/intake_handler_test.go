package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docintake/internal/domain"
	"docintake/internal/handler"
	"docintake/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(svc *mocks.MockIntakeService) *gin.Engine {
	h := handler.NewIntakeHandler(svc, 25)
	r := gin.New()
	r.SetHTMLTemplate(handler.Templates())
	r.GET("/", h.Form)
	r.POST("/submit", h.Submit)
	r.GET("/api/v1/options", h.Options)
	r.POST("/api/v1/submissions", h.CreateSubmission)
	return r
}

func submissionBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile(handler.FieldDocument, fileName)
		require.NoError(t, err)
		_, _ = part.Write(content)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

var validFields = map[string]string{
	handler.FieldProduct:  "Citric Acid",
	handler.FieldDocType:  "COA",
	handler.FieldSupplier: "Ensign",
	handler.FieldFilename: "batch123",
}

func isValidForm(f domain.SubmissionForm) bool {
	return f.Product == "Citric Acid" && f.DocType == "COA" && f.Supplier == "Ensign" &&
		f.Filename == "batch123" && f.File != nil && f.Header != nil && f.Header.Filename == "scan.pdf"
}

func post(r *gin.Engine, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestIntakeHandler_Form(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Options").Return(domain.FormOptions())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)
	newEngine(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<option value="Citric Acid Anhydrous">`)
	assert.Contains(t, body, `<option value="Prodn Flow">`)
	assert.Contains(t, body, `<option value="Health Nutrition">`)
	assert.Contains(t, body, "max 25 MB")
	assert.NotContains(t, body, `class="notification`)
}

func TestIntakeHandler_Submit_Success(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Options").Return(domain.FormOptions())
	svc.On("Submit", mock.Anything, mock.MatchedBy(isValidForm)).
		Return(&domain.SubmissionResult{RecordID: "rec_42"}, nil)

	body, ct := submissionBody(t, validFields, "scan.pdf", []byte("%PDF-1.4"))
	w := post(newEngine(svc), "/submit", body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Document submitted successfully. Record ID: rec_42")
	assert.Contains(t, w.Body.String(), `class="notification success"`)
	svc.AssertExpectations(t)
}

func TestIntakeHandler_Submit_ValidationMessages(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Options").Return(domain.FormOptions())
	svc.On("Submit", mock.Anything, mock.Anything).Return(nil, &domain.ValidationError{
		Messages: []string{domain.MsgInvalidProduct, domain.MsgMissingFile},
	})

	body, ct := submissionBody(t, map[string]string{handler.FieldProduct: "Sugar"}, "", nil)
	w := post(newEngine(svc), "/submit", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), domain.MsgInvalidProduct)
	assert.Contains(t, w.Body.String(), domain.MsgMissingFile)
	assert.Equal(t, 2, strings.Count(w.Body.String(), `class="notification error"`))
}

func TestIntakeHandler_Submit_RemoteFailure(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Options").Return(domain.FormOptions())
	svc.On("Submit", mock.Anything, mock.Anything).
		Return(nil, &domain.SubmissionError{RecordID: "rec_42", Err: errors.New("file upload 500: boom")})

	body, ct := submissionBody(t, validFields, "scan.pdf", []byte("%PDF-1.4"))
	w := post(newEngine(svc), "/submit", body, ct)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Submission failed: file upload 500: boom")
	assert.Equal(t, 1, strings.Count(w.Body.String(), `class="notification`))
}

func TestIntakeHandler_Options(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Options").Return(domain.FormOptions())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/options", http.NoBody)
	newEngine(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool           `json:"success"`
		Data    domain.Options `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.Products, resp.Data.Products)
	assert.Equal(t, domain.DocTypes, resp.Data.DocTypes)
	assert.Equal(t, domain.Suppliers, resp.Data.Suppliers)
}

func TestIntakeHandler_CreateSubmission_Created(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Submit", mock.Anything, mock.MatchedBy(isValidForm)).
		Return(&domain.SubmissionResult{RecordID: "rec_42", FileInfo: json.RawMessage(`{"handle":"h_1"}`)}, nil)

	body, ct := submissionBody(t, validFields, "scan.pdf", []byte("%PDF-1.4"))
	w := post(newEngine(svc), "/api/v1/submissions", body, ct)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Success bool                    `json:"success"`
		Data    domain.SubmissionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "rec_42", resp.Data.RecordID)
	assert.JSONEq(t, `{"handle":"h_1"}`, string(resp.Data.FileInfo))
}

func TestIntakeHandler_CreateSubmission_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		details []string
	}{
		{
			name:    "validation",
			err:     &domain.ValidationError{Messages: []string{domain.MsgNotPDF}},
			status:  http.StatusBadRequest,
			code:    "VALIDATION_FAILED",
			details: []string{domain.MsgNotPDF},
		},
		{
			name:    "config incomplete",
			err:     &domain.ConfigError{Missing: []string{"SMARTSUITE_API_KEY", "SMARTSUITE_TABLE_ID"}},
			status:  http.StatusServiceUnavailable,
			code:    "CONFIGURATION_INCOMPLETE",
			details: []string{"SMARTSUITE_API_KEY", "SMARTSUITE_TABLE_ID"},
		},
		{
			name:   "remote failure",
			err:    &domain.SubmissionError{Err: errors.New("create record 400: Invalid field")},
			status: http.StatusBadGateway,
			code:   "SUBMISSION_FAILED",
		},
		{
			name:   "file too large",
			err:    domain.ErrFileTooLarge,
			status: http.StatusRequestEntityTooLarge,
			code:   "FILE_TOO_LARGE",
		},
		{
			name:   "internal",
			err:    errors.New("disk full"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockIntakeService)
			svc.On("Submit", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, ct := submissionBody(t, validFields, "scan.pdf", []byte("%PDF-1.4"))
			w := post(newEngine(svc), "/api/v1/submissions", body, ct)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.details, resp.Error.Details)
		})
	}
}

func TestIntakeHandler_CreateSubmission_RemoteFailureMessage(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Submit", mock.Anything, mock.Anything).
		Return(nil, &domain.SubmissionError{Err: errors.New("create record 400: Invalid field")})

	body, ct := submissionBody(t, validFields, "scan.pdf", []byte("%PDF-1.4"))
	w := post(newEngine(svc), "/api/v1/submissions", body, ct)

	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Submission failed: create record 400: Invalid field", resp.Error.Message)
}

func TestIntakeHandler_CreateSubmission_URLEncodedForm(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(f domain.SubmissionForm) bool {
		return f.Product == "Peptan" && f.File == nil && f.Header == nil
	})).Return(nil, &domain.ValidationError{Messages: []string{domain.MsgMissingFile}})

	form := url.Values{handler.FieldProduct: {"Peptan"}}
	w := post(newEngine(svc), "/api/v1/submissions", bytes.NewBufferString(form.Encode()),
		"application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestIntakeHandler_CreateSubmission_MalformedMultipart(t *testing.T) {
	svc := new(mocks.MockIntakeService)

	w := post(newEngine(svc), "/api/v1/submissions", bytes.NewBufferString("--nope\r\ngarbage"),
		"multipart/form-data; boundary=xyz")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, []string{domain.MsgMalformedForm}, resp.Error.Details)
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
