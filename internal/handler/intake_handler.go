package handler

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docintake/internal/domain"
	"docintake/internal/service"
)

// Form field names posted by the intake page.
const (
	FieldProduct  = "product"
	FieldDocType  = "doc_type"
	FieldSupplier = "supplier"
	FieldFilename = "filename"
	FieldDocument = "pdf_document"
)

const multipartMemory = 8 << 20

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the HTML templates served by IntakeHandler.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// IntakeHandler serves the intake form and accepts submissions.
type IntakeHandler struct {
	intakeService service.IntakeService
	maxUploadMB   int64
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(intakeService service.IntakeService, maxUploadMB int64) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService, maxUploadMB: maxUploadMB}
}

// Form handles GET /
func (h *IntakeHandler) Form(c *gin.Context) {
	h.renderForm(c, http.StatusOK, nil)
}

// Submit handles POST /submit and renders the form again with the outcome.
func (h *IntakeHandler) Submit(c *gin.Context) {
	form, cleanup, err := h.readForm(c)
	defer cleanup()
	if err != nil {
		status, _, _, _ := MapDomainError(err)
		h.renderForm(c, status, service.Notifications(nil, h.formError(err)))
		return
	}

	result, err := h.intakeService.Submit(c.Request.Context(), form)
	status := http.StatusOK
	if err != nil {
		status, _, _, _ = MapDomainError(err)
		if status >= 500 {
			requestID, _ := c.Get("request_id")
			log.Printf("[%s] submission error: %v", requestID, err)
		}
	}
	h.renderForm(c, status, service.Notifications(result, err))
}

// Options handles GET /api/v1/options
// @Summary List form options
// @Description List the products, document types and suppliers a submission may use
// @Tags intake
// @Produce json
// @Success 200 {object} APIResponse{data=domain.Options} "Option sets"
// @Router /options [get]
func (h *IntakeHandler) Options(c *gin.Context) {
	RespondOK(c, h.intakeService.Options())
}

// CreateSubmission handles POST /api/v1/submissions
// @Summary Submit a document
// @Description Create a SmartSuite record for the document and attach the PDF (max 25MB)
// @Tags intake
// @Accept multipart/form-data
// @Produce json
// @Param product formData string true "Product"
// @Param doc_type formData string true "Document type"
// @Param supplier formData string true "Supplier"
// @Param filename formData string true "Filename stored on the record"
// @Param pdf_document formData file true "PDF document"
// @Success 201 {object} APIResponse{data=domain.SubmissionResult} "Record created and file attached"
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 502 {object} APIResponse "SmartSuite rejected the submission"
// @Failure 503 {object} APIResponse "SmartSuite configuration incomplete"
// @Router /submissions [post]
func (h *IntakeHandler) CreateSubmission(c *gin.Context) {
	form, cleanup, err := h.readForm(c)
	defer cleanup()
	if err != nil {
		status, code, msg, _ := MapDomainError(err)
		RespondError(c, status, code, msg, notificationMessages(h.formError(err))...)
		return
	}

	result, err := h.intakeService.Submit(c.Request.Context(), form)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// readForm extracts the submission fields. The returned cleanup closes the uploaded file.
func (h *IntakeHandler) readForm(c *gin.Context) (domain.SubmissionForm, func(), error) {
	cleanup := func() {}
	var form domain.SubmissionForm

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return form, cleanup, domain.ErrFileTooLarge
		}
		return form, cleanup, &domain.ValidationError{Messages: []string{domain.MsgMalformedForm}}
	}

	form.Product = c.PostForm(FieldProduct)
	form.DocType = c.PostForm(FieldDocType)
	form.Supplier = c.PostForm(FieldSupplier)
	form.Filename = c.PostForm(FieldFilename)

	file, header, err := c.Request.FormFile(FieldDocument)
	if err == nil {
		form.File = file
		form.Header = header
		cleanup = func() { _ = file.Close() }
	}

	return form, cleanup, nil
}

// formError converts a form-read failure into the error shown to the user.
func (h *IntakeHandler) formError(err error) error {
	if errors.Is(err, domain.ErrFileTooLarge) {
		return &domain.ValidationError{Messages: []string{domain.MsgFileTooLarge(h.maxUploadMB)}}
	}
	return err
}

func notificationMessages(err error) []string {
	var out []string
	for _, n := range service.Notifications(nil, err) {
		out = append(out, n.Message)
	}
	return out
}

func (h *IntakeHandler) renderForm(c *gin.Context, status int, notifications []domain.Notification) {
	c.HTML(status, "intake.html", gin.H{
		"Options":       h.intakeService.Options(),
		"Notifications": notifications,
		"MaxUploadMB":   h.maxUploadMB,
	})
}
