package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docintake/internal/config"
	"docintake/internal/domain"
	"docintake/internal/metrics"
	"docintake/internal/port"
)

// IntakeService defines the document intake contract.
type IntakeService interface {
	Options() domain.Options
	// MissingConfig returns the names of required settings that are not configured.
	MissingConfig() []string
	Validate(form domain.SubmissionForm) (*domain.SubmissionRequest, error)
	Submit(ctx context.Context, form domain.SubmissionForm) (*domain.SubmissionResult, error)
}

type intakeService struct {
	client     port.RecordClient
	inspector  port.PDFInspector
	archive    port.ObjectStorage
	sender     port.EmailSender
	metrics    *metrics.Metrics
	cfg        *config.IntakeConfig
	archiveCfg *config.ArchiveConfig
}

// NewIntakeService creates a new IntakeService implementation. archive and sender may be
// nil, which disables archiving and receipts respectively.
func NewIntakeService(
	client port.RecordClient,
	inspector port.PDFInspector,
	archive port.ObjectStorage,
	sender port.EmailSender,
	m *metrics.Metrics,
	cfg *config.IntakeConfig,
	archiveCfg *config.ArchiveConfig,
) IntakeService {
	return &intakeService{
		client:     client,
		inspector:  inspector,
		archive:    archive,
		sender:     sender,
		metrics:    m,
		cfg:        cfg,
		archiveCfg: archiveCfg,
	}
}

func (s *intakeService) Options() domain.Options {
	return domain.FormOptions()
}

func (s *intakeService) MissingConfig() []string {
	return s.client.ValidateConfig()
}

// Validate checks every field independently and reports all failures together.
func (s *intakeService) Validate(form domain.SubmissionForm) (*domain.SubmissionRequest, error) {
	product := strings.TrimSpace(form.Product)
	docType := strings.TrimSpace(form.DocType)
	supplier := strings.TrimSpace(form.Supplier)
	filename := strings.TrimSpace(form.Filename)

	var msgs []string
	if !domain.IsProduct(product) {
		msgs = append(msgs, domain.MsgInvalidProduct)
	}
	if !domain.IsDocType(docType) {
		msgs = append(msgs, domain.MsgInvalidDocType)
	}
	if !domain.IsSupplier(supplier) {
		msgs = append(msgs, domain.MsgInvalidSupplier)
	}
	if filename == "" {
		msgs = append(msgs, domain.MsgMissingFilename)
	}

	var originalName string
	var size int64
	if form.Header != nil {
		originalName = form.Header.Filename
		size = form.Header.Size
	}

	pages := 0
	switch {
	case form.File == nil || originalName == "":
		msgs = append(msgs, domain.MsgMissingFile)
	case !domain.HasPDFExtension(originalName):
		msgs = append(msgs, domain.MsgNotPDF)
	case size > s.cfg.MaxUploadBytes():
		msgs = append(msgs, domain.MsgFileTooLarge(s.cfg.MaxUploadMB))
	case s.inspector != nil:
		n, err := s.inspector.PageCount(form.File)
		if err != nil {
			if s.cfg.StrictPDF {
				msgs = append(msgs, domain.MsgUnreadablePDF)
			} else {
				log.Printf("intakeService.Validate: could not read %s as PDF: %v", originalName, err)
			}
		}
		pages = n
	}

	if len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	return &domain.SubmissionRequest{
		Product:      product,
		DocType:      docType,
		Supplier:     supplier,
		Filename:     filename,
		OriginalName: originalName,
		Size:         size,
		Pages:        pages,
		File:         form.File,
	}, nil
}

// Submit validates the form, checks configuration, stages the upload to a temp file and
// hands it to the record client. The temp file is removed on every path.
func (s *intakeService) Submit(ctx context.Context, form domain.SubmissionForm) (result *domain.SubmissionResult, err error) {
	defer func() { s.metrics.IncSubmission(OutcomeOf(err)) }()

	req, err := s.Validate(form)
	if err != nil {
		return nil, err
	}

	if missing := s.client.ValidateConfig(); len(missing) > 0 {
		log.Printf("intakeService.Submit: configuration incomplete, missing %s", strings.Join(missing, ", "))
		return nil, &domain.ConfigError{Missing: missing}
	}

	tmpPath, err := s.stage(req)
	if err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, &domain.ValidationError{Messages: []string{domain.MsgFileTooLarge(s.cfg.MaxUploadMB)}}
		}
		return nil, err
	}
	defer removeTemp(tmpPath)

	log.Printf("intakeService.Submit: submitting %s (%s / %s / %s, %d bytes)",
		req.Filename, req.Product, req.DocType, req.Supplier, req.Size)

	// Remote calls outlive a client disconnect; http.Client timeouts still bound them.
	ctx = context.WithoutCancel(ctx)
	result, err = s.client.SubmitDocument(ctx, port.SubmitInput{
		RecordInput: port.RecordInput{
			Product:  req.Product,
			DocType:  req.DocType,
			Supplier: req.Supplier,
			Filename: req.Filename,
		},
		FilePath: tmpPath,
	})
	if err != nil {
		var subErr *domain.SubmissionError
		if !errors.As(err, &subErr) {
			subErr = &domain.SubmissionError{Err: err}
		}
		if subErr.RecordID != "" {
			log.Printf("intakeService.Submit: record %s created but attachment failed: %v", subErr.RecordID, subErr.Err)
		} else {
			log.Printf("intakeService.Submit: record creation failed: %v", subErr.Err)
		}
		return nil, subErr
	}

	log.Printf("intakeService.Submit: created record %s for %s", result.RecordID, req.Filename)
	if req.Pages > 0 {
		s.metrics.ObservePageCount(req.Pages)
	}
	s.archiveCopy(ctx, req, tmpPath, result.RecordID)
	s.sendReceipt(ctx, req, result.RecordID)

	return result, nil
}

// stage copies the upload into a uniquely named file under the temp directory.
func (s *intakeService) stage(req *domain.SubmissionRequest) (string, error) {
	if err := os.MkdirAll(s.cfg.TempDir, 0o750); err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	if _, err := req.File.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking upload: %w", err)
	}

	tmpPath := filepath.Join(s.cfg.TempDir, uuid.New().String()+domain.PDFExtension)
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	limit := s.cfg.MaxUploadBytes()
	n, err := io.Copy(f, io.LimitReader(req.File, limit+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("writing temp file: %w", err)
	case n > limit:
		err = domain.ErrFileTooLarge
	case closeErr != nil:
		err = fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err != nil {
		removeTemp(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

func removeTemp(p string) {
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("intakeService: failed to remove temp file %s: %v", p, err)
	}
}

// archiveCopy stores the submitted PDF in object storage. Failures are logged only.
func (s *intakeService) archiveCopy(ctx context.Context, req *domain.SubmissionRequest, tmpPath, recordID string) {
	if s.archive == nil || s.archiveCfg == nil {
		return
	}
	f, err := os.Open(tmpPath)
	if err != nil {
		log.Printf("intakeService.archiveCopy: opening %s: %v", tmpPath, err)
		return
	}
	defer func() { _ = f.Close() }()

	key := path.Join(strings.Trim(s.archiveCfg.Prefix, "/"), recordID, domain.PDFFileName(req.Filename))
	out, err := s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.archiveCfg.Bucket,
		Key:         key,
		Body:        f,
		ContentType: domain.PDFContentType,
		Size:        req.Size,
	})
	if err != nil {
		log.Printf("intakeService.archiveCopy: archiving record %s failed: %v", recordID, err)
		return
	}
	log.Printf("intakeService.archiveCopy: archived record %s to %s", recordID, out.Location)
}

// sendReceipt notifies the intake team. Failures are logged only.
func (s *intakeService) sendReceipt(ctx context.Context, req *domain.SubmissionRequest, recordID string) {
	if s.sender == nil {
		return
	}
	err := s.sender.SendSubmissionReceipt(ctx, port.SubmissionReceipt{
		RecordID: recordID,
		Product:  req.Product,
		DocType:  req.DocType,
		Supplier: req.Supplier,
		Filename: req.Filename,
	})
	if err != nil {
		log.Printf("intakeService.sendReceipt: receipt for record %s failed: %v", recordID, err)
	}
}

// OutcomeOf classifies the error returned by Submit.
func OutcomeOf(err error) domain.Outcome {
	var vErr *domain.ValidationError
	var cErr *domain.ConfigError
	switch {
	case err == nil:
		return domain.OutcomeSuccess
	case errors.As(err, &vErr):
		return domain.OutcomeValidationError
	case errors.As(err, &cErr):
		return domain.OutcomeConfigError
	case errors.Is(err, domain.ErrSubmissionFailed):
		return domain.OutcomeRemoteError
	default:
		return domain.OutcomeInternalError
	}
}

// Notifications turns the result of Submit into the messages shown to the user:
// one per validation failure, otherwise exactly one.
func Notifications(result *domain.SubmissionResult, err error) []domain.Notification {
	if err == nil && result != nil {
		return []domain.Notification{{
			Message:  "Document submitted successfully. Record ID: " + result.RecordID,
			Severity: domain.SeveritySuccess,
		}}
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		out := make([]domain.Notification, 0, len(vErr.Messages))
		for _, msg := range vErr.Messages {
			out = append(out, domain.Notification{Message: msg, Severity: domain.SeverityError})
		}
		return out
	}

	var cErr *domain.ConfigError
	if errors.As(err, &cErr) {
		return []domain.Notification{{Message: cErr.Error(), Severity: domain.SeverityError}}
	}

	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return []domain.Notification{{Message: "Submission failed: " + msg, Severity: domain.SeverityError}}
}
