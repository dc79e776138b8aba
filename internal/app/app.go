// Package app assembles the intake service from configuration. It is shared by the HTTP
// server and the command-line client.
package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"docintake/internal/config"
	"docintake/internal/email/noop"
	"docintake/internal/email/ses"
	"docintake/internal/metrics"
	"docintake/internal/pdf"
	"docintake/internal/port"
	"docintake/internal/service"
	"docintake/internal/smartsuite"
	s3storage "docintake/internal/storage/s3"
)

// App holds the long-lived, read-only dependencies built at start-up.
type App struct {
	Config   *config.Config
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Client   *smartsuite.Client
	Intake   service.IntakeService
}

// New builds the SmartSuite client, optional archive and receipt sender, and the intake
// service on top of them.
func New(cfg *config.Config) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.MustNewMetrics(reg)

	client := smartsuite.NewClient(&cfg.SmartSuite).WithMetrics(m)
	if missing := client.ValidateConfig(); len(missing) > 0 {
		log.Printf("app.New: SmartSuite configuration incomplete, submissions will be rejected until set: %s",
			strings.Join(missing, ", "))
	}

	archive, err := newArchive(&cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("initializing archive: %w", err)
	}

	sender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("initializing email sender: %w", err)
	}

	intakeSvc := service.NewIntakeService(client, pdf.NewInspector(), archive, sender, m, &cfg.Intake, &cfg.Archive)

	return &App{
		Config:   cfg,
		Registry: reg,
		Metrics:  m,
		Client:   client,
		Intake:   intakeSvc,
	}, nil
}

func newArchive(cfg *config.ArchiveConfig) (port.ObjectStorage, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	log.Printf("app.New: archiving submitted documents to s3://%s/%s", cfg.Bucket, cfg.Prefix)
	return s3storage.NewS3Client(cfg)
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case "noop":
		return noop.NewNoopSender(), nil
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.Recipients)
	default:
		return nil, fmt.Errorf("unknown email provider %q (allowed: none, noop, ses)", cfg.Provider)
	}
}
