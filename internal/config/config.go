package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	SmartSuite SmartSuiteConfig
	Intake     IntakeConfig
	Archive    ArchiveConfig
	Email      EmailConfig
	CORS       CORSConfig
	Metrics    MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// Protocol variants supported by the SmartSuite client.
const (
	CreateModeSingle = "single"
	CreateModeBulk   = "bulk"

	UploadModeRecordFiles = "recordfiles"
	UploadModePatch       = "patch"
)

// FieldSlugs maps each logical column of the documents table to its SmartSuite field slug.
type FieldSlugs struct {
	Product  string `mapstructure:"product"`
	Type     string `mapstructure:"type"`
	Supplier string `mapstructure:"supplier"`
	Filename string `mapstructure:"filename"`
	Document string `mapstructure:"document"`
}

// SmartSuiteConfig holds the SmartSuite API credentials, table and field mapping.
type SmartSuiteConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	WorkspaceID   string        `mapstructure:"workspace_id"`
	TableID       string        `mapstructure:"table_id"`
	Fields        FieldSlugs    `mapstructure:"fields"`
	CreateMode    string        `mapstructure:"create_mode"`
	UploadMode    string        `mapstructure:"upload_mode"`
	CreateTimeout time.Duration `mapstructure:"create_timeout"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

// Missing returns the environment names of every required SmartSuite setting that is empty.
// Only names are reported, never values.
func (s *SmartSuiteConfig) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"SMARTSUITE_API_KEY", s.APIKey},
		{"SMARTSUITE_WORKSPACE_ID", s.WorkspaceID},
		{"SMARTSUITE_TABLE_ID", s.TableID},
		{"SS_FIELD_PRODUCT", s.Fields.Product},
		{"SS_FIELD_TYPE", s.Fields.Type},
		{"SS_FIELD_SUPPLIER", s.Fields.Supplier},
		{"SS_FIELD_FILENAME", s.Fields.Filename},
		{"SS_FIELD_DOCUMENT", s.Fields.Document},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// IntakeConfig holds settings for the upload intake itself.
type IntakeConfig struct {
	TempDir     string `mapstructure:"temp_dir"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
	StrictPDF   bool   `mapstructure:"strict_pdf"`
}

// MaxUploadBytes returns the upload ceiling in bytes.
func (i *IntakeConfig) MaxUploadBytes() int64 {
	return i.MaxUploadMB * 1024 * 1024
}

// ArchiveConfig holds settings for the optional S3 archive of submitted PDFs.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds settings for submission receipts.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

// CORSConfig holds CORS settings for the JSON API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// envBindings maps configuration keys to the environment variables they are read from.
// SmartSuite settings keep the names used by existing deployments' .env files.
var envBindings = map[string]string{
	"server.port":                "INTAKE_SERVER_PORT",
	"server.read_timeout":        "INTAKE_SERVER_READ_TIMEOUT",
	"server.write_timeout":       "INTAKE_SERVER_WRITE_TIMEOUT",
	"server.environment":         "INTAKE_SERVER_ENVIRONMENT",
	"smartsuite.base_url":        "SMARTSUITE_BASE_URL",
	"smartsuite.api_key":         "SMARTSUITE_API_KEY",
	"smartsuite.workspace_id":    "SMARTSUITE_WORKSPACE_ID",
	"smartsuite.table_id":        "SMARTSUITE_TABLE_ID",
	"smartsuite.create_mode":     "SMARTSUITE_CREATE_MODE",
	"smartsuite.upload_mode":     "SMARTSUITE_UPLOAD_MODE",
	"smartsuite.create_timeout":  "SMARTSUITE_CREATE_TIMEOUT",
	"smartsuite.upload_timeout":  "SMARTSUITE_UPLOAD_TIMEOUT",
	"smartsuite.fields.product":  "SS_FIELD_PRODUCT",
	"smartsuite.fields.type":     "SS_FIELD_TYPE",
	"smartsuite.fields.supplier": "SS_FIELD_SUPPLIER",
	"smartsuite.fields.filename": "SS_FIELD_FILENAME",
	"smartsuite.fields.document": "SS_FIELD_DOCUMENT",
	"intake.temp_dir":            "INTAKE_TEMP_DIR",
	"intake.max_upload_mb":       "INTAKE_MAX_UPLOAD_MB",
	"intake.strict_pdf":          "INTAKE_STRICT_PDF",
	"archive.enabled":            "INTAKE_ARCHIVE_ENABLED",
	"archive.region":             "INTAKE_ARCHIVE_REGION",
	"archive.bucket":             "INTAKE_ARCHIVE_BUCKET",
	"archive.prefix":             "INTAKE_ARCHIVE_PREFIX",
	"archive.endpoint":           "INTAKE_ARCHIVE_ENDPOINT",
	"archive.access_key":         "INTAKE_ARCHIVE_ACCESS_KEY",
	"archive.secret_key":         "INTAKE_ARCHIVE_SECRET_KEY",
	"email.provider":             "INTAKE_EMAIL_PROVIDER",
	"email.region":               "INTAKE_EMAIL_REGION",
	"email.from_address":         "INTAKE_EMAIL_FROM_ADDRESS",
	"email.from_name":            "INTAKE_EMAIL_FROM_NAME",
	"email.recipients":           "INTAKE_EMAIL_RECIPIENTS",
	"cors.allowed_origins":       "INTAKE_CORS_ALLOWED_ORIGINS",
	"metrics.enabled":            "INTAKE_METRICS_ENABLED",
	"metrics.path":               "INTAKE_METRICS_PATH",
}

// Load reads configuration from the environment, falling back to the dotenv file named by
// INTAKE_ENV_FILE (default ".env") for anything the environment does not set.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// SmartSuite defaults
	v.SetDefault("smartsuite.base_url", "https://app.smartsuite.com/api/v1")
	v.SetDefault("smartsuite.api_key", "")
	v.SetDefault("smartsuite.workspace_id", "")
	v.SetDefault("smartsuite.table_id", "")
	v.SetDefault("smartsuite.create_mode", CreateModeBulk)
	v.SetDefault("smartsuite.upload_mode", UploadModeRecordFiles)
	v.SetDefault("smartsuite.create_timeout", "30s")
	v.SetDefault("smartsuite.upload_timeout", "120s")

	// Intake defaults
	v.SetDefault("intake.temp_dir", ".tmp")
	v.SetDefault("intake.max_upload_mb", 25)
	v.SetDefault("intake.strict_pdf", false)

	// Archive defaults (disabled)
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.prefix", "intake")
	v.SetDefault("archive.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@example.com")
	v.SetDefault("email.from_name", "Document Intake")
	v.SetDefault("email.recipients", "")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	envFile := os.Getenv("INTAKE_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := applyEnvFile(v, envFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	// PaaS platforms set PORT. Use it if INTAKE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INTAKE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.SmartSuite = SmartSuiteConfig{
		BaseURL:     strings.TrimRight(v.GetString("smartsuite.base_url"), "/"),
		APIKey:      v.GetString("smartsuite.api_key"),
		WorkspaceID: v.GetString("smartsuite.workspace_id"),
		TableID:     v.GetString("smartsuite.table_id"),
		Fields: FieldSlugs{
			Product:  v.GetString("smartsuite.fields.product"),
			Type:     v.GetString("smartsuite.fields.type"),
			Supplier: v.GetString("smartsuite.fields.supplier"),
			Filename: v.GetString("smartsuite.fields.filename"),
			Document: v.GetString("smartsuite.fields.document"),
		},
		CreateMode:    strings.ToLower(v.GetString("smartsuite.create_mode")),
		UploadMode:    strings.ToLower(v.GetString("smartsuite.upload_mode")),
		CreateTimeout: v.GetDuration("smartsuite.create_timeout"),
		UploadTimeout: v.GetDuration("smartsuite.upload_timeout"),
	}
	cfg.Intake = IntakeConfig{
		TempDir:     v.GetString("intake.temp_dir"),
		MaxUploadMB: v.GetInt64("intake.max_upload_mb"),
		StrictPDF:   v.GetBool("intake.strict_pdf"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Prefix:    v.GetString("archive.prefix"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		Recipients:  splitList(v.GetString("email.recipients")),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects malformed settings. Empty SmartSuite credentials are not an error here;
// they are reported per submission by SmartSuiteConfig.Missing.
func (c *Config) validate() error {
	switch c.SmartSuite.CreateMode {
	case CreateModeSingle, CreateModeBulk:
	default:
		return fmt.Errorf("invalid SMARTSUITE_CREATE_MODE %q (allowed: %s, %s)",
			c.SmartSuite.CreateMode, CreateModeSingle, CreateModeBulk)
	}
	switch c.SmartSuite.UploadMode {
	case UploadModeRecordFiles, UploadModePatch:
	default:
		return fmt.Errorf("invalid SMARTSUITE_UPLOAD_MODE %q (allowed: %s, %s)",
			c.SmartSuite.UploadMode, UploadModeRecordFiles, UploadModePatch)
	}
	if err := c.SmartSuite.Fields.validate(); err != nil {
		return err
	}
	if c.Intake.MaxUploadMB <= 0 {
		return fmt.Errorf("INTAKE_MAX_UPLOAD_MB must be positive, got %d", c.Intake.MaxUploadMB)
	}
	if c.Archive.Enabled && c.Archive.Bucket == "" {
		return errors.New("INTAKE_ARCHIVE_BUCKET is required when the archive is enabled")
	}
	return nil
}

// reservedSlug is the record field the client always fills with the filename.
const reservedSlug = "title"

// validate rejects slugs that would collide in the create-record payload. Empty slugs are
// left to SmartSuiteConfig.Missing.
func (f FieldSlugs) validate() error {
	slugs := []struct {
		env  string
		slug string
	}{
		{"SS_FIELD_PRODUCT", f.Product},
		{"SS_FIELD_TYPE", f.Type},
		{"SS_FIELD_SUPPLIER", f.Supplier},
		{"SS_FIELD_FILENAME", f.Filename},
		{"SS_FIELD_DOCUMENT", f.Document},
	}

	seen := make(map[string]string, len(slugs))
	for _, s := range slugs {
		slug := strings.TrimSpace(s.slug)
		if slug == "" {
			continue
		}
		if slug == reservedSlug {
			return fmt.Errorf("%s must not be %q (reserved for the record title)", s.env, reservedSlug)
		}
		if other, ok := seen[slug]; ok {
			return fmt.Errorf("%s and %s share the field slug %q", other, s.env, slug)
		}
		seen[slug] = s.env
	}
	return nil
}

// applyEnvFile reads a dotenv file and uses its entries as defaults, so real environment
// variables still take precedence. A missing file is not an error.
func applyEnvFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("env")
	if err := fv.ReadInConfig(); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, env := range envBindings {
		name := strings.ToLower(env)
		if fv.IsSet(name) {
			v.SetDefault(key, fv.GetString(name))
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
