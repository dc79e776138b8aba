package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "docintake/docs"
	"docintake/internal/handler"
	"docintake/internal/middleware"
)

// Options carries the settings the routes depend on.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	MetricsPath    string
	// MetricsHandler serves MetricsPath; nil disables the endpoint.
	MetricsHandler http.Handler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(intakeH *handler.IntakeHandler, healthH *handler.HealthHandler, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger("/healthz", "/readyz", opts.MetricsPath))

	r.SetHTMLTemplate(handler.Templates())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if opts.MetricsHandler != nil {
		r.GET(opts.MetricsPath, gin.WrapH(opts.MetricsHandler))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	bodyLimit := middleware.MaxBodySize(opts.MaxBodyBytes)

	// HTML intake form
	r.GET("/", intakeH.Form)
	r.POST("/submit", bodyLimit, intakeH.Submit)

	// JSON API
	v1 := r.Group("/api/v1")
	v1.Use(middleware.CORS(opts.AllowedOrigins))
	v1.GET("/options", intakeH.Options)
	v1.POST("/submissions", bodyLimit, intakeH.CreateSubmission)
	v1.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	return r
}
