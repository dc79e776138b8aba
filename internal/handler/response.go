package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docintake/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string, details ...string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg, Details: details},
	})
}

// MapDomainError translates domain errors to HTTP status codes, error codes and details.
func MapDomainError(err error) (status int, code, msg string, details []string) {
	var vErr *domain.ValidationError
	var cErr *domain.ConfigError
	var sErr *domain.SubmissionError
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size", nil
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "VALIDATION_FAILED", "submission failed validation", vErr.Messages
	case errors.As(err, &cErr):
		return http.StatusServiceUnavailable, "CONFIGURATION_INCOMPLETE", "SmartSuite configuration incomplete", cErr.Missing
	case errors.As(err, &sErr):
		return http.StatusBadGateway, "SUBMISSION_FAILED", "Submission failed: " + sErr.Error(), nil
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred", nil
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg, details := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] submission error: %v", requestID, err)
	}
	RespondError(c, status, code, msg, details...)
}
