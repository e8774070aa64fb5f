package api

import (
	"context"
	"errors"
	"net"

	"carteira/internal/domain"
	"carteira/internal/logger"

	"github.com/gin-gonic/gin"
)

// errorResponse is the structured error body the dashboard expects.
type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// returnError maps a categorized error onto the HTTP contract:
// validation -> 422, network -> 502/504, server -> upstream status (or 502
// for anything unexpected), unknown -> 500. Uncategorized errors are treated
// as unknown.
func returnError(c *gin.Context, err error) {
	log := logger.FromContext(c.Request.Context())

	var categorized *domain.CategorizedError
	if !errors.As(err, &categorized) {
		categorized = domain.NewUnknownError(err)
	}

	log.Errorw("request failed",
		"category", categorized.Category,
		"error", categorized.Error(),
		"route", c.Request.URL.Path,
	)

	c.AbortWithStatusJSON(statusFor(categorized), errorResponse{
		Message: categorized.Message,
		Errors:  categorized.Details,
	})
}

func returnErrorCode(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorResponse{Message: message})
}

var mirroredStatuses = map[int]bool{
	400: true, 401: true, 403: true, 404: true, 422: true,
	500: true, 502: true, 503: true, 504: true,
}

func statusFor(err *domain.CategorizedError) int {
	switch err.Category {
	case domain.ErrorCategory_Validation:
		return 422
	case domain.ErrorCategory_Network:
		if isTimeout(err.Err) {
			return 504
		}
		return 502
	case domain.ErrorCategory_Server:
		if mirroredStatuses[err.StatusCode] {
			return err.StatusCode
		}
		return 502
	}
	return 500
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
