package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIRequest is one row of the request log written by the API middleware.
type APIRequest struct {
	ID           uuid.UUID
	UserID       *string
	IPAddress    *string
	Method       string
	Route        string
	RequestBody  *string
	StartTs      time.Time
	DurationMs   *int64
	StatusCode   *int32
	ResponseBody *string
}
