package testutil

import (
	"net/http"
	"time"

	"cleanhome/pkg/requestcontext"
)

// AtTime pins the request clock, standing in for the metadata middleware.
func AtTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// FromClient attaches client metadata the way the metadata middleware does.
func FromClient(req *http.Request, clientIP, userAgent string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent))
}
